package guardrail

import (
	"errors"
	"strings"
	"testing"
)

func TestApproveAppendsDefaultLimit(t *testing.T) {
	guard := New(100)
	got, err := guard.Approve("SELECT * FROM products")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if got != "SELECT * FROM products LIMIT 100;" {
		t.Fatalf("Approve() = %q", got)
	}
}

func TestApproveKeepsExistingLimit(t *testing.T) {
	guard := New(100)
	got, err := guard.Approve(" select id from orders limit 5")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if got != "select id from orders limit 5" {
		t.Fatalf("Approve() = %q, want trimmed input unchanged", got)
	}
}

func TestApproveStripsTrailingSemicolonsBeforeAppending(t *testing.T) {
	guard := New(100)
	got, err := guard.Approve("SELECT id FROM orders;; \n")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if got != "SELECT id FROM orders LIMIT 100;" {
		t.Fatalf("Approve() = %q", got)
	}
}

func TestApproveRejectsNonSelect(t *testing.T) {
	guard := New(100)
	cases := []string{
		"DROP TABLE products;",
		"DELETE FROM orders",
		"INSERT INTO t VALUES (1)",
		"UPDATE t SET a = 1",
		"WITH x AS (SELECT 1) SELECT * FROM x",
		"-- comment\nSELECT 1",
		"EXPLAIN SELECT 1",
		"",
		"   ",
		"selecting things",
	}
	for _, candidate := range cases {
		if _, err := guard.Approve(candidate); err == nil {
			t.Fatalf("Approve(%q) should reject", candidate)
		}
	}
}

func TestApproveRejectionCarriesCandidateText(t *testing.T) {
	guard := New(100)
	_, err := guard.Approve("DROP TABLE products;")
	var unsafeErr *UnsafeQueryError
	if !errors.As(err, &unsafeErr) {
		t.Fatalf("error = %T, want *UnsafeQueryError", err)
	}
	if unsafeErr.SQL != "DROP TABLE products;" {
		t.Fatalf("UnsafeQueryError.SQL = %q", unsafeErr.SQL)
	}
	if !strings.Contains(err.Error(), "DROP TABLE products;") {
		t.Fatalf("Error() = %q, offending text missing", err.Error())
	}
}

func TestApproveAcceptsLeadingWhitespaceAndCase(t *testing.T) {
	guard := New(100)
	got, err := guard.Approve("\n\t  SeLeCt 1")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if got != "SeLeCt 1 LIMIT 100;" {
		t.Fatalf("Approve() = %q", got)
	}
}

func TestApproveIdempotent(t *testing.T) {
	guard := New(100)
	first, err := guard.Approve("SELECT * FROM products")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	second, err := guard.Approve(first)
	if err != nil {
		t.Fatalf("second Approve() error = %v", err)
	}
	if second != first {
		t.Fatalf("second pass changed SQL: %q -> %q", first, second)
	}
}

func TestApproveLimitDetectionNeedsDigits(t *testing.T) {
	guard := New(100)
	// "limit" without a number is not a limit clause.
	got, err := guard.Approve("SELECT speed_limit FROM roads")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if got != "SELECT speed_limit FROM roads LIMIT 100;" {
		t.Fatalf("Approve() = %q", got)
	}

	got, err = guard.Approve("SELECT * FROM t LIMIT 25")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if got != "SELECT * FROM t LIMIT 25" {
		t.Fatalf("Approve() = %q", got)
	}
}

func TestApproveCustomDefaultLimit(t *testing.T) {
	guard := New(250)
	got, err := guard.Approve("SELECT * FROM t")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if got != "SELECT * FROM t LIMIT 250;" {
		t.Fatalf("Approve() = %q", got)
	}

	guard = New(0)
	got, err = guard.Approve("SELECT * FROM t")
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if got != "SELECT * FROM t LIMIT 100;" {
		t.Fatalf("Approve() = %q, zero limit should fall back to 100", got)
	}
}
