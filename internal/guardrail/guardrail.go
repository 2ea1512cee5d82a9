// Package guardrail decides whether model-produced SQL may reach the
// database. The check is a prefix match, not a parser: it does not split on
// statement separators or strip comments before matching, so a statement
// smuggled after a semicolon or inside a comment is not detected. Its job is
// to make plain non-SELECT output structurally impossible to execute.
package guardrail

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	selectPattern = regexp.MustCompile(`(?is)^\s*select\b`)
	limitPattern  = regexp.MustCompile(`(?i)\blimit\s+\d+\b`)
)

// UnsafeQueryError carries the full candidate text for diagnostics.
type UnsafeQueryError struct {
	SQL string
}

func (e *UnsafeQueryError) Error() string {
	return "unsafe query, only SELECT statements may execute:\n" + e.SQL
}

type Guard struct {
	defaultLimit int
}

func New(defaultLimit int) *Guard {
	if defaultLimit <= 0 {
		defaultLimit = 100
	}
	return &Guard{defaultLimit: defaultLimit}
}

// Approve returns the candidate trimmed and, when it carries no LIMIT clause,
// with a row ceiling appended. Anything that does not start with SELECT is
// rejected; a rejected candidate is never sent back to the model for repair.
// Approve is idempotent on its own output.
func (g *Guard) Approve(candidate string) (string, error) {
	trimmed := strings.TrimSpace(candidate)
	if !selectPattern.MatchString(trimmed) {
		return "", &UnsafeQueryError{SQL: candidate}
	}
	if limitPattern.MatchString(trimmed) {
		return trimmed, nil
	}

	stripped := trimmed
	for strings.HasSuffix(stripped, ";") {
		stripped = strings.TrimRight(strings.TrimSuffix(stripped, ";"), " \t\r\n")
	}
	return stripped + " LIMIT " + strconv.Itoa(g.defaultLimit) + ";", nil
}
