package database

import (
	"context"
	"strings"
	"testing"
)

func TestBuildDSNMySQLDefaults(t *testing.T) {
	dsn, driver, err := buildDSN(Config{Driver: DriverMySQL, User: "root", Name: "campus_vending"})
	if err != nil {
		t.Fatalf("buildDSN() error = %v", err)
	}
	if driver != "mysql" {
		t.Fatalf("driver = %q", driver)
	}
	want := "root:@tcp(localhost:3306)/campus_vending?parseTime=true"
	if dsn != want {
		t.Fatalf("dsn = %q, want %q", dsn, want)
	}
}

func TestBuildDSNPostgres(t *testing.T) {
	dsn, driver, err := buildDSN(Config{
		Driver:   DriverPostgres,
		Host:     "db.internal",
		Port:     5433,
		User:     "reader",
		Password: "p@ss/word",
		Name:     "analytics",
	})
	if err != nil {
		t.Fatalf("buildDSN() error = %v", err)
	}
	if driver != "pgx" {
		t.Fatalf("driver = %q", driver)
	}
	if !strings.HasPrefix(dsn, "postgres://reader:") {
		t.Fatalf("dsn = %q", dsn)
	}
	if !strings.Contains(dsn, "@db.internal:5433/analytics") {
		t.Fatalf("dsn = %q", dsn)
	}
	if strings.Contains(dsn, "p@ss/word") {
		t.Fatalf("password not escaped in dsn %q", dsn)
	}
}

func TestBuildDSNUnknownDriver(t *testing.T) {
	if _, _, err := buildDSN(Config{Driver: "oracle", Name: "x"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestOpenRequiresDatabaseName(t *testing.T) {
	if _, err := Open(context.Background(), Config{Driver: DriverMySQL}); err == nil {
		t.Fatal("expected error for empty database name")
	}
}
