package database

import (
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestDSN(t *testing.T) {
	dsn := DSN("lab", "p@ss", "db", "3306", "labres")
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("parse %q: %v", dsn, err)
	}
	if cfg.User != "lab" || cfg.Passwd != "p@ss" || cfg.Addr != "db:3306" || cfg.DBName != "labres" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if !cfg.ParseTime || cfg.Loc.String() != "UTC" {
		t.Fatalf("parseTime=%t loc=%s", cfg.ParseTime, cfg.Loc)
	}
	if !strings.Contains(dsn, "charset=utf8mb4") {
		t.Fatalf("dsn %q lacks charset", dsn)
	}
}

func TestSchemaIsIdempotent(t *testing.T) {
	for _, stmt := range schema {
		if !strings.Contains(stmt, "IF NOT EXISTS") {
			t.Errorf("statement is not idempotent: %.40s", stmt)
		}
	}
}
