package postgres

import (
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5432, User: "shop", Pass: "secret", DB: "store"}
	if got, want := cfg.DSN(), "postgres://shop:secret@db:5432/store?sslmode=disable"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	cfg.SSLMode = "require"
	if got, want := cfg.DSN(), "postgres://shop:secret@db:5432/store?sslmode=require"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDSNEscapesCredentials(t *testing.T) {
	cfg := Config{Host: "db", Port: 5432, User: "shop@eu", Pass: "p@ss/w:rd?", DB: "store"}

	u, err := url.Parse(cfg.DSN())
	if err != nil {
		t.Fatalf("parse %q: %v", cfg.DSN(), err)
	}
	pass, _ := u.User.Password()
	if u.User.Username() != "shop@eu" || pass != "p@ss/w:rd?" {
		t.Fatalf("credentials did not survive: user %q pass %q", u.User.Username(), pass)
	}
	if u.Host != "db:5432" || u.Path != "/store" || u.Query().Get("sslmode") != "disable" {
		t.Fatalf("got %q", cfg.DSN())
	}
}

func TestErrorCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	if !IsUniqueViolation(unique) {
		t.Fatal("expected wrapped unique violation to match")
	}
	if IsUniqueViolation(fk) || !IsForeignKeyViolation(fk) {
		t.Fatal("foreign key violation misclassified")
	}
	if IsUniqueViolation(errors.New("duplicate key")) {
		t.Fatal("plain errors must not match")
	}
}
