package errors

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestDumpNilError(t *testing.T) {
	r := Dump(nil)
	if r.Message != "" || r.Code != "" || r.Chain != nil || r.PG != nil {
		t.Fatalf("expected zero report, got %+v", r)
	}
}

func TestDumpCarriesCodeAndChain(t *testing.T) {
	err := Wrap(CodeNotFound, fmt.Errorf("row missing"), "load vendor")

	r := Dump(err)
	if r.Code != CodeNotFound {
		t.Fatalf("expected code %s, got %s", CodeNotFound, r.Code)
	}
	if len(r.Chain) < 2 {
		t.Fatalf("expected unwrap chain, got %v", r.Chain)
	}
	if r.PG != nil {
		t.Fatalf("expected no pg detail, got %+v", r.PG)
	}
}

func TestDumpExtractsPostgresDetail(t *testing.T) {
	driverErr := &pq.Error{
		Code:       "23505",
		Constraint: "idx_users_email",
		Table:      "users",
		Detail:     "Key (email)=(dup@example.com) already exists.",
	}
	err := Wrap(CodeConflict, fmt.Errorf("create user: %w", driverErr), "register")

	r := Dump(err)
	if r.PG == nil {
		t.Fatal("expected pg detail")
	}
	if r.PG.Code != "23505" || r.PG.Constraint != "idx_users_email" || r.PG.Table != "users" {
		t.Fatalf("unexpected pg detail: %+v", r.PG)
	}
}
