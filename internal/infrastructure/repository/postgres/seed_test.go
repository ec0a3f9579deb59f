package postgres

import (
	"context"
	"testing"

	"github.com/riskibarqy/football-portal/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

func TestBootstrapAdmin(t *testing.T) {
	user.HashCost = bcrypt.MinCost

	gw := newTestGateway(t)
	ctx := context.Background()
	seed := AdminSeed{Email: "Root@Example.com", Password: "change-me-now"}

	created, err := BootstrapAdmin(ctx, gw, seed)
	if err != nil {
		t.Fatalf("bootstrap admin: %v", err)
	}
	if !created {
		t.Fatalf("expected admin to be created on empty table")
	}

	creds, ok, err := NewUserRepository(gw).CredentialsByEmail(ctx, "root@example.com")
	if err != nil || !ok {
		t.Fatalf("load seeded admin: ok=%v err=%v", ok, err)
	}
	if creds.Role != user.RoleAdmin || creds.Name != "Administrator" || !creds.Matches("change-me-now") {
		t.Fatalf("unexpected seeded admin: %+v", creds.Principal())
	}

	created, err = BootstrapAdmin(ctx, gw, AdminSeed{Email: "other@example.com", Password: "another-pass"})
	if err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	if created {
		t.Fatalf("expected no seed once a user exists")
	}
}

func TestBootstrapAdmin_SkipsWithoutCredentials(t *testing.T) {
	t.Parallel()

	created, err := BootstrapAdmin(context.Background(), nil, AdminSeed{})
	if err != nil || created {
		t.Fatalf("expected no-op, got created=%v err=%v", created, err)
	}
}
