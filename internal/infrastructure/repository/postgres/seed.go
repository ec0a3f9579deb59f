package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/football-portal/internal/domain/user"
	"github.com/riskibarqy/football-portal/internal/platform/database"
)

// AdminSeed is the first account created on an empty users table.
type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

// BootstrapAdmin creates the seed admin when no user exists yet. It reports
// whether a user was created.
func BootstrapAdmin(ctx context.Context, exec database.Executor, seed AdminSeed) (bool, error) {
	if strings.TrimSpace(seed.Email) == "" || seed.Password == "" {
		return false, nil
	}

	users := NewUserRepository(exec)
	existing, err := users.Paginate(ctx, 1, 1)
	if err != nil {
		return false, fmt.Errorf("count users for bootstrap seed: %w", err)
	}
	if existing.TotalCount > 0 {
		return false, nil
	}

	name := strings.TrimSpace(seed.Name)
	if name == "" {
		name = "Administrator"
	}
	fields, err := user.CreateInput{
		Name:     name,
		Email:    seed.Email,
		Password: seed.Password,
		Role:     user.RoleAdmin,
	}.Record()
	if err != nil {
		return false, fmt.Errorf("project seed admin: %w", err)
	}
	if _, err := users.Create(ctx, fields); err != nil {
		return false, fmt.Errorf("seed admin %s: %w", seed.Email, err)
	}
	return true, nil
}
