package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/football-portal/internal/domain/user"
	"github.com/riskibarqy/football-portal/internal/platform/database"
	qb "github.com/riskibarqy/football-portal/internal/platform/querybuilder"
	"github.com/riskibarqy/football-portal/internal/platform/record"
)

type UserRepository struct {
	*record.Model
}

func NewUserRepository(exec database.Executor) *UserRepository {
	return &UserRepository{Model: record.MustModel(exec, user.Schema)}
}

// CredentialsByEmail is the only read path that selects the password hash.
func (r *UserRepository) CredentialsByEmail(ctx context.Context, email string) (user.Credentials, bool, error) {
	exec := r.Executor()
	query, args, err := qb.Select("id", "name", "email", user.PasswordField, "role").
		From(user.Schema.Collection).
		Where(qb.Eq("email", strings.ToLower(strings.TrimSpace(email)))).
		Limit(1).
		PlaceholderFormat(exec.Placeholder()).
		ToSQL()
	if err != nil {
		return user.Credentials{}, false, fmt.Errorf("build get user credentials query: %w", err)
	}

	var creds user.Credentials
	if err := exec.Get(ctx, &creds, query, args...); err != nil {
		if isNotFound(err) {
			return user.Credentials{}, false, nil
		}
		return user.Credentials{}, false, fmt.Errorf("get user credentials: %w", err)
	}
	return creds, true, nil
}

var _ user.Repository = (*UserRepository)(nil)
