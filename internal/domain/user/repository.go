package user

import (
	"context"

	"github.com/riskibarqy/football-portal/internal/platform/record"
)

// Repository describes user persistence needs from use cases.
type Repository interface {
	record.Store
	CredentialsByEmail(ctx context.Context, email string) (Credentials, bool, error)
}
