package user

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/football-portal/internal/platform/record"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleUser   = "user"
)

// PasswordField is writable but never readable through the record model.
const PasswordField = "password"

var Schema = record.Schema{
	Collection: "users",
	Fields:     []string{"id", "name", "email", PasswordField, "role", "created_at", "updated_at"},
	Writable:   []string{"name", "email", PasswordField, "role"},
	Sensitive:  []string{PasswordField},
	Searchable: []string{"name", "email"},
	Timestamps: true,
}

// HashCost is the bcrypt cost applied to new passwords.
var HashCost = bcrypt.DefaultCost

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), HashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type CreateInput struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email,max=200"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=admin editor user"`
}

func (in CreateInput) Record() (record.Record, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = RoleUser
	}
	return record.Record{
		"name":        in.Name,
		"email":       normalizeEmail(in.Email),
		PasswordField: hash,
		"role":        role,
	}, nil
}

type UpdateInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=120"`
	Email    *string `json:"email" validate:"omitempty,email,max=200"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin editor user"`
}

func (in UpdateInput) Record() (record.Record, error) {
	rec := record.Record{}
	record.Put(rec, "name", in.Name)
	if in.Email != nil {
		rec["email"] = normalizeEmail(*in.Email)
	}
	if in.Password != nil {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		rec[PasswordField] = hash
	}
	record.Put(rec, "role", in.Role)
	return rec, nil
}

// Credentials is the login view of a user, including the password hash.
// It never leaves the auth flow.
type Credentials struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
	Role         string `db:"role"`
}

func (c Credentials) Matches(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(plain)) == nil
}

func (c Credentials) Principal() Principal {
	return Principal{ID: c.ID, Name: c.Name, Email: c.Email, Role: c.Role}
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CanEdit reports whether the principal may use the content admin.
func (p Principal) CanEdit() bool {
	return p.Role == RoleAdmin || p.Role == RoleEditor
}

func (p Principal) HasRole(roles ...string) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
