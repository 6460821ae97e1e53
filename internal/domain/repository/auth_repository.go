package repository

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/date-app-backend/internal/domain/entity"
)

var (
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrSessionNotFound    = errors.New("session not found")
)

// Identity is what the authentication provider knows about a user.
type Identity struct {
	UID   string
	Email string
}

// Credentials carries either a provider ID token or an email/password pair.
type Credentials struct {
	IDToken  string
	Email    string
	Password string
}

// AuthProvider is the external identity system.
type AuthProvider interface {
	ResolveIDByEmail(ctx context.Context, email string) (string, error)
	// DeleteAccount succeeds when the account is already gone.
	DeleteAccount(ctx context.Context, uid string) error
	SignIn(ctx context.Context, cred Credentials) (*Identity, error)
	Register(ctx context.Context, email, password string) (*Identity, error)
}

// TombstoneStore remembers deleted identities so a cascade can be re-run.
type TombstoneStore interface {
	Record(ctx context.Context, email, uid string, at time.Time) error
	Lookup(ctx context.Context, email string) (string, error)
}

// SessionStore keeps one active login session per user.
type SessionStore interface {
	Save(ctx context.Context, s entity.Session, ttl time.Duration) error
	Get(ctx context.Context, uid string) (*entity.Session, error)
	Revoke(ctx context.Context, uid string) error
}
