package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/date-app-backend/internal/domain/entity"
	"github.com/oksasatya/date-app-backend/internal/domain/repository"
	"github.com/oksasatya/date-app-backend/pkg/helpers"
)

const uniqueViolation = "23505"

// AccountRepository is the local authentication provider: email/password
// accounts in Postgres, bcrypt hashed.
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func normalizeEmail(email string) string {
	return entity.CanonicalEmail(email)
}

func (r *AccountRepository) getByEmail(ctx context.Context, email string) (*entity.Account, error) {
	a := &entity.Account{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at, updated_at
		FROM accounts
		WHERE lower(email) = $1
	`, normalizeEmail(email))

	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrIdentityNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AccountRepository) ResolveIDByEmail(ctx context.Context, email string) (string, error) {
	a, err := r.getByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return a.ID, nil
}

// DeleteAccount removes the account row; a missing row is not an error.
func (r *AccountRepository) DeleteAccount(ctx context.Context, uid string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, uid); err != nil {
		return fmt.Errorf("delete account %s: %w", uid, err)
	}
	return nil
}

func (r *AccountRepository) SignIn(ctx context.Context, cred repository.Credentials) (*repository.Identity, error) {
	if cred.Email == "" || cred.Password == "" {
		return nil, repository.ErrInvalidCredentials
	}
	a, err := r.getByEmail(ctx, cred.Email)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, repository.ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(a.PasswordHash, cred.Password) {
		return nil, repository.ErrInvalidCredentials
	}
	return &repository.Identity{UID: a.ID, Email: a.Email}, nil
}

func (r *AccountRepository) Register(ctx context.Context, email, password string) (*repository.Identity, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	a := &entity.Account{Email: normalizeEmail(email), PasswordHash: hash}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, a.Email, a.PasswordHash)

	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, repository.ErrEmailTaken
		}
		return nil, err
	}
	return &repository.Identity{UID: a.ID, Email: a.Email}, nil
}

var _ repository.AuthProvider = (*AccountRepository)(nil)
