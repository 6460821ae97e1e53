package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/date-app-backend/internal/domain/entity"
	"github.com/oksasatya/date-app-backend/internal/domain/repository"
	"github.com/oksasatya/date-app-backend/pkg/helpers"
)

// IdentityDirectory maps an email to the provider's internal user id.
type IdentityDirectory struct {
	Auth       repository.AuthProvider
	Tombstones repository.TombstoneStore
	Logger     *logrus.Logger
}

func NewIdentityDirectory(auth repository.AuthProvider, tombstones repository.TombstoneStore, logger *logrus.Logger) *IdentityDirectory {
	return &IdentityDirectory{Auth: auth, Tombstones: tombstones, Logger: logger}
}

// Resolve returns ErrIdentityNotFound when the provider has no such account.
// Provider failures are returned wrapped as they are.
func (d *IdentityDirectory) Resolve(ctx context.Context, email string) (string, error) {
	email = entity.CanonicalEmail(email)
	if email == "" {
		return "", ErrIdentityNotFound
	}
	uid, err := d.Auth.ResolveIDByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return "", ErrIdentityNotFound
		}
		return "", fmt.Errorf("resolve identity: %w", err)
	}
	return uid, nil
}

// ResolveForDeletion also finds identities whose auth record an earlier
// cascade already removed.
func (d *IdentityDirectory) ResolveForDeletion(ctx context.Context, email string) (string, error) {
	uid, err := d.Resolve(ctx, email)
	if err == nil || !errors.Is(err, ErrIdentityNotFound) || d.Tombstones == nil {
		return uid, err
	}
	uid, terr := d.Tombstones.Lookup(ctx, email)
	if terr != nil {
		if !errors.Is(terr, repository.ErrIdentityNotFound) && d.Logger != nil {
			d.Logger.WithError(terr).Warn("tombstone lookup failed")
		}
		return "", ErrIdentityNotFound
	}
	return uid, nil
}

func loggerOr(l *logrus.Logger) *logrus.Logger {
	if l != nil {
		return l
	}
	return helpers.NewDiscardLogger()
}
