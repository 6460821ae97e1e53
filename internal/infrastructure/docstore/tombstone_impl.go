package docstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/oksasatya/date-app-backend/internal/domain/entity"
	"github.com/oksasatya/date-app-backend/internal/domain/repository"
	"github.com/oksasatya/date-app-backend/internal/store"
)

const tombstoneRoot = "deleted_accounts"

// TombstoneStore keeps deleted_accounts/<sha256(email)> = {uid, deletedAt}.
// The email itself is not stored.
type TombstoneStore struct {
	Store store.Gateway
}

func NewTombstoneStore(g store.Gateway) *TombstoneStore {
	return &TombstoneStore{Store: g}
}

type tombstone struct {
	UID       string `json:"uid"`
	DeletedAt int64  `json:"deletedAt"`
}

func tombstonePath(email string) string {
	sum := sha256.Sum256([]byte(entity.CanonicalEmail(email)))
	return store.Join(tombstoneRoot, hex.EncodeToString(sum[:]))
}

func (s *TombstoneStore) Record(ctx context.Context, email, uid string, at time.Time) error {
	return s.Store.Write(ctx, tombstonePath(email), tombstone{UID: uid, DeletedAt: at.UnixMilli()})
}

func (s *TombstoneStore) Lookup(ctx context.Context, email string) (string, error) {
	snap, err := s.Store.ReadOnce(ctx, tombstonePath(email))
	if err != nil {
		return "", err
	}
	var t tombstone
	if err := snap.Decode(&t); err != nil {
		return "", err
	}
	if t.UID == "" {
		return "", repository.ErrIdentityNotFound
	}
	return t.UID, nil
}
