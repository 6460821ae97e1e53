package docstore

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/date-app-backend/internal/domain/entity"
	"github.com/oksasatya/date-app-backend/internal/store"
)

const usersRoot = "users"

type ProfileRepository struct {
	Store  store.Gateway
	Logger *logrus.Logger
}

func NewProfileRepository(g store.Gateway, logger *logrus.Logger) *ProfileRepository {
	return &ProfileRepository{Store: g, Logger: logger}
}

func profilePath(uid string) string {
	return store.Join(usersRoot, uid)
}

// Exists reports false when the read itself fails.
func (r *ProfileRepository) Exists(ctx context.Context, uid string) bool {
	snap, err := r.Store.ReadOnce(ctx, profilePath(uid))
	if err != nil {
		r.warn(err, uid, "profile existence check failed")
		return false
	}
	return snap.Exists()
}

func (r *ProfileRepository) CreateDefault(ctx context.Context, uid, email string) error {
	return r.Store.Write(ctx, profilePath(uid), entity.NewDefaultProfile(email))
}

// Read returns the normalized profile, or the normalized empty profile when
// the document is missing or cannot be read.
func (r *ProfileRepository) Read(ctx context.Context, uid string) *entity.Profile {
	var p entity.Profile
	snap, err := r.Store.ReadOnce(ctx, profilePath(uid))
	if err != nil {
		r.warn(err, uid, "profile read failed, using defaults")
	} else if err := snap.Decode(&p); err != nil {
		r.warn(err, uid, "profile decode failed, using defaults")
		p = entity.Profile{}
	}
	n := entity.Normalize(p)
	return &n
}

func (r *ProfileRepository) Update(ctx context.Context, uid string, patch entity.ProfilePatch) error {
	paths := patch.Paths()
	if len(paths) == 0 {
		return nil
	}
	return r.Store.Update(ctx, profilePath(uid), paths)
}

func (r *ProfileRepository) SetProfileImage(ctx context.Context, uid, url string) error {
	return r.Store.Write(ctx, store.Join(profilePath(uid), "profileImage"), url)
}

func (r *ProfileRepository) Delete(ctx context.Context, uid string) error {
	return r.Store.Delete(ctx, profilePath(uid))
}

// List reads every profile in one pass, keyed by user id. Undecodable
// documents are skipped.
func (r *ProfileRepository) List(ctx context.Context) (map[string]*entity.Profile, error) {
	snap, err := r.Store.ReadOnce(ctx, usersRoot)
	if err != nil {
		return nil, err
	}
	children := snap.Children()
	out := make(map[string]*entity.Profile, len(children))
	for _, child := range children {
		var p entity.Profile
		if err := child.Decode(&p); err != nil {
			r.warn(err, child.Key(), "skipping undecodable profile")
			continue
		}
		n := entity.Normalize(p)
		out[child.Key()] = &n
	}
	return out, nil
}

func (r *ProfileRepository) warn(err error, uid, msg string) {
	if r.Logger != nil {
		r.Logger.WithError(err).WithField("user_id", uid).Warn(msg)
	}
}
