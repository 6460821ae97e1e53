package repository

import (
	"context"

	"github.com/oksasatya/date-app-backend/internal/domain/entity"
)

// ProfileRepository owns users/<uid>. Reads never fail: a missing or
// unreadable profile comes back as the normalized empty profile.
type ProfileRepository interface {
	Exists(ctx context.Context, uid string) bool
	CreateDefault(ctx context.Context, uid, email string) error
	Read(ctx context.Context, uid string) *entity.Profile
	Update(ctx context.Context, uid string, patch entity.ProfilePatch) error
	SetProfileImage(ctx context.Context, uid, url string) error
	Delete(ctx context.Context, uid string) error
	List(ctx context.Context) (map[string]*entity.Profile, error)
}

// ProfileIndex is the optional full-text index of profiles.
type ProfileIndex interface {
	Index(ctx context.Context, summary entity.ProfileSummary) error
	Delete(ctx context.Context, uid string) error
	Search(ctx context.Context, query string, size int) ([]entity.ProfileSummary, error)
}
