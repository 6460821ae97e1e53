package application

import (
	"context"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/date-app-backend/internal/domain/entity"
	"github.com/oksasatya/date-app-backend/internal/domain/repository"
	"github.com/oksasatya/date-app-backend/pkg/validation"
)

type ProfileService struct {
	Directory *IdentityDirectory
	Profiles  repository.ProfileRepository
	Images    repository.ImageStore
	Index     repository.ProfileIndex
	Validate  *validator.Validate
	Logger    *logrus.Logger
}

// UpdateProfileInput is the partial update accepted from clients. Absent
// fields are left as they are.
type UpdateProfileInput struct {
	Name            *string  `json:"name"`
	Birthdate       *string  `json:"birthdate"`
	Bio             *string  `json:"bio"`
	Gender          *string  `json:"gender"`
	MBTI            *string  `json:"mbti"`
	Tags            []string `json:"tags" validate:"omitempty,max=5"`
	LikeTags        []string `json:"likeTags" validate:"omitempty,max=5"`
	ProfileImageURL *string  `json:"profileImageUrl"`
}

func (in UpdateProfileInput) patch() entity.ProfilePatch {
	return entity.ProfilePatch{
		Name:         in.Name,
		Birthdate:    in.Birthdate,
		Bio:          in.Bio,
		Gender:       in.Gender,
		MBTI:         in.MBTI,
		Tags:         in.Tags,
		LikeTags:     in.LikeTags,
		ProfileImage: in.ProfileImageURL,
	}
}

func (s *ProfileService) validate() *validator.Validate {
	if s.Validate != nil {
		return s.Validate
	}
	return validation.Default()
}

// GetProfile returns the caller's normalized profile.
func (s *ProfileService) GetProfile(ctx context.Context, email string) (*entity.Profile, error) {
	uid, err := s.Directory.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.Profiles.Read(ctx, uid), nil
}

// UpdateProfile validates in, then writes only the provided fields.
func (s *ProfileService) UpdateProfile(ctx context.Context, email string, in UpdateProfileInput) error {
	if err := s.validate().Struct(in); err != nil {
		return &ValidationError{Details: validation.ToDetails(err)}
	}
	uid, err := s.Directory.Resolve(ctx, email)
	if err != nil {
		return err
	}
	if err := s.Profiles.Update(ctx, uid, in.patch()); err != nil {
		return err
	}
	s.reindex(ctx, uid)
	return nil
}

// UploadProfileImage stores the image and points profileImage at it.
func (s *ProfileService) UploadProfileImage(ctx context.Context, email string, r io.Reader, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", &ValidationError{Details: map[string]string{"file": "must be an image"}}
	}
	if s.Images == nil {
		return "", ErrImagesUnavailable
	}
	uid, err := s.Directory.Resolve(ctx, email)
	if err != nil {
		return "", err
	}
	url, err := s.Images.UploadProfileImage(ctx, uid, r, contentType)
	if err != nil {
		return "", err
	}
	if err := s.Profiles.SetProfileImage(ctx, uid, url); err != nil {
		return "", err
	}
	s.reindex(ctx, uid)
	return url, nil
}

// SearchProfiles runs a full-text query; without an index it finds nothing.
func (s *ProfileService) SearchProfiles(ctx context.Context, q string, size int) ([]entity.ProfileSummary, error) {
	if s.Index == nil || strings.TrimSpace(q) == "" {
		return []entity.ProfileSummary{}, nil
	}
	return s.Index.Search(ctx, q, size)
}

// ReindexAll pushes every stored profile to the search index.
func (s *ProfileService) ReindexAll(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	all, err := s.Profiles.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for uid, p := range all {
		if err := s.Index.Index(ctx, entity.Summarize(uid, p)); err != nil {
			loggerOr(s.Logger).WithError(err).WithField("user_id", uid).Warn("es index failed")
			continue
		}
		n++
	}
	return n, nil
}

func (s *ProfileService) reindex(ctx context.Context, uid string) {
	if s.Index == nil {
		return
	}
	p := s.Profiles.Read(ctx, uid)
	if err := s.Index.Index(ctx, entity.Summarize(uid, p)); err != nil {
		loggerOr(s.Logger).WithError(err).WithField("user_id", uid).Warn("es index failed")
	}
}
