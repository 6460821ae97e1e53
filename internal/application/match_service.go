package application

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/date-app-backend/internal/domain/entity"
	"github.com/oksasatya/date-app-backend/internal/domain/matching"
	"github.com/oksasatya/date-app-backend/internal/domain/repository"
	"github.com/oksasatya/date-app-backend/internal/metrics"
)

type MatchService struct {
	Directory *IdentityDirectory
	Profiles  repository.ProfileRepository
	Chats     repository.ChatIndex
	Logger    *logrus.Logger
}

// Recommendations ranks every other profile for the caller, leaving out
// people the caller already has a conversation with.
func (s *MatchService) Recommendations(ctx context.Context, email string) ([]entity.MatchRecommendation, error) {
	uid, err := s.Directory.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}
	self := s.Profiles.Read(ctx, uid)
	all, err := s.Profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	exclude := map[string]struct{}{}
	partners, err := s.Chats.Partners(ctx, entity.SanitizeID(email))
	if err != nil {
		loggerOr(s.Logger).WithError(err).WithField("user_id", uid).Warn("chat partners unavailable, not excluding")
	}
	for _, p := range partners {
		exclude[p] = struct{}{}
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		if id != uid {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	candidates := make([]entity.Profile, 0, len(ids))
	for _, id := range ids {
		p := all[id]
		if _, ok := exclude[p.Email]; ok {
			continue
		}
		candidates = append(candidates, *p)
	}

	seeker := matching.SeekerFrom(*self)
	seeker.Email = email
	recs := matching.Rank(seeker, candidates)
	metrics.RecommendationsServed.Observe(float64(len(recs)))
	return recs, nil
}
