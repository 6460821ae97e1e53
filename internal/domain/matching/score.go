// Package matching scores how well a candidate profile fits a seeker.
// Everything here is pure: no store access, no clock, no randomness.
package matching

import (
	"sort"

	"github.com/oksasatya/date-app-backend/internal/domain/entity"
)

// AnonymousName is shown for candidates that never set a display name.
const AnonymousName = "anonymous"

// Seeker is the subset of the caller's profile the score depends on.
type Seeker struct {
	Email  string
	Gender string
	MBTI   string
	Tags   []string
}

// SeekerFrom extracts the scoring inputs from a profile.
func SeekerFrom(p entity.Profile) Seeker {
	s := Seeker{Email: p.Email, Gender: p.Gender}
	if p.Personality != nil {
		s.MBTI = p.Personality.MBTI
		s.Tags = p.Personality.Tags
	}
	return s
}

// Score rates candidate for self. It returns nil when the candidate is the
// seeker or shares the seeker's gender.
func Score(self Seeker, candidate entity.Profile) *entity.MatchRecommendation {
	if candidate.Email == self.Email {
		return nil
	}
	if candidate.Gender == self.Gender {
		return nil
	}

	var theirMBTI string
	var theirTags []string
	if candidate.Personality != nil {
		theirMBTI = candidate.Personality.MBTI
		theirTags = candidate.Personality.Tags
	}

	score := Compatibility(self.MBTI, theirMBTI)
	common := CommonTags(self.Tags, theirTags)
	score += len(common)

	name := candidate.Name
	if name == "" {
		name = AnonymousName
	}
	return &entity.MatchRecommendation{
		Email:      candidate.Email,
		Name:       name,
		MBTI:       theirMBTI,
		CommonTags: common,
		Score:      score,
	}
}

// CommonTags keeps the tags of mine that also appear in theirs, in my order.
func CommonTags(mine, theirs []string) []string {
	set := make(map[string]struct{}, len(theirs))
	for _, t := range theirs {
		set[t] = struct{}{}
	}
	out := []string{}
	for _, t := range mine {
		if _, ok := set[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Rank scores every candidate, drops non-matches and orders the rest by
// score, highest first. Ties keep candidate order.
func Rank(self Seeker, candidates []entity.Profile) []entity.MatchRecommendation {
	out := make([]entity.MatchRecommendation, 0, len(candidates))
	for _, c := range candidates {
		if rec := Score(self, c); rec != nil {
			out = append(out, *rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
