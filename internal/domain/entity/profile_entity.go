package entity

// DefaultProfileImage is served whenever a profile has no uploaded image.
const DefaultProfileImage = "/images/default-profile.png"

// MaxTags bounds both personality.tags and personality.likeTags.
const MaxTags = 5

// Profile is the per-user document stored under users/<internal id>.
// Fields mirror the stored keys; Personality is nil when the stored
// document has no personality subtree.
type Profile struct {
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	Birthdate    string       `json:"birthdate"`
	Bio          string       `json:"bio"`
	Gender       string       `json:"gender"`
	ProfileImage string       `json:"profileImage"`
	Personality  *Personality `json:"personality"`
}

// Personality holds the MBTI code and the self/liked tag lists.
type Personality struct {
	MBTI     string   `json:"mbti"`
	Tags     []string `json:"tags"`
	LikeTags []string `json:"likeTags"`
}

// Normalize fills the structurally required fields a stored profile may be
// missing. It never mutates p and Normalize(Normalize(p)) == Normalize(p).
func Normalize(p Profile) Profile {
	out := p
	if out.ProfileImage == "" {
		out.ProfileImage = DefaultProfileImage
	}
	pers := Personality{}
	if p.Personality != nil {
		pers = *p.Personality
	}
	pers.Tags = nonNil(pers.Tags)
	pers.LikeTags = nonNil(pers.LikeTags)
	out.Personality = &pers
	return out
}

func nonNil(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// NewDefaultProfile is the document written when an identity signs in for
// the first time. profileImage and likeTags are left out on purpose; reads
// normalize them.
func NewDefaultProfile(email string) map[string]any {
	return map[string]any{
		"email":     email,
		"name":      "",
		"birthdate": "",
		"bio":       "",
		"gender":    "",
		"personality": map[string]any{
			"mbti": "",
			"tags": []string{},
		},
	}
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	Name         *string
	Birthdate    *string
	Bio          *string
	Gender       *string
	MBTI         *string
	Tags         []string
	LikeTags     []string
	ProfileImage *string
}

// Paths flattens the patch into store sub-paths relative to the profile root.
func (p ProfilePatch) Paths() map[string]any {
	out := map[string]any{}
	set := func(path string, v *string) {
		if v != nil {
			out[path] = *v
		}
	}
	set("name", p.Name)
	set("birthdate", p.Birthdate)
	set("bio", p.Bio)
	set("gender", p.Gender)
	set("personality/mbti", p.MBTI)
	set("profileImage", p.ProfileImage)
	if p.Tags != nil {
		out["personality/tags"] = p.Tags
	}
	if p.LikeTags != nil {
		out["personality/likeTags"] = p.LikeTags
	}
	return out
}

// MatchRecommendation is one scored candidate. It is never persisted.
type MatchRecommendation struct {
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	MBTI       string   `json:"mbti"`
	CommonTags []string `json:"commonTags"`
	Score      int      `json:"score"`
}

// ProfileSummary is the searchable projection of a profile.
type ProfileSummary struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Gender       string   `json:"gender"`
	MBTI         string   `json:"mbti"`
	Tags         []string `json:"tags"`
	ProfileImage string   `json:"profileImage"`
}

// Summarize projects a normalized profile for the search index.
func Summarize(uid string, p *Profile) ProfileSummary {
	n := Normalize(*p)
	return ProfileSummary{
		ID:           uid,
		Email:        n.Email,
		Name:         n.Name,
		Gender:       n.Gender,
		MBTI:         n.Personality.MBTI,
		Tags:         n.Personality.Tags,
		ProfileImage: n.ProfileImage,
	}
}
