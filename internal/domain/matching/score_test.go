package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/date-app-backend/internal/domain/entity"
)

func candidate(email, gender, name, mbti string, tags ...string) entity.Profile {
	return entity.Profile{
		Email:       email,
		Gender:      gender,
		Name:        name,
		Personality: &entity.Personality{MBTI: mbti, Tags: tags},
	}
}

func TestScoreExample(t *testing.T) {
	self := Seeker{Email: "a@x", Gender: "F", MBTI: "INFP", Tags: []string{"hiking", "coffee"}}

	rec := Score(self, candidate("b@x", "M", "Bo", "ENFJ", "coffee", "movies"))

	require.NotNil(t, rec)
	assert.Equal(t, "b@x", rec.Email)
	assert.Equal(t, "Bo", rec.Name)
	assert.Equal(t, "ENFJ", rec.MBTI)
	assert.Equal(t, []string{"coffee"}, rec.CommonTags)
	assert.Equal(t, 6, rec.Score)
}

func TestScoreExcludesSelfAndSameGender(t *testing.T) {
	self := Seeker{Email: "a@x", Gender: "F", MBTI: "INFP", Tags: []string{"coffee"}}

	tests := []struct {
		name string
		c    entity.Profile
	}{
		{"self even with other gender", candidate("a@x", "M", "", "ENFJ", "coffee")},
		{"same gender", candidate("b@x", "F", "", "ENFJ", "coffee")},
		{"same gender without personality", entity.Profile{Email: "c@x", Gender: "F"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Score(self, tt.c))
		})
	}

	noGender := Seeker{Email: "z@x"}
	assert.Nil(t, Score(noGender, entity.Profile{Email: "y@x"}), "two empty genders are equal")
}

func TestScoreDefaultsAndUnknownTypes(t *testing.T) {
	self := Seeker{Email: "a@x", Gender: "F", MBTI: "XXXX", Tags: []string{"coffee"}}

	rec := Score(self, entity.Profile{Email: "b@x", Gender: "M"})
	require.NotNil(t, rec)
	assert.Equal(t, AnonymousName, rec.Name)
	assert.Equal(t, "", rec.MBTI)
	assert.Equal(t, []string{}, rec.CommonTags)
	assert.Equal(t, 0, rec.Score)

	self.MBTI = "INTJ"
	rec = Score(self, candidate("b@x", "M", "", "QQQQ", "coffee"))
	require.NotNil(t, rec)
	assert.Equal(t, 1, rec.Score, "unknown candidate type contributes 0")
}

func TestCommonTagsFollowsSeekerOrder(t *testing.T) {
	assert.Equal(t, []string{"c", "a"}, CommonTags([]string{"c", "x", "a"}, []string{"a", "b", "c"}))
	assert.Equal(t, []string{}, CommonTags(nil, []string{"a"}))
}

func TestCompatibilityTableShape(t *testing.T) {
	require.Len(t, compatibilityRows, 16)
	for _, a := range Types {
		for _, b := range Types {
			v := Compatibility(a, b)
			assert.GreaterOrEqual(t, v, 1, "%s->%s", a, b)
			assert.LessOrEqual(t, v, 5, "%s->%s", a, b)
		}
	}
}

func TestCompatibilityKeepsAsymmetries(t *testing.T) {
	assert.Equal(t, 5, Compatibility("ESFP", "ENFJ"))
	assert.Equal(t, 1, Compatibility("ENFJ", "ESFP"))
	assert.Equal(t, 5, Compatibility("INFP", "ENFJ"))
	assert.Equal(t, 5, Compatibility("INTP", "ESTJ"))
	assert.Equal(t, 2, Compatibility("INTJ", "ESTJ"))
	assert.Equal(t, 0, Compatibility("", "INFP"))
}

func TestRankOrdersByScoreAndDropsNone(t *testing.T) {
	self := Seeker{Email: "a@x", Gender: "F", MBTI: "INFP", Tags: []string{"coffee", "hiking"}}
	candidates := []entity.Profile{
		candidate("low@x", "M", "Low", "ISTJ"),
		candidate("same@x", "F", "Same", "ENFJ"),
		candidate("high@x", "M", "High", "ENFJ", "hiking", "coffee"),
		candidate("mid@x", "M", "Mid", "ENFJ"),
		candidate("a@x", "M", "Me", "ENFJ"),
	}

	got := Rank(self, candidates)

	require.Len(t, got, 3)
	assert.Equal(t, "high@x", got[0].Email)
	assert.Equal(t, 7, got[0].Score)
	assert.Equal(t, "mid@x", got[1].Email)
	assert.Equal(t, "low@x", got[2].Email)
}
