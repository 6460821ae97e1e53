package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFillsMissingFields(t *testing.T) {
	got := Normalize(Profile{Email: "a@x"})

	assert.Equal(t, DefaultProfileImage, got.ProfileImage)
	require.NotNil(t, got.Personality)
	assert.Equal(t, "", got.Personality.MBTI)
	assert.Equal(t, []string{}, got.Personality.Tags)
	assert.Equal(t, []string{}, got.Personality.LikeTags)
}

func TestNormalizeKeepsPresentFields(t *testing.T) {
	in := Profile{
		ProfileImage: "https://img/1.png",
		Personality:  &Personality{MBTI: "INFP", Tags: []string{"coffee"}},
	}

	got := Normalize(in)

	assert.Equal(t, "https://img/1.png", got.ProfileImage)
	assert.Equal(t, "INFP", got.Personality.MBTI)
	assert.Equal(t, []string{"coffee"}, got.Personality.Tags)
	assert.Equal(t, []string{}, got.Personality.LikeTags)
	assert.Nil(t, in.Personality.LikeTags, "input must not be mutated")
}

func TestNormalizeIsIdempotent(t *testing.T) {
	cases := []Profile{
		{},
		{Email: "a@x", Name: "A"},
		{ProfileImage: "u"},
		{Personality: &Personality{}},
		{Personality: &Personality{MBTI: "ENFJ", LikeTags: []string{"x"}}},
		{Personality: &Personality{Tags: []string{"a", "b"}, LikeTags: []string{}}},
	}
	for _, p := range cases {
		once := Normalize(p)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestProfilePatchPaths(t *testing.T) {
	name := "Kim"
	mbti := "INTJ"
	patch := ProfilePatch{Name: &name, MBTI: &mbti, LikeTags: []string{}}

	assert.Equal(t, map[string]any{
		"name":                 "Kim",
		"personality/mbti":     "INTJ",
		"personality/likeTags": []string{},
	}, patch.Paths())
	assert.Empty(t, ProfilePatch{}.Paths())
}

func TestSanitizeAndRoomID(t *testing.T) {
	assert.Equal(t, "b_at_y", SanitizeID("b@y"))
	assert.Equal(t, "first_dot_last_at_mail_dot_com", SanitizeID("first.last@mail.com"))
	assert.Equal(t, "a_hash_b_slash_c", SanitizeID("a#b/c"))

	room := ChatRoomID("b@y", "a@x")
	assert.Equal(t, "a_at_x_b_at_y", room)
	assert.Equal(t, room, ChatRoomID("a@x", "b@y"))
	assert.Contains(t, room, SanitizeID("a@x"))
	assert.Contains(t, room, SanitizeID("b@y"))
}
