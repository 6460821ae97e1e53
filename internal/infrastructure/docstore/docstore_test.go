package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/date-app-backend/internal/domain/entity"
	"github.com/oksasatya/date-app-backend/internal/domain/repository"
	"github.com/oksasatya/date-app-backend/internal/store"
)

var (
	_ repository.ProfileRepository = (*ProfileRepository)(nil)
	_ repository.ChatIndex         = (*ChatIndex)(nil)
	_ repository.TombstoneStore    = (*TombstoneStore)(nil)
)

func newGateway(t *testing.T) *store.BadgerGateway {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return store.NewBadgerGateway(db)
}

// brokenGateway fails every call.
type brokenGateway struct{}

func (brokenGateway) ReadOnce(context.Context, string) (*store.Snapshot, error) {
	return nil, store.ErrReadInterrupted
}
func (brokenGateway) Write(context.Context, string, any) error { return errors.New("down") }
func (brokenGateway) Update(context.Context, string, map[string]any) error {
	return errors.New("down")
}
func (brokenGateway) Delete(context.Context, string) error { return errors.New("down") }

func TestProfileCreateDefaultThenRead(t *testing.T) {
	repo := NewProfileRepository(newGateway(t), nil)
	ctx := context.Background()

	assert.False(t, repo.Exists(ctx, "u1"))
	require.NoError(t, repo.CreateDefault(ctx, "u1", "a@x"))
	assert.True(t, repo.Exists(ctx, "u1"))

	got := repo.Read(ctx, "u1")
	assert.Equal(t, &entity.Profile{
		Email:        "a@x",
		ProfileImage: entity.DefaultProfileImage,
		Personality:  &entity.Personality{Tags: []string{}, LikeTags: []string{}},
	}, got)
}

func TestProfileReadFallsBackToDefaults(t *testing.T) {
	repo := NewProfileRepository(brokenGateway{}, nil)
	ctx := context.Background()

	got := repo.Read(ctx, "u1")
	assert.Equal(t, entity.Normalize(entity.Profile{}), *got)
	assert.False(t, repo.Exists(ctx, "u1"))

	missing := NewProfileRepository(newGateway(t), nil).Read(ctx, "nobody")
	assert.Equal(t, entity.DefaultProfileImage, missing.ProfileImage)
}

func TestProfileUpdateOnlyTouchesGivenFields(t *testing.T) {
	repo := NewProfileRepository(newGateway(t), nil)
	ctx := context.Background()
	require.NoError(t, repo.CreateDefault(ctx, "u1", "a@x"))

	name, mbti := "Kim", "ENFJ"
	require.NoError(t, repo.Update(ctx, "u1", entity.ProfilePatch{
		Name:     &name,
		MBTI:     &mbti,
		LikeTags: []string{"movies"},
	}))
	require.NoError(t, repo.SetProfileImage(ctx, "u1", "https://cdn/u1.png"))

	got := repo.Read(ctx, "u1")
	assert.Equal(t, "a@x", got.Email)
	assert.Equal(t, "Kim", got.Name)
	assert.Equal(t, "ENFJ", got.Personality.MBTI)
	assert.Equal(t, []string{"movies"}, got.Personality.LikeTags)
	assert.Equal(t, "https://cdn/u1.png", got.ProfileImage)

	require.NoError(t, repo.Update(ctx, "u1", entity.ProfilePatch{}))
}

func TestProfileDeleteTwiceIsSilent(t *testing.T) {
	repo := NewProfileRepository(newGateway(t), nil)
	ctx := context.Background()
	require.NoError(t, repo.CreateDefault(ctx, "u1", "a@x"))

	require.NoError(t, repo.Delete(ctx, "u1"))
	require.NoError(t, repo.Delete(ctx, "u1"))
	assert.False(t, repo.Exists(ctx, "u1"))
}

func TestProfileList(t *testing.T) {
	repo := NewProfileRepository(newGateway(t), nil)
	ctx := context.Background()
	require.NoError(t, repo.CreateDefault(ctx, "u1", "a@x"))
	require.NoError(t, repo.CreateDefault(ctx, "u2", "b@y"))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b@y", all["u2"].Email)
	assert.Equal(t, []string{}, all["u1"].Personality.LikeTags)

	_, err = NewProfileRepository(brokenGateway{}, nil).List(ctx)
	assert.ErrorIs(t, err, store.ErrReadInterrupted)
}

func TestDeleteRoomsOfMatchesBySubstring(t *testing.T) {
	g := newGateway(t)
	idx := NewChatIndex(g, nil, 4)
	ctx := context.Background()

	for _, room := range []string{"a_at_x__b_at_y", "c_at_z__b_at_y", "a_at_x__c_at_z"} {
		require.NoError(t, g.Write(ctx, "chats/"+room+"/messages/m1", map[string]any{"text": "hi"}))
	}

	n, err := idx.DeleteRoomsOf(ctx, entity.SanitizeID("b@y"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	keys, err := store.ChildKeys(ctx, g, "chats")
	require.NoError(t, err)
	assert.Equal(t, []string{"a_at_x__c_at_z"}, keys)

	n, err = idx.DeleteRoomsOf(ctx, entity.SanitizeID("b@y"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteFromOtherLists(t *testing.T) {
	g := newGateway(t)
	idx := NewChatIndex(g, nil, 2)
	ctx := context.Background()
	me := entity.SanitizeID("b@y")

	require.NoError(t, g.Write(ctx, "chat_list", map[string]any{
		me: map[string]any{
			"a_at_x": map[string]any{"with": "a@x"},
		},
		"a_at_x": map[string]any{
			me:               map[string]any{"with": "b@y", "lastMessage": "hi"},
			"c_at_z":         map[string]any{"with": "c@z"},
			"ab_at_y":        map[string]any{"with": "ab@y"},
			"a_at_x_ab_at_y": map[string]any{"with": "ab@y"},
		},
		"c_at_z": map[string]any{
			"b_at_y_c_at_z": map[string]any{"with": "b@y"},
		},
		"d_at_w": map[string]any{
			"legacy": map[string]any{"with": "B@y"},
		},
	}))

	n, err := idx.DeleteFromOtherLists(ctx, me, "b@y")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	snap, err := g.ReadOnce(ctx, "chat_list")
	require.NoError(t, err)
	assert.True(t, snap.Child(me+"/a_at_x").Exists(), "own list is not touched here")
	assert.True(t, snap.Child("a_at_x/c_at_z").Exists())
	assert.True(t, snap.Child("a_at_x/ab_at_y").Exists(), "lookalike counterpart survives")
	assert.True(t, snap.Child("a_at_x/a_at_x_ab_at_y").Exists(), "lookalike room survives")
	assert.False(t, snap.Child("a_at_x/"+me).Exists())
	assert.False(t, snap.Child("c_at_z").Exists())
	assert.False(t, snap.Child("d_at_w").Exists())

	require.NoError(t, idx.DeleteOwnList(ctx, me))
	require.NoError(t, idx.DeleteOwnList(ctx, me))
	partners, err := idx.Partners(ctx, me)
	require.NoError(t, err)
	assert.Empty(t, partners)
}

func TestOpenConversationThenPartners(t *testing.T) {
	g := newGateway(t)
	idx := NewChatIndex(g, nil, 1)
	ctx := context.Background()

	room, err := idx.OpenConversation(ctx, "b@y", "a@x", "hello", time.UnixMilli(1700000000000))
	require.NoError(t, err)
	assert.Equal(t, "a_at_x_b_at_y", room)

	partners, err := idx.Partners(ctx, entity.SanitizeID("a@x"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b@y"}, partners)

	var entry entity.ChatListEntry
	snap, err := g.ReadOnce(ctx, "chat_list/a_at_x/b_at_y")
	require.NoError(t, err)
	require.NoError(t, snap.Decode(&entry))
	assert.Equal(t, 1, entry.UnreadCount)
	assert.Equal(t, int64(1700000000000), entry.Timestamp)

	keys, err := store.ChildKeys(ctx, g, "chats")
	require.NoError(t, err)
	assert.Equal(t, []string{room}, keys)
}

func TestTombstoneRoundTrip(t *testing.T) {
	ts := NewTombstoneStore(newGateway(t))
	ctx := context.Background()

	_, err := ts.Lookup(ctx, "a@x")
	assert.ErrorIs(t, err, repository.ErrIdentityNotFound)

	require.NoError(t, ts.Record(ctx, "A@x ", "u1", time.Now()))
	uid, err := ts.Lookup(ctx, "a@x")
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)
}
