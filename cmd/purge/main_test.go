package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/date-app-backend/internal/application"
	"github.com/oksasatya/date-app-backend/internal/domain/repository"
	"github.com/oksasatya/date-app-backend/internal/infrastructure/docstore"
	"github.com/oksasatya/date-app-backend/internal/store"
)

type staticAuth map[string]string

func (a staticAuth) ResolveIDByEmail(_ context.Context, email string) (string, error) {
	if uid, ok := a[email]; ok {
		return uid, nil
	}
	return "", repository.ErrIdentityNotFound
}
func (a staticAuth) DeleteAccount(context.Context, string) error { return nil }
func (a staticAuth) SignIn(context.Context, repository.Credentials) (*repository.Identity, error) {
	return nil, repository.ErrInvalidCredentials
}
func (a staticAuth) Register(context.Context, string, string) (*repository.Identity, error) {
	return nil, repository.ErrEmailTaken
}

func TestReadEmails(t *testing.T) {
	got, err := readEmails(strings.NewReader("a@x.com\n\n# old\n  b@y.com  \n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com", "b@y.com"}, got)
}

func TestPurge(t *testing.T) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	g := store.NewBadgerGateway(db)

	profiles := docstore.NewProfileRepository(g, nil)
	require.NoError(t, profiles.CreateDefault(context.Background(), "u1", "a@x.com"))

	o := &application.Orchestrator{
		Directory: application.NewIdentityDirectory(staticAuth{"a@x.com": "u1"}, docstore.NewTombstoneStore(g), nil),
		Profiles:  profiles,
		Chats:     docstore.NewChatIndex(g, nil, 1),
	}

	var out bytes.Buffer
	failed := purge(context.Background(), o, []string{"a@x.com", "ghost@x.com"}, &out, false)
	assert.Equal(t, 1, failed)
	assert.Equal(t, "a@x.com\tdeleted (u1)\nghost@x.com\tnot found\n", out.String())
	assert.False(t, profiles.Exists(context.Background(), "u1"))

	out.Reset()
	failed = purge(context.Background(), o, []string{"a@x.com"}, &out, true)
	assert.Equal(t, 0, failed)
	assert.Contains(t, out.String(), `"userId":"u1"`)
}
