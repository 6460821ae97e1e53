package application

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/date-app-backend/internal/domain/entity"
	"github.com/oksasatya/date-app-backend/internal/domain/repository"
	"github.com/oksasatya/date-app-backend/internal/infrastructure/docstore"
	"github.com/oksasatya/date-app-backend/internal/store"
	"github.com/oksasatya/date-app-backend/pkg/helpers"
	"github.com/oksasatya/date-app-backend/pkg/mailer"
)

// fakeAuth is an in-memory identity provider keyed by email.
type fakeAuth struct {
	mu        sync.Mutex
	byEmail   map[string]string
	passwords map[string]string
	deleted   []string
	deleteErr error
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{byEmail: map[string]string{}, passwords: map[string]string{}}
}

func (f *fakeAuth) add(email, uid, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byEmail[email] = uid
	f.passwords[email] = password
}

func (f *fakeAuth) ResolveIDByEmail(_ context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	uid, ok := f.byEmail[email]
	if !ok {
		return "", repository.ErrIdentityNotFound
	}
	return uid, nil
}

func (f *fakeAuth) DeleteAccount(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for email, id := range f.byEmail {
		if id == uid {
			delete(f.byEmail, email)
		}
	}
	f.deleted = append(f.deleted, uid)
	return nil
}

func (f *fakeAuth) SignIn(_ context.Context, cred repository.Credentials) (*repository.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	uid, ok := f.byEmail[cred.Email]
	if !ok || f.passwords[cred.Email] != cred.Password {
		return nil, repository.ErrInvalidCredentials
	}
	return &repository.Identity{UID: uid, Email: cred.Email}, nil
}

func (f *fakeAuth) Register(_ context.Context, email, password string) (*repository.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[email]; ok {
		return nil, repository.ErrEmailTaken
	}
	uid := "uid-" + email
	f.byEmail[email] = uid
	f.passwords[email] = password
	return &repository.Identity{UID: uid, Email: email}, nil
}

// fakeImages stores object names per uid.
type fakeImages struct {
	mu      sync.Mutex
	objects map[string][]string
	err     error
}

func newFakeImages() *fakeImages { return &fakeImages{objects: map[string][]string{}} }

func (f *fakeImages) UploadProfileImage(_ context.Context, uid string, r io.Reader, _ string) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	name := "profileImages/" + uid + "_1.png"
	f.objects[uid] = append(f.objects[uid], name)
	return "https://img/" + name, nil
}

func (f *fakeImages) DeleteProfileImages(_ context.Context, uid string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	n := len(f.objects[uid])
	delete(f.objects, uid)
	return n, nil
}

// fakeIndex records indexed summaries.
type fakeIndex struct {
	mu   sync.Mutex
	docs map[string]entity.ProfileSummary
}

func newFakeIndex() *fakeIndex { return &fakeIndex{docs: map[string]entity.ProfileSummary{}} }

func (f *fakeIndex) Index(_ context.Context, s entity.ProfileSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[s.ID] = s
	return nil
}

func (f *fakeIndex) Delete(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, uid)
	return nil
}

func (f *fakeIndex) Search(context.Context, string, int) ([]entity.ProfileSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.ProfileSummary, 0, len(f.docs))
	for _, d := range f.docs {
		out = append(out, d)
	}
	return out, nil
}

// fakeSessions is a map-backed session store.
type fakeSessions struct {
	mu   sync.Mutex
	data map[string]entity.Session
}

func newFakeSessions() *fakeSessions { return &fakeSessions{data: map[string]entity.Session{}} }

func (f *fakeSessions) Save(_ context.Context, s entity.Session, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[s.UserID] = s
	return nil
}

func (f *fakeSessions) Get(_ context.Context, uid string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.data[uid]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return &s, nil
}

func (f *fakeSessions) Revoke(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, uid)
	return nil
}

// fakeNotifier captures queued jobs.
type fakeNotifier struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
}

func (f *fakeNotifier) Enqueue(_ context.Context, job mailer.EmailJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, job)
	return nil
}

// env wires the services over an in-memory store.
type env struct {
	store    *store.BadgerGateway
	auth     *fakeAuth
	images   *fakeImages
	index    *fakeIndex
	sessions *fakeSessions
	notifier *fakeNotifier
	profiles *docstore.ProfileRepository
	chats    *docstore.ChatIndex
	dir      *IdentityDirectory
	mail     *Mail
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	g := store.NewBadgerGateway(db)
	logger := helpers.NewDiscardLogger()
	e := &env{
		store:    g,
		auth:     newFakeAuth(),
		images:   newFakeImages(),
		index:    newFakeIndex(),
		sessions: newFakeSessions(),
		notifier: &fakeNotifier{},
		profiles: docstore.NewProfileRepository(g, logger),
		chats:    docstore.NewChatIndex(g, logger, 4),
	}
	e.dir = NewIdentityDirectory(e.auth, docstore.NewTombstoneStore(g), logger)
	e.mail = &Mail{Notifier: e.notifier, AppName: "Dateapp", Logger: logger}
	return e
}

func (e *env) orchestrator() *Orchestrator {
	return &Orchestrator{
		Directory: e.dir,
		Profiles:  e.profiles,
		Chats:     e.chats,
		Images:    e.images,
		Index:     e.index,
		Sessions:  e.sessions,
		Mail:      e.mail,
		Logger:    helpers.NewDiscardLogger(),
	}
}

// seedUser registers an identity with a stored profile.
func (e *env) seedUser(t *testing.T, email, uid, gender, mbti string, tags ...string) {
	t.Helper()
	ctx := context.Background()
	e.auth.add(email, uid, "pw-"+uid)
	require.NoError(t, e.profiles.CreateDefault(ctx, uid, email))
	g, m := gender, mbti
	require.NoError(t, e.profiles.Update(ctx, uid, entity.ProfilePatch{Gender: &g, MBTI: &m, Tags: tags}))
}

var errBoom = errors.New("boom")
