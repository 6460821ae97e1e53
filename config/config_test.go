package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreBadger, cfg.StoreBackend)
	assert.Equal(t, AuthPostgres, cfg.AuthBackend)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.Equal(t, 8, cfg.CascadeFanout)
	assert.False(t, cfg.UsesFirebase())
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mongo")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_BACKEND")
}

func TestLoadFirebaseNeedsDatabaseURL(t *testing.T) {
	t.Setenv("STORE_BACKEND", StoreFirebase)

	_, err := Load()
	require.Error(t, err)

	t.Setenv("FIREBASE_DATABASE_URL", "https://demo.firebaseio.com")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.UsesFirebase())
}

func TestSplitLists(t *testing.T) {
	c := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test ", ElasticsearchAddrs: ""}

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.CORSOrigins())
	assert.Empty(t, c.ESAddrs())
}
