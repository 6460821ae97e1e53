package elasticsearch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHits(t *testing.T) {
	body := `{"hits":{"hits":[
		{"_id":"u1","_source":{"email":"a@x","name":"A","mbti":"INFP","tags":["coffee"]}},
		{"_id":"u2","_source":{"id":"u2","email":"b@y","name":"B"}}
	]}}`

	got, err := decodeHits(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "u1", got[0].ID)
	assert.Equal(t, []string{"coffee"}, got[0].Tags)
	assert.Equal(t, "b@y", got[1].Email)
}

func TestDecodeHitsRejectsGarbage(t *testing.T) {
	_, err := decodeHits(strings.NewReader("not json"))
	assert.Error(t, err)
}
