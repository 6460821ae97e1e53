package elasticsearch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/goccy/go-json"

	"github.com/oksasatya/date-app-backend/internal/domain/entity"
	"github.com/oksasatya/date-app-backend/internal/domain/repository"
)

const requestTimeout = 3 * time.Second

// NewClient creates an Elasticsearch client with sane defaults and optional basic auth.
func NewClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

// ProfileIndex mirrors profile summaries into one index, one document per user id.
type ProfileIndex struct {
	Client    *elasticsearch.Client
	IndexName string
}

func NewProfileIndex(client *elasticsearch.Client, index string) *ProfileIndex {
	return &ProfileIndex{Client: client, IndexName: index}
}

func (p *ProfileIndex) Index(ctx context.Context, summary entity.ProfileSummary) error {
	b, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: p.IndexName, DocumentID: summary.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, p.Client)
	if err != nil {
		return fmt.Errorf("index profile %s: %w", summary.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index profile %s: %s", summary.ID, res.Status())
	}
	return nil
}

// Delete removes the document; a missing document is not an error.
func (p *ProfileIndex) Delete(ctx context.Context, uid string) error {
	req := esapi.DeleteRequest{Index: p.IndexName, DocumentID: uid}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, p.Client)
	if err != nil {
		return fmt.Errorf("delete profile doc %s: %w", uid, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete profile doc %s: %s", uid, res.Status())
	}
	return nil
}

// Search performs a simple multi_match search on name, email, mbti and tags.
func (p *ProfileIndex) Search(ctx context.Context, q string, size int) ([]entity.ProfileSummary, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "email", "mbti", "tags"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := p.Client.Search(
		p.Client.Search.WithContext(c),
		p.Client.Search.WithIndex(p.IndexName),
		p.Client.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search profiles: %s", res.Status())
	}
	return decodeHits(res.Body)
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string                `json:"_id"`
			Source entity.ProfileSummary `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func decodeHits(body io.Reader) ([]entity.ProfileSummary, error) {
	var parsed searchResponse
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]entity.ProfileSummary, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		s := h.Source
		if s.ID == "" {
			s.ID = h.ID
		}
		out = append(out, s)
	}
	return out, nil
}

var _ repository.ProfileIndex = (*ProfileIndex)(nil)
