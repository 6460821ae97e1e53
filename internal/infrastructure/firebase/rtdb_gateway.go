package firebase

import (
	"context"
	"fmt"
	"sort"

	"firebase.google.com/go/v4/db"

	"github.com/oksasatya/date-app-backend/internal/store"
)

// RTDBGateway talks to the Realtime Database over the Admin SDK REST client.
type RTDBGateway struct {
	Client *db.Client
}

func NewRTDBGateway(client *db.Client) *RTDBGateway {
	return &RTDBGateway{Client: client}
}

func (g *RTDBGateway) ref(path string) *db.Ref {
	return g.Client.NewRef(store.Join(path))
}

func (g *RTDBGateway) ReadOnce(ctx context.Context, path string) (*store.Snapshot, error) {
	ref := g.ref(path)
	var v any
	if err := ref.Get(ctx, &v); err != nil {
		return nil, fmt.Errorf("read %q: %w: %w", path, store.ErrReadInterrupted, err)
	}
	return store.NewSnapshot(ref.Key, v), nil
}

// Keys uses a shallow query so child subtrees are not downloaded.
func (g *RTDBGateway) Keys(ctx context.Context, path string) ([]string, error) {
	var shallow map[string]any
	if err := g.ref(path).GetShallow(ctx, &shallow); err != nil {
		return nil, fmt.Errorf("keys %q: %w: %w", path, store.ErrReadInterrupted, err)
	}
	keys := make([]string, 0, len(shallow))
	for k := range shallow {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (g *RTDBGateway) Write(ctx context.Context, path string, value any) error {
	plain, err := store.Plain(value)
	if err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	if plain == nil {
		return g.Delete(ctx, path)
	}
	if err := g.ref(path).Set(ctx, plain); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

func (g *RTDBGateway) Update(ctx context.Context, path string, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}
	plain := make(map[string]any, len(values))
	for sub, v := range values {
		p, err := store.Plain(v)
		if err != nil {
			return fmt.Errorf("update %q: %s: %w", path, sub, err)
		}
		plain[sub] = p
	}
	if err := g.ref(path).Update(ctx, plain); err != nil {
		return fmt.Errorf("update %q: %w", path, err)
	}
	return nil
}

func (g *RTDBGateway) Delete(ctx context.Context, path string) error {
	if err := g.ref(path).Delete(ctx); err != nil {
		return fmt.Errorf("delete %q: %w", path, err)
	}
	return nil
}
