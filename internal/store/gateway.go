// Package store is the path-addressed tree store every repository talks to.
// Paths are slash separated ("users/<uid>/personality/tags"); a value is a
// scalar, an array or a map of children. Writing nil or an empty map removes
// the node.
package store

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ErrReadInterrupted reports that a one-shot read did not complete, either
// because the context ended or because the backend failed.
var ErrReadInterrupted = errors.New("store read interrupted")

// Gateway is the minimal surface of the hierarchical store.
type Gateway interface {
	// ReadOnce blocks until the node at path has been read once.
	ReadOnce(ctx context.Context, path string) (*Snapshot, error)
	// Write replaces the node at path.
	Write(ctx context.Context, path string, value any) error
	// Update writes each relative sub-path of values under path.
	Update(ctx context.Context, path string, values map[string]any) error
	// Delete removes the subtree at path. Deleting a missing node succeeds.
	Delete(ctx context.Context, path string) error
}

// KeyLister is implemented by gateways that can list the direct child keys
// of a node without fetching the children.
type KeyLister interface {
	Keys(ctx context.Context, path string) ([]string, error)
}

// ChildKeys lists the direct child keys of path, shallowly when the gateway
// supports it.
func ChildKeys(ctx context.Context, g Gateway, path string) ([]string, error) {
	if kl, ok := g.(KeyLister); ok {
		return kl.Keys(ctx, path)
	}
	snap, err := g.ReadOnce(ctx, path)
	if err != nil {
		return nil, err
	}
	children := snap.Children()
	keys := make([]string, 0, len(children))
	for _, c := range children {
		keys = append(keys, c.Key())
	}
	return keys, nil
}

// Join builds a store path from segments, dropping empty ones.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// Snapshot is an immutable view of one node as it was when read.
type Snapshot struct {
	key   string
	value any
}

// NewSnapshot wraps a decoded value. Backends call it after normalizing the
// value to plain JSON types.
func NewSnapshot(key string, value any) *Snapshot {
	return &Snapshot{key: key, value: value}
}

// Key is the last path segment of the node.
func (s *Snapshot) Key() string {
	if s == nil {
		return ""
	}
	return s.key
}

// Exists reports whether the node held a value.
func (s *Snapshot) Exists() bool {
	return s != nil && s.value != nil
}

// Value returns the raw value: nil, a JSON scalar, []any or map[string]any.
func (s *Snapshot) Value() any {
	if s == nil {
		return nil
	}
	return s.value
}

// Children returns the direct children. Callers must not rely on the order.
func (s *Snapshot) Children() []*Snapshot {
	if s == nil {
		return nil
	}
	switch v := s.value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]*Snapshot, 0, len(keys))
		for _, k := range keys {
			if v[k] == nil {
				continue
			}
			out = append(out, &Snapshot{key: k, value: v[k]})
		}
		return out
	case []any:
		out := make([]*Snapshot, 0, len(v))
		for i, item := range v {
			if item == nil {
				continue
			}
			out = append(out, &Snapshot{key: strconv.Itoa(i), value: item})
		}
		return out
	}
	return nil
}

// Child returns the node at the relative path, which may be missing.
func (s *Snapshot) Child(path string) *Snapshot {
	cur := s.Value()
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for _, seg := range segments {
		switch v := cur.(type) {
		case map[string]any:
			cur = v[seg]
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(v) {
				cur = nil
			} else {
				cur = v[i]
			}
		default:
			cur = nil
		}
	}
	return &Snapshot{key: segments[len(segments)-1], value: cur}
}

// Decode unmarshals the node into v. A missing node leaves v untouched.
func (s *Snapshot) Decode(v any) error {
	if !s.Exists() {
		return nil
	}
	raw, err := json.Marshal(s.value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// Plain converts any marshalable value to the generic JSON shape
// (nil, bool, float64, string, []any, map[string]any).
func Plain(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
