package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

const maxConflictRetries = 3

// ErrRootLeaf is returned when a scalar is written at the root path.
var ErrRootLeaf = errors.New("store: root must be a map")

// BadgerGateway keeps the tree in an embedded Badger database. Every leaf
// (scalar or array) is stored under its full path as a JSON value; maps are
// implied by their leaves, so empty maps never exist.
type BadgerGateway struct {
	db *badger.DB
}

// OpenBadger opens the database at dir, or an in-memory one.
func OpenBadger(dir string, inMemory bool, logger *logrus.Logger) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	if logger != nil {
		opts = opts.WithLogger(logger)
	} else {
		opts = opts.WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return db, nil
}

// NewBadgerGateway wraps an open database.
func NewBadgerGateway(db *badger.DB) *BadgerGateway {
	return &BadgerGateway{db: db}
}

func (g *BadgerGateway) ReadOnce(ctx context.Context, path string) (*Snapshot, error) {
	path = Join(path)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read %q: %w: %w", path, ErrReadInterrupted, err)
	}
	var value any
	err := g.db.View(func(txn *badger.Txn) error {
		v, err := readTree(txn, path)
		value = v
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read %q: %w: %w", path, ErrReadInterrupted, err)
	}
	return NewSnapshot(lastSegment(path), value), nil
}

func (g *BadgerGateway) Keys(ctx context.Context, path string) ([]string, error) {
	path = Join(path)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("keys %q: %w: %w", path, ErrReadInterrupted, err)
	}
	var keys []string
	err := g.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(subtreePrefix(path))
		it := txn.NewIterator(opts)
		defer it.Close()

		seen := map[string]struct{}{}
		for it.Rewind(); it.ValidForPrefix(opts.Prefix); it.Next() {
			rel := strings.TrimPrefix(string(it.Item().Key()), string(opts.Prefix))
			first, _, _ := strings.Cut(rel, "/")
			if _, ok := seen[first]; ok {
				continue
			}
			seen[first] = struct{}{}
			keys = append(keys, first)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("keys %q: %w: %w", path, ErrReadInterrupted, err)
	}
	return keys, nil
}

func (g *BadgerGateway) Write(ctx context.Context, path string, value any) error {
	path = Join(path)
	plain, err := Plain(value)
	if err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	if err := g.update(ctx, func(txn *badger.Txn) error {
		return writeTree(txn, path, plain)
	}); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

func (g *BadgerGateway) Update(ctx context.Context, path string, values map[string]any) error {
	path = Join(path)
	plain := make(map[string]any, len(values))
	for sub, v := range values {
		p, err := Plain(v)
		if err != nil {
			return fmt.Errorf("update %q: %s: %w", path, sub, err)
		}
		plain[Join(path, sub)] = p
	}
	targets := make([]string, 0, len(plain))
	for p := range plain {
		targets = append(targets, p)
	}
	sort.Strings(targets)

	if err := g.update(ctx, func(txn *badger.Txn) error {
		for _, p := range targets {
			if err := writeTree(txn, p, plain[p]); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update %q: %w", path, err)
	}
	return nil
}

func (g *BadgerGateway) Delete(ctx context.Context, path string) error {
	path = Join(path)
	if err := g.update(ctx, func(txn *badger.Txn) error {
		return clearNode(txn, path)
	}); err != nil {
		return fmt.Errorf("delete %q: %w", path, err)
	}
	return nil
}

// update runs fn in a read-write transaction, retrying on conflicts with
// concurrent writers.
func (g *BadgerGateway) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		err = g.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func readTree(txn *badger.Txn, path string) (any, error) {
	if path != "" {
		item, err := txn.Get([]byte(path))
		if err == nil {
			return decodeLeaf(item)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return nil, err
		}
	}

	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(subtreePrefix(path))
	it := txn.NewIterator(opts)
	defer it.Close()

	var root map[string]any
	for it.Rewind(); it.ValidForPrefix(opts.Prefix); it.Next() {
		item := it.Item()
		rel := strings.TrimPrefix(string(item.Key()), string(opts.Prefix))
		leaf, err := decodeLeaf(item)
		if err != nil {
			return nil, err
		}
		if root == nil {
			root = map[string]any{}
		}
		insert(root, strings.Split(rel, "/"), leaf)
	}
	if root == nil {
		return nil, nil
	}
	return root, nil
}

func decodeLeaf(item *badger.Item) (any, error) {
	raw, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", item.Key(), err)
	}
	return v, nil
}

func insert(node map[string]any, segments []string, leaf any) {
	for _, seg := range segments[:len(segments)-1] {
		next, ok := node[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			node[seg] = next
		}
		node = next
	}
	node[segments[len(segments)-1]] = leaf
}

// writeTree replaces the node at path, including any leaf sitting on one of
// its ancestors.
func writeTree(txn *badger.Txn, path string, value any) error {
	if err := clearNode(txn, path); err != nil {
		return err
	}
	segments := strings.Split(path, "/")
	for i := 1; i < len(segments); i++ {
		if err := txn.Delete([]byte(strings.Join(segments[:i], "/"))); err != nil {
			return err
		}
	}
	return putTree(txn, path, value)
}

func putTree(txn *badger.Txn, path string, value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case map[string]any:
		for k, child := range v {
			if k == "" {
				continue
			}
			if err := putTree(txn, Join(path, k), child); err != nil {
				return err
			}
		}
		return nil
	case []any:
		if len(v) == 0 {
			return nil
		}
	}
	if path == "" {
		return ErrRootLeaf
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return txn.Set([]byte(path), raw)
}

// clearNode deletes the leaf at path and every key below it.
func clearNode(txn *badger.Txn, path string) error {
	var keys [][]byte
	if path != "" {
		keys = append(keys, []byte(path))
	}

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(subtreePrefix(path))
	it := txn.NewIterator(opts)
	for it.Rewind(); it.ValidForPrefix(opts.Prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	it.Close()

	for _, k := range keys {
		if err := txn.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

func subtreePrefix(path string) string {
	if path == "" {
		return ""
	}
	return path + "/"
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
