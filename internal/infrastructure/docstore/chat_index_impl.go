package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/date-app-backend/internal/domain/entity"
	"github.com/oksasatya/date-app-backend/internal/store"
)

const (
	chatsRoot    = "chats"
	chatListRoot = "chat_list"
)

// ChatIndex works on chats/<room> and chat_list/<owner>/<entry>. There is
// no reverse index: finding a user's rooms and peer entries means scanning.
type ChatIndex struct {
	Store  store.Gateway
	Logger *logrus.Logger
	// Fanout bounds concurrent deletes across other users' chat lists.
	Fanout int
}

func NewChatIndex(g store.Gateway, logger *logrus.Logger, fanout int) *ChatIndex {
	if fanout < 1 {
		fanout = 1
	}
	return &ChatIndex{Store: g, Logger: logger, Fanout: fanout}
}

// DeleteRoomsOf deletes every room whose key contains id. The key set is
// read once; rooms created after the scan are not seen.
func (c *ChatIndex) DeleteRoomsOf(ctx context.Context, id string) (int, error) {
	keys, err := store.ChildKeys(ctx, c.Store, chatsRoot)
	if err != nil {
		return 0, fmt.Errorf("scan chats: %w", err)
	}
	var errs []error
	deleted := 0
	for _, room := range keys {
		if !strings.Contains(room, id) {
			continue
		}
		if err := c.Store.Delete(ctx, store.Join(chatsRoot, room)); err != nil {
			errs = append(errs, fmt.Errorf("delete room %s: %w", room, err))
			continue
		}
		deleted++
	}
	return deleted, errors.Join(errs...)
}

func (c *ChatIndex) DeleteOwnList(ctx context.Context, id string) error {
	return c.Store.Delete(ctx, store.Join(chatListRoot, id))
}

// DeleteFromOtherLists removes what other owners hold for id: the entry keyed
// by id, the entry keyed by the owner's room with id, and entries whose "with"
// is email. Every owner is attempted; failures are joined.
func (c *ChatIndex) DeleteFromOtherLists(ctx context.Context, id, email string) (int, error) {
	snap, err := c.Store.ReadOnce(ctx, chatListRoot)
	if err != nil {
		return 0, fmt.Errorf("read chat lists: %w", err)
	}

	var targets []string
	for _, owner := range snap.Children() {
		if owner.Key() == id {
			continue
		}
		room := entity.ChatRoomID(owner.Key(), id)
		for _, entry := range owner.Children() {
			with, _ := entry.Child("with").Value().(string)
			if entry.Key() == id || entry.Key() == room || (email != "" && strings.EqualFold(strings.TrimSpace(with), email)) {
				targets = append(targets, store.Join(chatListRoot, owner.Key(), entry.Key()))
			}
		}
	}

	var (
		mu      sync.Mutex
		errs    []error
		deleted int
		g       errgroup.Group
	)
	g.SetLimit(c.Fanout)
	for _, target := range targets {
		target := target
		g.Go(func() error {
			err := c.Store.Delete(ctx, target)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("delete %s: %w", target, err))
				return nil
			}
			deleted++
			return nil
		})
	}
	_ = g.Wait()
	if c.Logger != nil {
		c.Logger.WithFields(logrus.Fields{
			"targets": len(targets),
			"deleted": deleted,
			"failed":  len(errs),
		}).Debug("peer chat list sweep")
	}
	return deleted, errors.Join(errs...)
}

// Partners lists the emails id already has a conversation with.
func (c *ChatIndex) Partners(ctx context.Context, id string) ([]string, error) {
	snap, err := c.Store.ReadOnce(ctx, store.Join(chatListRoot, id))
	if err != nil {
		return nil, err
	}
	var out []string
	for _, entry := range snap.Children() {
		if with, ok := entry.Child("with").Value().(string); ok && with != "" {
			out = append(out, with)
		}
	}
	return out, nil
}

// OpenConversation writes a first message from emailA and a chat list entry
// on both sides, keyed by the counterpart's id.
func (c *ChatIndex) OpenConversation(ctx context.Context, emailA, emailB, text string, at time.Time) (string, error) {
	room := entity.ChatRoomID(emailA, emailB)
	ts := at.UnixMilli()
	a, b := entity.SanitizeID(emailA), entity.SanitizeID(emailB)

	err := c.Store.Update(ctx, "", map[string]any{
		store.Join(chatsRoot, room, "messages", uuid.NewString()): entity.ChatMessage{
			Sender: emailA, Text: text, Timestamp: ts,
		},
		store.Join(chatListRoot, a, b): entity.ChatListEntry{
			With: emailB, LastMessage: text, Timestamp: ts,
		},
		store.Join(chatListRoot, b, a): entity.ChatListEntry{
			With: emailA, LastMessage: text, UnreadCount: 1, Timestamp: ts,
		},
	})
	if err != nil {
		return "", fmt.Errorf("open conversation %s: %w", room, err)
	}
	return room, nil
}
