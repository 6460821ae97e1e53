package repository

import (
	"context"
	"time"
)

// ChatIndex covers the chats and chat_list trees. Ids are sanitized emails.
type ChatIndex interface {
	// DeleteRoomsOf removes every room whose key contains id.
	DeleteRoomsOf(ctx context.Context, id string) (int, error)
	// DeleteOwnList removes chat_list/<id>.
	DeleteOwnList(ctx context.Context, id string) error
	// DeleteFromOtherLists removes the entries other owners hold for id.
	DeleteFromOtherLists(ctx context.Context, id, email string) (int, error)
	// Partners returns the emails id has a chat list entry with.
	Partners(ctx context.Context, id string) ([]string, error)
	// OpenConversation creates the room and both chat list entries.
	OpenConversation(ctx context.Context, emailA, emailB, text string, at time.Time) (string, error)
}
