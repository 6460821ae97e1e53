package entity

import (
	"sort"
	"strings"
)

// pathEscapes replaces characters the document store rejects in a path
// segment. Order matters: "." and "@" match what web clients already write.
var pathEscapes = strings.NewReplacer(
	".", "_dot_",
	"@", "_at_",
	"$", "_dollar_",
	"#", "_hash_",
	"[", "_lb_",
	"]", "_rb_",
	"/", "_slash_",
)

// CanonicalEmail is the form every store and provider keys an email by.
func CanonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SanitizeID turns an external identifier (email) into a store-safe path
// segment, e.g. "b@y.com" -> "b_at_y_dot_com".
func SanitizeID(id string) string {
	return pathEscapes.Replace(id)
}

// ChatRoomID builds the room key shared by two participants. Each sanitized
// email is a substring of the result, which is all membership tests rely on.
func ChatRoomID(emailA, emailB string) string {
	ids := []string{SanitizeID(emailA), SanitizeID(emailB)}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}

// ChatListEntry is stored at chat_list/<owner>/<counterpart> and means the
// owner has a visible conversation with the counterpart.
type ChatListEntry struct {
	With        string `json:"with"`
	LastMessage string `json:"lastMessage"`
	UnreadCount int    `json:"unreadCount"`
	Timestamp   int64  `json:"timestamp"`
}

// ChatMessage is one message under chats/<room>/messages.
type ChatMessage struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
	Read      bool   `json:"read"`
}
