package collection

import "strings"

// Key scopes one paginated list instance. Distinct keys never share state:
// the replies of two different questions, or the posts of two different
// users, live in separate page states even though they hold the same entity
// type.
type Key struct {
	// Entity is the kind of item the list holds: "post", "question",
	// "reply", "comment", "notification", "conversation", "message",
	// "join_request", "user", "group".
	Entity string

	// Scope optionally qualifies the list, e.g. "feed", "user", "group",
	// "pending", "search".
	Scope string

	// Parent is the id the list hangs off: a question id for replies, a
	// group id for questions, a search query for result tabs.
	Parent string
}

// String renders the key as a stable map index
func (k Key) String() string {
	var sb strings.Builder
	sb.WriteString(k.Entity)
	sb.WriteByte('/')
	sb.WriteString(k.Scope)
	sb.WriteByte('/')
	sb.WriteString(k.Parent)
	return sb.String()
}
