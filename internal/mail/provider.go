package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Message is one retrieved bank-notification email.
type Message struct {
	ID       string
	Subject  string
	Body     string
	Received time.Time
}

// Query scopes a retrieval to the known bank sender, the transaction
// keywords, and an optional lower time bound derived from the account's
// watermark. A nil After means "all available history".
type Query struct {
	Sender   string
	Keywords string
	After    *time.Time
}

// Gmail renders the query in Gmail search syntax.
func (q Query) Gmail() string {
	var parts []string
	if q.Sender != "" {
		parts = append(parts, "from:"+q.Sender)
	}
	if q.Keywords != "" {
		parts = append(parts, q.Keywords)
	}
	if q.After != nil {
		parts = append(parts, fmt.Sprintf("after:%d", q.After.Unix()))
	}
	return strings.Join(parts, " ")
}

// Client retrieves message identifiers and full messages for one mailbox.
type Client interface {
	List(ctx context.Context, query Query, maxResults int64) ([]string, error)
	Get(ctx context.Context, messageID string) (*Message, error)
	Close() error
}

// Opener dials a mailbox with the account's short-lived credential.
type Opener interface {
	Open(ctx context.Context, ts oauth2.TokenSource) (Client, error)
}
