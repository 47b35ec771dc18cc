package mail

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message"
	"golang.org/x/oauth2"

	"bankmail-ledger-go/internal/config"
)

// IMAPOpener opens IMAP clients for non-Gmail mailboxes. IMAP mode uses the
// statically configured credentials; the per-account token source is unused.
type IMAPOpener struct {
	cfg *config.MailConfig
}

// NewIMAPOpener creates a new IMAP opener
func NewIMAPOpener(cfg *config.MailConfig) *IMAPOpener {
	return &IMAPOpener{cfg: cfg}
}

// Open dials the IMAP server, logs in and selects INBOX.
func (o *IMAPOpener) Open(ctx context.Context, _ oauth2.TokenSource) (Client, error) {
	c, err := client.DialTLS(fmt.Sprintf("%s:%d", o.cfg.IMAPHost, o.cfg.IMAPPort), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to IMAP server: %w", err)
	}

	if err := c.Login(o.cfg.IMAPUser, o.cfg.IMAPPassword); err != nil {
		c.Logout()
		return nil, fmt.Errorf("failed to login to IMAP server: %w", err)
	}

	if _, err := c.Select("INBOX", true); err != nil {
		c.Logout()
		return nil, fmt.Errorf("failed to select INBOX: %w", err)
	}

	return &IMAPClient{client: c}, nil
}

// IMAPClient implements Client using IMAP.
type IMAPClient struct {
	client *client.Client
}

// List searches the mailbox for matching messages and returns their sequence
// numbers as opaque identifiers, capped at maxResults.
func (c *IMAPClient) List(ctx context.Context, query Query, maxResults int64) ([]string, error) {
	criteria := imap.NewSearchCriteria()
	if query.Sender != "" {
		criteria.Header.Add("From", query.Sender)
	}
	if query.After != nil {
		criteria.Since = *query.After
	}

	seqNums, err := c.client.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}

	if int64(len(seqNums)) > maxResults {
		seqNums = seqNums[:maxResults]
	}

	ids := make([]string, 0, len(seqNums))
	for _, n := range seqNums {
		ids = append(ids, strconv.FormatUint(uint64(n), 10))
	}
	return ids, nil
}

// Get fetches one message's envelope and body.
func (c *IMAPClient) Get(ctx context.Context, messageID string) (*Message, error) {
	seqNum, err := strconv.ParseUint(messageID, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid IMAP message id %q: %w", messageID, err)
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(uint32(seqNum))

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- c.client.Fetch(seqset, items, messages)
	}()

	msg := <-messages
	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch message %s: %w", messageID, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("message %s not found", messageID)
	}

	out := &Message{ID: messageID}
	if msg.Envelope != nil {
		out.Subject = msg.Envelope.Subject
		out.Received = msg.Envelope.Date
	}

	if r := msg.GetBody(section); r != nil {
		body, err := readPlainText(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read body of message %s: %w", messageID, err)
		}
		out.Body = body
	}
	return out, nil
}

// Close logs out of the IMAP session.
func (c *IMAPClient) Close() error {
	return c.client.Logout()
}

// readPlainText extracts the text/plain part of a message, falling back to
// stripped HTML for single-part HTML mail.
func readPlainText(r io.Reader) (string, error) {
	entity, err := message.Read(r)
	if err != nil {
		return "", fmt.Errorf("failed to read message: %w", err)
	}

	if mr := entity.MultipartReader(); mr != nil {
		var html string
		for {
			p, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				return "", fmt.Errorf("failed to read part: %w", err)
			}

			content, err := io.ReadAll(p.Body)
			if err != nil {
				return "", fmt.Errorf("failed to read part body: %w", err)
			}

			contentType := p.Header.Get("Content-Type")
			if strings.Contains(contentType, "text/plain") {
				return string(content), nil
			}
			if strings.Contains(contentType, "text/html") && html == "" {
				html = string(content)
			}
		}
		return htmlToPlainText(html), nil
	}

	content, err := io.ReadAll(entity.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read message body: %w", err)
	}
	if strings.Contains(entity.Header.Get("Content-Type"), "text/html") {
		return htmlToPlainText(string(content)), nil
	}
	return string(content), nil
}
