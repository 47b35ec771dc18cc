package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailOpener opens Gmail API clients with per-account token sources.
type GmailOpener struct{}

// NewGmailOpener creates a new Gmail opener
func NewGmailOpener() *GmailOpener {
	return &GmailOpener{}
}

// Open creates a Gmail API client for the mailbox behind the token source.
func (o *GmailOpener) Open(ctx context.Context, ts oauth2.TokenSource) (Client, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return &GmailClient{service: service}, nil
}

// GmailClient implements Client using the Gmail API.
type GmailClient struct {
	service *gmail.Service
}

// List returns up to maxResults message identifiers matching the query.
func (c *GmailClient) List(ctx context.Context, query Query, maxResults int64) ([]string, error) {
	response, err := c.service.Users.Messages.List("me").
		Q(query.Gmail()).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	ids := make([]string, 0, len(response.Messages))
	for _, msg := range response.Messages {
		ids = append(ids, msg.Id)
	}
	return ids, nil
}

// Get fetches one full message and flattens it to subject, plain-text body
// and received instant.
func (c *GmailClient) Get(ctx context.Context, messageID string) (*Message, error) {
	msg, err := c.service.Users.Messages.Get("me", messageID).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}

	message := &Message{
		ID:       msg.Id,
		Received: time.UnixMilli(msg.InternalDate),
	}

	var plain, html string
	if msg.Payload != nil {
		for _, header := range msg.Payload.Headers {
			if header.Name == "Subject" {
				message.Subject = header.Value
				break
			}
		}
		collectParts(msg.Payload, &plain, &html)
	}

	// Notifications are sent as multipart with a plain-text part; prefer it
	// and only fall back to stripped HTML.
	message.Body = plain
	if message.Body == "" && html != "" {
		message.Body = htmlToPlainText(html)
	}
	return message, nil
}

// Close closes the Gmail client (no-op for the Gmail API).
func (c *GmailClient) Close() error {
	return nil
}

// collectParts recursively walks the message parts, decoding the first
// text/plain and text/html bodies found.
func collectParts(part *gmail.MessagePart, plain, html *string) {
	if part.Body != nil && part.Body.Data != "" {
		data, err := base64.URLEncoding.DecodeString(part.Body.Data)
		if err == nil {
			switch part.MimeType {
			case "text/plain":
				if *plain == "" {
					*plain = string(data)
				}
			case "text/html":
				if *html == "" {
					*html = string(data)
				}
			}
		}
	}
	for _, subPart := range part.Parts {
		collectParts(subPart, plain, html)
	}
}

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// htmlToPlainText converts HTML to plain text (simple implementation)
func htmlToPlainText(html string) string {
	replacements := []struct {
		from string
		to   string
	}{
		{"<br>", "\n"},
		{"<br/>", "\n"},
		{"<br />", "\n"},
		{"<p>", "\n"},
		{"</p>", "\n"},
		{"<div>", "\n"},
		{"</div>", "\n"},
		{"&nbsp;", " "},
		{"&amp;", "&"},
		{"&lt;", "<"},
		{"&gt;", ">"},
		{"&quot;", "\""},
	}
	for _, replacement := range replacements {
		html = strings.ReplaceAll(html, replacement.from, replacement.to)
	}
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(html, ""))
}
