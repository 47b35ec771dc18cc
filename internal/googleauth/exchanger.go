package googleauth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	sheets "google.golang.org/api/sheets/v4"

	"bankmail-ledger-go/internal/config"
)

// Exchanger trades stored long-lived refresh tokens for short-lived access
// token sources using the shared OAuth2 application credentials.
type Exchanger struct {
	config *oauth2.Config
}

// NewExchanger creates a new exchanger
func NewExchanger(cfg config.GoogleConfig) *Exchanger {
	return &Exchanger{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       []string{gmail.GmailReadonlyScope, sheets.SpreadsheetsScope},
			Endpoint:     google.Endpoint,
		},
	}
}

// Exchange builds a token source from the refresh token and performs one
// exchange immediately, so a revoked or expired credential fails here rather
// than on first use.
func (e *Exchanger) Exchange(ctx context.Context, refreshToken string) (oauth2.TokenSource, error) {
	ts := e.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to exchange refresh token: %w", err)
	}
	return oauth2.ReuseTokenSource(token, ts), nil
}
