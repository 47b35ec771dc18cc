package sync

import (
	"context"

	"golang.org/x/oauth2"

	"bankmail-ledger-go/internal/model"
	"bankmail-ledger-go/internal/registry"
)

// Registry is the account-registry surface the orchestrator depends on.
type Registry interface {
	ListActive(ctx context.Context) ([]model.Account, error)
	ClaimBusy(ctx context.Context, accountID uint) (bool, error)
	ReleaseBusy(ctx context.Context, accountID uint) error
	Deactivate(ctx context.Context, accountID uint) error
	Complete(ctx context.Context, accountID uint, update registry.SyncUpdate) error
	RecordSyncLog(ctx context.Context, log *model.SyncLog) error
}

// TokenExchanger trades a stored refresh credential for a live token source.
type TokenExchanger interface {
	Exchange(ctx context.Context, refreshToken string) (oauth2.TokenSource, error)
}
