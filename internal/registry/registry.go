package registry

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"bankmail-ledger-go/internal/model"
	"bankmail-ledger-go/internal/parser"
)

// Registry persists per-account sync state.
type Registry struct {
	db *gorm.DB
}

// New creates a registry backed by the given database.
func New(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// SyncUpdate is the combined state update applied at the end of a sync
// attempt. All fields are written in one UPDATE so a sync never leaves an
// account half-updated.
type SyncUpdate struct {
	Watermark   *time.Time
	RejectedLog []parser.Rejection
	LastSyncAt  time.Time
}

// ListActive returns every active account.
func (r *Registry) ListActive(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	result := r.db.WithContext(ctx).Where("active = ?", true).Order("id").Find(&accounts)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list active accounts: %w", result.Error)
	}
	return accounts, nil
}

// ClaimBusy atomically sets the busy flag if it is not already set. The flag
// is the sole concurrency guard for an account and survives restarts; a
// false return means another sync holds the account.
func (r *Registry) ClaimBusy(ctx context.Context, accountID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ? AND busy = ?", accountID, false).
		Update("busy", true)
	if result.Error != nil {
		return false, fmt.Errorf("failed to claim busy flag for account %d: %w", accountID, result.Error)
	}
	return result.RowsAffected == 1, nil
}

// ReleaseBusy clears the busy flag without touching any other state. Used on
// the failure path and by the operational unlock endpoint.
func (r *Registry) ReleaseBusy(ctx context.Context, accountID uint) error {
	result := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", accountID).
		Update("busy", false)
	if result.Error != nil {
		return fmt.Errorf("failed to release busy flag for account %d: %w", accountID, result.Error)
	}
	return nil
}

// Deactivate marks an account as needing re-authentication and clears its
// busy flag.
func (r *Registry) Deactivate(ctx context.Context, accountID uint) error {
	result := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{"active": false, "busy": false})
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate account %d: %w", accountID, result.Error)
	}
	return nil
}

// Complete applies the end-of-sync state update and clears the busy flag in
// a single write.
func (r *Registry) Complete(ctx context.Context, accountID uint, update SyncUpdate) error {
	lastSync := update.LastSyncAt
	result := r.db.WithContext(ctx).
		Model(&model.Account{ID: accountID}).
		Select("busy", "last_sync_at", "rejected_log", "watermark").
		Updates(model.Account{
			Busy:        false,
			LastSyncAt:  &lastSync,
			RejectedLog: update.RejectedLog,
			Watermark:   update.Watermark,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to complete sync for account %d: %w", accountID, result.Error)
	}
	return nil
}

// RecordSyncLog appends a sync attempt row. Logging failures are not worth
// failing a sync over, so the caller typically only warns on error.
func (r *Registry) RecordSyncLog(ctx context.Context, log *model.SyncLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to record sync log: %w", err)
	}
	return nil
}

// ListAll returns every account, active or not, for the operator listing.
func (r *Registry) ListAll(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	result := r.db.WithContext(ctx).Order("id").Find(&accounts)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", result.Error)
	}
	return accounts, nil
}
