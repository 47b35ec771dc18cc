package model

import (
	"time"

	"gorm.io/gorm"

	"bankmail-ledger-go/internal/parser"
)

// RejectedLogCap bounds the rolling rejected-message log kept on each
// account. Oldest entries are evicted first.
const RejectedLogCap = 50

// Account is the per-mailbox sync state. The Busy flag is a persisted
// mutual-exclusion token: it is claimed with a compare-and-set update and
// survives process restarts, so a crash mid-sync leaves the account locked
// until an operator resets it.
type Account struct {
	ID            uint               `json:"id" gorm:"primaryKey;autoIncrement"`
	Email         string             `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	RefreshToken  string             `json:"-" gorm:"type:text"`
	SpreadsheetID string             `json:"spreadsheet_id" gorm:"type:varchar(255)"`
	Watermark     *time.Time         `json:"watermark"`
	Busy          bool               `json:"busy" gorm:"default:false"`
	Active        bool               `json:"active" gorm:"default:true;index"`
	LastSyncAt    *time.Time         `json:"last_sync_at"`
	RejectedLog   []parser.Rejection `json:"rejected_log" gorm:"serializer:json;type:text"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}

// SyncEnabled reports whether the account has a ledger to write to. An
// account without a spreadsheet is skipped, not failed.
func (a *Account) SyncEnabled() bool {
	return a.SpreadsheetID != ""
}

// AppendRejections merges new rejections into the rolling log, evicting the
// oldest entries beyond RejectedLogCap.
func (a *Account) AppendRejections(rejections []parser.Rejection) {
	a.RejectedLog = append(a.RejectedLog, rejections...)
	if excess := len(a.RejectedLog) - RejectedLogCap; excess > 0 {
		a.RejectedLog = a.RejectedLog[excess:]
	}
}
