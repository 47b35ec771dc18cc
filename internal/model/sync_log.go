package model

import (
	"time"

	"gorm.io/gorm"
)

// Sync attempt outcomes.
const (
	SyncStatusSuccess = "success"
	SyncStatusSkipped = "skipped"
	SyncStatusFailed  = "failed"
)

// SyncLog records one sync attempt for one account.
type SyncLog struct {
	ID        uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	CycleID   string         `json:"cycle_id" gorm:"type:varchar(64);index"`
	AccountID uint           `json:"account_id" gorm:"not null;index"`
	Status    string         `json:"status" gorm:"type:varchar(50);not null"`
	Accepted  int            `json:"accepted"`
	Rejected  int            `json:"rejected"`
	ErrorMsg  string         `json:"error_msg" gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for SyncLog
func (SyncLog) TableName() string {
	return "sync_logs"
}
