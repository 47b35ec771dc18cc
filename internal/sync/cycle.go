package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bankmail-ledger-go/internal/model"
)

// CycleResult aggregates one full pass over every active account.
type CycleResult struct {
	CycleID    string        `json:"cycle_id"`
	Accounts   int           `json:"accounts"`
	Accepted   int           `json:"accepted"`
	Rejected   int           `json:"rejected"`
	Duplicates int           `json:"duplicates"`
	Skipped    int           `json:"skipped"`
	Failed     int           `json:"failed"`
	Elapsed    time.Duration `json:"elapsed"`
}

// RunCycle processes every active account sequentially. Per-account failures
// are absorbed into the result; only a failure to list accounts fails the
// cycle as a whole.
func (o *Orchestrator) RunCycle(ctx context.Context) (*CycleResult, error) {
	start := time.Now()
	result := &CycleResult{CycleID: uuid.NewString()}
	log := logrus.WithField("cycle_id", result.CycleID)

	log.Info("Starting sync cycle")
	o.metrics.CycleCount.Inc()

	accounts, err := o.registry.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("registry unreachable: %w", err)
	}
	result.Accounts = len(accounts)
	o.metrics.ActiveAccounts.Set(float64(len(accounts)))

	for _, acct := range accounts {
		accountResult := o.SyncAccount(ctx, acct)

		result.Accepted += accountResult.Accepted
		result.Rejected += accountResult.Rejected
		result.Duplicates += accountResult.Duplicates
		switch accountResult.Status {
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}

		o.metrics.AcceptedCount.Add(float64(accountResult.Accepted))
		o.metrics.RejectedCount.Add(float64(accountResult.Rejected))
		o.metrics.DuplicateCount.Add(float64(accountResult.Duplicates))

		o.recordAttempt(ctx, log, result.CycleID, accountResult)
	}

	result.Elapsed = time.Since(start)
	o.metrics.CycleDuration.Observe(result.Elapsed.Seconds())
	log.Infof("Sync cycle completed in %v: %d accepted, %d rejected, %d failed accounts",
		result.Elapsed, result.Accepted, result.Rejected, result.Failed)
	return result, nil
}

func (o *Orchestrator) recordAttempt(ctx context.Context, log *logrus.Entry, cycleID string, res AccountResult) {
	entry := &model.SyncLog{
		CycleID:   cycleID,
		AccountID: res.AccountID,
		Status:    res.Status,
		Accepted:  res.Accepted,
		Rejected:  res.Rejected,
	}
	if res.Err != nil {
		entry.ErrorMsg = res.Err.Error()
	}
	if err := o.registry.RecordSyncLog(ctx, entry); err != nil {
		log.Warnf("Failed to record sync log for account %d: %v", res.AccountID, err)
	}
}
