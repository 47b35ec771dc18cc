package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"bankmail-ledger-go/internal/config"
	"bankmail-ledger-go/internal/ledger"
	"bankmail-ledger-go/internal/mail"
	"bankmail-ledger-go/internal/metrics"
	"bankmail-ledger-go/internal/model"
	"bankmail-ledger-go/internal/parser"
	"bankmail-ledger-go/internal/registry"
)

// Account sync statuses.
const (
	StatusSuccess = "success"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Orchestrator drives the sync state machine for each account:
// Idle -> Busy -> (Success | Failed) -> Idle. Failures are isolated per
// account; only an unreachable registry fails a whole cycle.
type Orchestrator struct {
	registry Registry
	tokens   TokenExchanger
	mail     mail.Opener
	ledger   ledger.Opener
	metrics  *metrics.Metrics
	syncCfg  *config.SyncConfig
	mailCfg  *config.MailConfig
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(reg Registry, tokens TokenExchanger, mailOpener mail.Opener, ledgerOpener ledger.Opener, m *metrics.Metrics, syncCfg *config.SyncConfig, mailCfg *config.MailConfig) *Orchestrator {
	return &Orchestrator{
		registry: reg,
		tokens:   tokens,
		mail:     mailOpener,
		ledger:   ledgerOpener,
		metrics:  m,
		syncCfg:  syncCfg,
		mailCfg:  mailCfg,
	}
}

// AccountResult is the outcome of one account's sync attempt.
type AccountResult struct {
	AccountID  uint
	Status     string
	Accepted   int
	Rejected   int
	Duplicates int
	Err        error
}

// SyncAccount runs one sync attempt for one account. It never panics and
// never lets a fault escape: credential failures deactivate the account, and
// everything else clears the busy flag and reports a failed attempt while
// leaving the account active.
func (o *Orchestrator) SyncAccount(ctx context.Context, acct model.Account) AccountResult {
	log := logrus.WithFields(logrus.Fields{"account_id": acct.ID, "email": acct.Email})

	// Entry guard: no ledger means sync is disabled for this account, and a
	// set busy flag means another sync (or a crashed one awaiting an
	// operator reset) holds it. Neither is an error.
	if !acct.SyncEnabled() {
		log.Debug("Account has no ledger configured, skipping")
		return AccountResult{AccountID: acct.ID, Status: StatusSkipped}
	}

	claimed, err := o.registry.ClaimBusy(ctx, acct.ID)
	if err != nil {
		return AccountResult{AccountID: acct.ID, Status: StatusFailed, Err: fmt.Errorf("failed to claim account %d: %w", acct.ID, err)}
	}
	if !claimed {
		log.Info("Account is busy, skipping")
		return AccountResult{AccountID: acct.ID, Status: StatusSkipped}
	}

	// A refresh-token failure means the account needs re-authentication,
	// not a retry: deactivate it so it stops burning cycles.
	ts, err := o.tokens.Exchange(ctx, acct.RefreshToken)
	if err != nil {
		log.Errorf("Credential exchange failed, deactivating account: %v", err)
		o.metrics.CredentialFailures.Inc()
		if derr := o.registry.Deactivate(ctx, acct.ID); derr != nil {
			log.Errorf("Failed to deactivate account: %v", derr)
		}
		return AccountResult{AccountID: acct.ID, Status: StatusFailed, Err: fmt.Errorf("credential exchange failed: %w", err)}
	}

	result, err := o.guardedSync(ctx, log, acct, ts)
	if err != nil {
		log.Errorf("Sync failed: %v", err)
		o.metrics.AccountFailures.Inc()
		if rerr := o.registry.ReleaseBusy(ctx, acct.ID); rerr != nil {
			log.Errorf("Failed to release busy flag: %v", rerr)
		}
		return AccountResult{AccountID: acct.ID, Status: StatusFailed, Err: err}
	}

	result.AccountID = acct.ID
	result.Status = StatusSuccess
	return result
}

// guardedSync converts panics inside a sync attempt into errors so they hit
// the same failure path as any other account-level fault.
func (o *Orchestrator) guardedSync(ctx context.Context, log *logrus.Entry, acct model.Account, ts oauth2.TokenSource) (result AccountResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during sync: %v", r)
		}
	}()
	return o.sync(ctx, log, acct, ts)
}

func (o *Orchestrator) sync(ctx context.Context, log *logrus.Entry, acct model.Account, ts oauth2.TokenSource) (AccountResult, error) {
	mailClient, err := o.mail.Open(ctx, ts)
	if err != nil {
		return AccountResult{}, fmt.Errorf("failed to open mailbox: %w", err)
	}
	defer mailClient.Close()

	query := mail.Query{
		Sender:   o.mailCfg.Sender,
		Keywords: o.mailCfg.Keywords,
		After:    acct.Watermark,
	}

	// The batch cap bounds one cycle's work; backlog beyond it is picked up
	// by later cycles through the advancing watermark.
	ids, err := mailClient.List(ctx, query, o.syncCfg.BatchSize)
	if err != nil {
		return AccountResult{}, fmt.Errorf("failed to list messages: %w", err)
	}
	log.Infof("Fetched %d message ids", len(ids))

	var (
		candidates  []parser.Transaction
		rejections  []parser.Rejection
		maxReceived time.Time
	)

	for _, id := range ids {
		msg, rejection := o.processMessage(ctx, mailClient, id)
		if msg != nil && msg.Received.After(maxReceived) {
			maxReceived = msg.Received
		}
		if rejection != nil {
			rejections = append(rejections, *rejection)
			continue
		}

		fields := parser.Extract(msg.Body)
		tx, rej := parser.Assemble(fields, msg.Subject, msg.Body, msg.Received, msg.ID)
		if rej != nil {
			log.Debugf("Message %s rejected: %s", msg.ID, rej.Reason)
			rejections = append(rejections, *rej)
			continue
		}
		candidates = append(candidates, *tx)
	}

	ledgerClient, err := o.ledger.Open(ctx, ts)
	if err != nil {
		return AccountResult{}, fmt.Errorf("failed to open ledger: %w", err)
	}

	// Existing references are best-effort: an unreadable column degrades to
	// an empty baseline rather than aborting the sync.
	existing, err := ledgerClient.ReadColumn(ctx, acct.SpreadsheetID, o.syncCfg.ReferenceRange)
	if err != nil {
		log.Warnf("Failed to read existing references, treating ledger as empty: %v", err)
		existing = nil
	}

	survivors := ledger.Reconcile(candidates, existing)
	if len(survivors) > 0 {
		rows := make([][]interface{}, 0, len(survivors))
		for i := range survivors {
			rows = append(rows, survivors[i].Row())
		}
		if err := ledgerClient.Append(ctx, acct.SpreadsheetID, o.syncCfg.TransactionsRange, rows); err != nil {
			return AccountResult{}, fmt.Errorf("failed to append transactions: %w", err)
		}
	}

	// The watermark advances to the latest received instant seen in the
	// batch, accepted or rejected, so malformed mail is not refetched
	// forever. It never regresses.
	newWatermark := acct.Watermark
	if !maxReceived.IsZero() && (newWatermark == nil || maxReceived.After(*newWatermark)) {
		newWatermark = &maxReceived
		if err := ledgerClient.UpdateCell(ctx, acct.SpreadsheetID, o.syncCfg.WatermarkCell, parser.FormatTimestamp(maxReceived)); err != nil {
			log.Warnf("Failed to update watermark cell: %v", err)
		}
	}

	acct.AppendRejections(rejections)
	update := registry.SyncUpdate{
		Watermark:   newWatermark,
		RejectedLog: acct.RejectedLog,
		LastSyncAt:  time.Now(),
	}
	if err := o.registry.Complete(ctx, acct.ID, update); err != nil {
		return AccountResult{}, fmt.Errorf("failed to persist sync state: %w", err)
	}

	log.Infof("Sync complete: %d accepted, %d rejected, %d duplicates", len(survivors), len(rejections), len(candidates)-len(survivors))
	return AccountResult{
		Accepted:   len(survivors),
		Rejected:   len(rejections),
		Duplicates: len(candidates) - len(survivors),
	}, nil
}

// processMessage fetches one message. A fetch fault does not abort the
// batch; it is recorded in the rejected log with a distinct reason so
// operators can see it.
func (o *Orchestrator) processMessage(ctx context.Context, mailClient mail.Client, id string) (*mail.Message, *parser.Rejection) {
	msg, err := mailClient.Get(ctx, id)
	if err != nil {
		logrus.Warnf("Failed to get message %s: %v", id, err)
		return nil, &parser.Rejection{
			MessageID: id,
			Reason:    fmt.Sprintf("processing fault: %v", err),
		}
	}
	return msg, nil
}
