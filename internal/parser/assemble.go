package parser

import (
	"fmt"
	"time"
)

// ReasonMissingFields is the fixed rejection reason for notifications that
// fail the acceptance gate.
const ReasonMissingFields = "Missing required fields (amount, type, or account)"

const (
	snippetLimit = 200
	subjectLimit = 50
)

// ReferencePrefix prefixes synthesized reference numbers. The suffix is the
// mail provider's message identifier, which makes the fallback deterministic
// and unique per message.
const ReferencePrefix = "EMAIL_"

// Assemble combines extracted fields into a validated Transaction, or a
// Rejection when the notification fails the acceptance gate. It never
// returns an error and never panics: any fault during assembly is converted
// into a Rejection carrying the fault's description.
func Assemble(fields ExtractedFields, subject, body string, received time.Time, messageID string) (tx *Transaction, rej *Rejection) {
	defer func() {
		if r := recover(); r != nil {
			tx = nil
			rej = newRejection(messageID, subject, body, received, fmt.Sprintf("assembly fault: %v", r))
		}
	}()

	// Acceptance gate: a notification without amount, direction and account
	// suffix is rejected whole, never partially accepted.
	if !fields.Amount.Present() || !fields.Direction.Present() || !fields.AccountSuffix.Present() {
		return nil, newRejection(messageID, subject, body, received, ReasonMissingFields)
	}

	rawAmount, _ := fields.Amount.Get()
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return nil, newRejection(messageID, subject, body, received, err.Error())
	}

	balance := BalanceUnknown
	if raw, ok := fields.Balance.Get(); ok {
		if b, err := ParseBalance(raw); err == nil {
			balance = b
		}
	}

	return &Transaction{
		DateTime:         CanonicalTimestamp(fields.Date, fields.Time, received),
		Amount:           amount,
		Direction:        Direction(fields.Direction.Or(string(DirectionDebit))),
		Method:           fields.Method.Or(MethodOther),
		AccountSuffix:    fields.AccountSuffix.Or(""),
		Description:      description(fields, subject),
		ReferenceNumber:  fields.Reference.Or(ReferencePrefix + messageID),
		AvailableBalance: balance,
		EmailReceived:    FormatTimestamp(received),
	}, nil
}

// description picks the transaction description by method-specific priority,
// falling back to a truncated subject line.
func description(fields ExtractedFields, subject string) string {
	switch fields.Method.Or("") {
	case MethodUPI:
		if name, ok := fields.Merchant.Get(); ok {
			if vpa, ok := fields.VPA.Get(); ok {
				return fmt.Sprintf("%s (%s)", name, vpa)
			}
			return name
		}
	case MethodDebitCard, MethodCreditCard:
		if name, ok := fields.Merchant.Get(); ok {
			return name
		}
	case MethodCashDeposit:
		if location, ok := fields.Location.Get(); ok {
			return "Cash Deposit at " + location
		}
	}
	return truncate(subject, subjectLimit)
}

func newRejection(messageID, subject, body string, received time.Time, reason string) *Rejection {
	return &Rejection{
		MessageID:  messageID,
		Subject:    subject,
		Snippet:    truncate(body, snippetLimit),
		ReceivedAt: received,
		Reason:     reason,
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
