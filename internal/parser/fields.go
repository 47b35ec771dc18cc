package parser

import (
	"time"

	"github.com/shopspring/decimal"
)

// Field holds an optionally-present raw token pulled out of a message body.
// Absence is a legal state everywhere and is distinct from an empty value.
type Field struct {
	value string
	ok    bool
}

// NewField returns a present Field holding v.
func NewField(v string) Field {
	return Field{value: v, ok: true}
}

// Get returns the value and whether it is present.
func (f Field) Get() (string, bool) {
	return f.value, f.ok
}

// Present reports whether the field was extracted.
func (f Field) Present() bool {
	return f.ok
}

// Or returns the value if present, otherwise the fallback.
func (f Field) Or(fallback string) string {
	if f.ok {
		return f.value
	}
	return fallback
}

// ExtractedFields is the best-effort output of pattern extraction over a
// notification body. Every field may be absent.
type ExtractedFields struct {
	Amount        Field
	Direction     Field
	AccountSuffix Field
	Date          Field
	Time          Field
	Method        Field
	Reference     Field
	Merchant      Field
	VPA           Field
	Location      Field
	Balance       Field
}

// Direction of a transaction relative to the account.
type Direction string

const (
	DirectionCredit Direction = "Credit"
	DirectionDebit  Direction = "Debit"
)

// Payment method vocabulary.
const (
	MethodUPI         = "UPI"
	MethodDebitCard   = "Debit Card"
	MethodCreditCard  = "Credit Card"
	MethodCashDeposit = "Cash Deposit"
	MethodNetBanking  = "Net Banking"
	MethodNEFT        = "NEFT"
	MethodIMPS        = "IMPS"
	MethodRTGS        = "RTGS"
	MethodOther       = "Other"
)

// BalanceUnknown is written to the ledger when no balance was disclosed.
const BalanceUnknown = "Unknown"

// Transaction is an accepted, normalized bank notification.
type Transaction struct {
	DateTime         string          `json:"date_time"`
	Amount           decimal.Decimal `json:"amount"`
	Direction        Direction       `json:"direction"`
	Method           string          `json:"method"`
	AccountSuffix    string          `json:"account_suffix"`
	Description      string          `json:"description"`
	ReferenceNumber  string          `json:"reference_number"`
	AvailableBalance string          `json:"available_balance"`
	Category         string          `json:"category"`
	Notes            string          `json:"notes"`
	EmailReceived    string          `json:"email_received"`
}

// Row returns the ledger row for the transaction. Column order is a storage
// contract; the reference number lands in column G.
func (t *Transaction) Row() []interface{} {
	return []interface{}{
		t.DateTime,
		t.Amount.String(),
		string(t.Direction),
		t.Method,
		t.AccountSuffix,
		t.Description,
		t.ReferenceNumber,
		t.AvailableBalance,
		t.Category,
		t.Notes,
		t.EmailReceived,
	}
}

// Rejection records a notification that failed the acceptance gate. Kept only
// for operator diagnosis in the account's rolling rejected log.
type Rejection struct {
	MessageID  string    `json:"message_id"`
	Subject    string    `json:"subject"`
	Snippet    string    `json:"snippet"`
	ReceivedAt time.Time `json:"received_at"`
	Reason     string    `json:"reason"`
}
