package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var assembleReceived = time.Date(2026, time.January, 12, 19, 0, 0, 0, time.Local)

func TestAssembleUPITransaction(t *testing.T) {
	fields := Extract(upiBody)

	tx, rej := Assemble(fields, "Alert: debit on your account", upiBody, assembleReceived, "msg-001")
	require.Nil(t, rej)
	require.NotNil(t, tx)

	assert.Equal(t, "12/01/2026 6:51 PM", tx.DateTime)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, DirectionDebit, tx.Direction)
	assert.Equal(t, MethodUPI, tx.Method)
	assert.Equal(t, "1234", tx.AccountSuffix)
	assert.Equal(t, "MERCHANT NAME (merchant@upi)", tx.Description)
	assert.Equal(t, "ABC123", tx.ReferenceNumber)
	assert.Equal(t, "10000", tx.AvailableBalance)
	assert.Equal(t, "12/01/2026 7:00 PM", tx.EmailReceived)
	assert.Empty(t, tx.Category)
	assert.Empty(t, tx.Notes)
}

func TestAssembleRejectsMissingAmount(t *testing.T) {
	body := "Something was debited from account ending 1234 today."
	fields := Extract(body)

	tx, rej := Assemble(fields, "Account update", body, assembleReceived, "msg-002")
	assert.Nil(t, tx)
	require.NotNil(t, rej)
	assert.Equal(t, ReasonMissingFields, rej.Reason)
	assert.Equal(t, "msg-002", rej.MessageID)
	assert.Equal(t, "Account update", rej.Subject)
}

func TestAssembleRejectsMissingDirection(t *testing.T) {
	body := "Rs. 500 transaction on account ending 1234."
	fields := Extract(body)

	tx, rej := Assemble(fields, "Alert", body, assembleReceived, "msg-003")
	assert.Nil(t, tx)
	require.NotNil(t, rej)
	assert.Equal(t, ReasonMissingFields, rej.Reason)
}

func TestAssembleRejectsMissingAccount(t *testing.T) {
	body := "Rs. 500 debited via UPI."
	fields := Extract(body)

	tx, rej := Assemble(fields, "Alert", body, assembleReceived, "msg-004")
	assert.Nil(t, tx)
	require.NotNil(t, rej)
	assert.Equal(t, ReasonMissingFields, rej.Reason)
}

func TestAssembleSynthesizesReference(t *testing.T) {
	body := "Rs. 750 debited from account ending 4444 via NEFT."
	fields := Extract(body)

	tx, rej := Assemble(fields, "Alert", body, assembleReceived, "18c2aa7")
	require.Nil(t, rej)
	require.NotNil(t, tx)
	assert.Equal(t, "EMAIL_18c2aa7", tx.ReferenceNumber)
}

func TestAssembleDescriptionFallsBackToSubject(t *testing.T) {
	body := "Rs. 750 debited from account ending 4444 via NEFT."
	fields := Extract(body)

	longSubject := strings.Repeat("Alert from your bank ", 5)
	tx, rej := Assemble(fields, longSubject, body, assembleReceived, "msg-005")
	require.Nil(t, rej)
	require.NotNil(t, tx)
	assert.Len(t, tx.Description, 50)
	assert.Equal(t, longSubject[:50], tx.Description)
}

func TestAssembleCashDepositDescription(t *testing.T) {
	body := "Rs. 5,000 credited to account ending 4321 deposited at Connaught Place Branch via Cash Deposit Machine."
	fields := Extract(body)

	tx, rej := Assemble(fields, "Deposit alert", body, assembleReceived, "msg-006")
	require.Nil(t, rej)
	require.NotNil(t, tx)
	assert.Equal(t, MethodCashDeposit, tx.Method)
	assert.Equal(t, "Cash Deposit at Connaught Place Branch", tx.Description)
}

func TestAssembleUnknownMethodAndBalance(t *testing.T) {
	body := "Rs. 100 credited to account ending 7777."
	fields := Extract(body)

	tx, rej := Assemble(fields, "Alert", body, assembleReceived, "msg-007")
	require.Nil(t, rej)
	require.NotNil(t, tx)
	assert.Equal(t, MethodOther, tx.Method)
	assert.Equal(t, BalanceUnknown, tx.AvailableBalance)
}

func TestAssembleSnippetBounded(t *testing.T) {
	body := strings.Repeat("x", 500)
	fields := Extract(body)

	tx, rej := Assemble(fields, "Alert", body, assembleReceived, "msg-008")
	assert.Nil(t, tx)
	require.NotNil(t, rej)
	assert.Len(t, rej.Snippet, 200)
}

func TestAssembleNeverPartiallyAccepts(t *testing.T) {
	// A message with everything except the account suffix must reject whole.
	body := "Rs. 999 debited via UPI to VPA shop@upi SHOP NAME. Reference number is XYZ."
	fields := Extract(body)

	tx, rej := Assemble(fields, "Alert", body, assembleReceived, "msg-009")
	assert.Nil(t, tx)
	require.NotNil(t, rej)
	assert.Equal(t, ReasonMissingFields, rej.Reason)
}

func TestTransactionRowOrder(t *testing.T) {
	tx := &Transaction{
		DateTime:         "12/01/2026 6:51 PM",
		Amount:           decimal.NewFromInt(500),
		Direction:        DirectionDebit,
		Method:           MethodUPI,
		AccountSuffix:    "1234",
		Description:      "MERCHANT NAME (merchant@upi)",
		ReferenceNumber:  "ABC123",
		AvailableBalance: "10000",
		EmailReceived:    "12/01/2026 7:00 PM",
	}

	row := tx.Row()
	require.Len(t, row, 11)
	assert.Equal(t, "12/01/2026 6:51 PM", row[0])
	assert.Equal(t, "500", row[1])
	assert.Equal(t, "Debit", row[2])
	assert.Equal(t, "UPI", row[3])
	assert.Equal(t, "1234", row[4])
	assert.Equal(t, "MERCHANT NAME (merchant@upi)", row[5])
	assert.Equal(t, "ABC123", row[6])
	assert.Equal(t, "10000", row[7])
	assert.Equal(t, "", row[8])
	assert.Equal(t, "", row[9])
	assert.Equal(t, "12/01/2026 7:00 PM", row[10])
}
