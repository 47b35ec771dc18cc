package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankmail-ledger-go/internal/parser"
)

func rejection(n int) parser.Rejection {
	return parser.Rejection{MessageID: fmt.Sprintf("msg-%03d", n), Reason: parser.ReasonMissingFields}
}

func TestAppendRejectionsBelowCap(t *testing.T) {
	var a Account
	a.AppendRejections([]parser.Rejection{rejection(1), rejection(2)})
	assert.Len(t, a.RejectedLog, 2)
}

func TestAppendRejectionsEvictsOldest(t *testing.T) {
	var a Account
	for i := 0; i < RejectedLogCap; i++ {
		a.AppendRejections([]parser.Rejection{rejection(i)})
	}
	require.Len(t, a.RejectedLog, RejectedLogCap)

	a.AppendRejections([]parser.Rejection{rejection(999)})
	require.Len(t, a.RejectedLog, RejectedLogCap)
	assert.Equal(t, "msg-001", a.RejectedLog[0].MessageID)
	assert.Equal(t, "msg-999", a.RejectedLog[RejectedLogCap-1].MessageID)
}

func TestSyncEnabled(t *testing.T) {
	a := Account{SpreadsheetID: "sheet-1"}
	assert.True(t, a.SyncEnabled())

	a.SpreadsheetID = ""
	assert.False(t, a.SyncEnabled())
}
