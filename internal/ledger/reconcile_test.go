package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankmail-ledger-go/internal/parser"
)

func tx(ref string) parser.Transaction {
	return parser.Transaction{
		ReferenceNumber: ref,
		Amount:          decimal.NewFromInt(100),
		Direction:       parser.DirectionDebit,
	}
}

func refs(survivors []parser.Transaction) []string {
	out := make([]string, 0, len(survivors))
	for _, s := range survivors {
		out = append(out, s.ReferenceNumber)
	}
	return out
}

func TestReconcileFiltersExistingReferences(t *testing.T) {
	candidates := []parser.Transaction{tx("A"), tx("B"), tx("C")}
	existing := []string{"B"}

	survivors := Reconcile(candidates, existing)
	assert.Equal(t, []string{"A", "C"}, refs(survivors))
}

func TestReconcileCatchesWithinBatchDuplicates(t *testing.T) {
	candidates := []parser.Transaction{tx("A"), tx("A"), tx("B")}

	survivors := Reconcile(candidates, nil)
	assert.Equal(t, []string{"A", "B"}, refs(survivors))
}

func TestReconcileIsSetUnion(t *testing.T) {
	candidates := []parser.Transaction{tx("A"), tx("B")}
	existing := []string{"X"}

	first := Reconcile(candidates, existing)
	require.Len(t, first, 2)

	// Running the same batch against the ledger state after the first run
	// yields nothing new.
	second := Reconcile(candidates, append(existing, refs(first)...))
	assert.Empty(t, second)
}

func TestReconcilePreservesArrivalOrder(t *testing.T) {
	candidates := []parser.Transaction{tx("C"), tx("A"), tx("B")}

	survivors := Reconcile(candidates, nil)
	assert.Equal(t, []string{"C", "A", "B"}, refs(survivors))
}

func TestReconcileEmptyBaselineIgnoresBlankCells(t *testing.T) {
	candidates := []parser.Transaction{tx("A")}

	// Header rows and padding read back as empty strings; they must not
	// collide with anything.
	survivors := Reconcile(candidates, []string{"", "", "Reference Number"})
	assert.Equal(t, []string{"A"}, refs(survivors))
}
