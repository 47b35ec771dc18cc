package ledger

import (
	"bankmail-ledger-go/internal/parser"
)

// Reconcile filters candidate transactions against the ledger's existing
// reference numbers, preserving arrival order. Each survivor's reference is
// added to the seen set as it is accepted, so duplicates within the same
// batch are caught as well as duplicates against the ledger. Running the
// same batch twice against the same baseline yields no survivors the second
// time.
func Reconcile(candidates []parser.Transaction, existing []string) []parser.Transaction {
	seen := make(map[string]struct{}, len(existing))
	for _, ref := range existing {
		if ref != "" {
			seen[ref] = struct{}{}
		}
	}

	var survivors []parser.Transaction
	for _, tx := range candidates {
		if _, dup := seen[tx.ReferenceNumber]; dup {
			continue
		}
		seen[tx.ReferenceNumber] = struct{}{}
		survivors = append(survivors, tx)
	}
	return survivors
}
