package txset

import (
	"context"
	"sort"
)

// policy bundles the two decision points checkOrTrim defers to its caller.
// trimInvalid and checkValid each supply a distinct policy: trim-and-continue
// drops offenders and keeps scanning; abort-on-any rejects the whole set on
// the first problem.
type policy struct {
	// onInvalidTx is called when a transaction fails CheckValid. Returning
	// true continues the scan (the trim policy also removes tx from the
	// set); returning false aborts with a failed verdict.
	onInvalidTx func(tx Transaction, lastSeq SequenceNumber) bool

	// onInsufficientBalance is called once per account, after that
	// account's transactions have been scanned, when the account's
	// spendable balance would fall below its minimum after fees.
	// Returning true continues; false aborts.
	onInsufficientBalance func(account AccountID, txs []Transaction) bool
}

// checkOrTrim is the shared validation engine behind TrimInvalid and
// CheckValid. It requires the set to already be in canonical order; callers
// are responsible for calling SortForHash first where required.
func (f *Frame) checkOrTrim(ctx context.Context, app ApplicationContext, scope ReadScope, pol policy) (bool, error) {
	if !f.isCanonical() {
		return false, ErrNotCanonical
	}

	byAccount := make(map[AccountID][]Transaction)
	var order []AccountID
	for _, tx := range f.transactions {
		a := tx.SourceID()
		if _, seen := byAccount[a]; !seen {
			order = append(order, a)
		}
		byAccount[a] = append(byAccount[a], tx)
	}

	ok := true
	for _, account := range order {
		txs := byAccount[account]
		sort.Slice(txs, func(i, j int) bool {
			return txs[i].SeqNum() < txs[j].SeqNum()
		})

		var lastSeq SequenceNumber
		var totFee int64
		anySucceeded := false

		for _, tx := range txs {
			if !tx.CheckValid(app, lastSeq) {
				logInvalidTx(f.previousLedgerHash, tx, lastSeq)
				if !pol.onInvalidTx(tx, lastSeq) {
					return false, nil
				}
				continue
			}
			if !tx.IsWhitelisted(app) {
				totFee += tx.Fee()
			}
			lastSeq = tx.SeqNum()
			anySucceeded = true
		}

		if !anySucceeded {
			continue
		}

		balance, err := scope.Balance(ctx, account)
		if err != nil {
			return false, err
		}
		minBalance, err := scope.MinimumBalance(ctx, account)
		if err != nil {
			return false, err
		}

		newBalance := balance.Drops() - totFee
		if newBalance < minBalance.Drops() {
			logInsufficientBalance(f.previousLedgerHash, account, len(txs))
			if !pol.onInsufficientBalance(account, txs) {
				ok = false
			}
		}
	}

	return ok, nil
}

// TrimInvalid opens a read-only storage scope, canonicalizes the set, and
// removes every transaction that fails its own validity check or belongs to
// an account that would become insolvent. trimmed is appended with every
// transaction removed. An insolvent account has its entire transaction list
// removed, not merely the offending tail, since partial removal would break
// seqNum continuity for the remainder.
func (f *Frame) TrimInvalid(ctx context.Context, app ApplicationContext) (trimmed []Transaction, err error) {
	scope, err := app.Database().ReadOnlyScope(ctx)
	if err != nil {
		return nil, err
	}
	defer scope.Close()

	f.SortForHash()

	pol := policy{
		onInvalidTx: func(tx Transaction, lastSeq SequenceNumber) bool {
			trimmed = append(trimmed, tx)
			f.RemoveTx(tx)
			return true
		},
		onInsufficientBalance: func(account AccountID, txs []Transaction) bool {
			for _, tx := range txs {
				trimmed = append(trimmed, tx)
				f.RemoveTx(tx)
			}
			return true
		},
	}

	// SortForHash above guarantees canonical order, so checkOrTrim's only
	// possible error here is a storage failure while checking balances.
	if _, err := f.checkOrTrim(ctx, app, scope, pol); err != nil {
		return trimmed, err
	}
	return trimmed, nil
}

// CheckValid opens a read-only storage scope and reports whether the set is
// structurally and semantically valid for the given target ledger: it must
// already be canonical, bounded by the ledger's maximum set size, parent
// the ledger's hash, and every account's transactions must be a gap-free
// ascending seqNum sequence with sufficient balance to cover non-whitelisted
// fees. No mutation occurs on any path.
func (f *Frame) CheckValid(ctx context.Context, app ApplicationContext) (bool, error) {
	scope, err := app.Database().ReadOnlyScope(ctx)
	if err != nil {
		return false, err
	}
	defer scope.Close()

	lm := app.LedgerManager()
	ledgerHeader := lm.LastClosedLedgerHeader()

	if f.previousLedgerHash != Hash(ledgerHeader.Hash) {
		diagLogger.Printf("%v: got=%x want=%x", ErrWrongParent, f.previousLedgerHash[:4], ledgerHeader.Hash[:4])
		return false, nil
	}
	if uint32(len(f.transactions)) > lm.MaxTxSetSize() {
		diagLogger.Printf("%v: size=%d max=%d", ErrTooLarge, len(f.transactions), lm.MaxTxSetSize())
		return false, nil
	}

	pol := policy{
		onInvalidTx: func(tx Transaction, lastSeq SequenceNumber) bool {
			return false
		},
		onInsufficientBalance: func(account AccountID, txs []Transaction) bool {
			return false
		},
	}

	// A non-canonical set is also a structural rejection, not an
	// execution failure: fold it into the verdict rather than surfacing
	// it as an error (CheckValid never mutates, so it cannot repair the
	// order the way TrimInvalid does by pre-sorting).
	ok, err := f.checkOrTrim(ctx, app, scope, pol)
	if err == ErrNotCanonical {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}
