package txset

import (
	"crypto/sha256"
	"sort"
)

// Frame is the Transaction Set Frame: the consensus-critical container of
// candidate transactions for the next ledger close. It is a single-owner,
// non-thread-safe value. All mutation must invalidate hashCache before
// returning.
type Frame struct {
	previousLedgerHash Hash
	transactions       []Transaction

	hashCache Hash
	hashValid bool
}

// NewFrame constructs an empty set bound to the given parent ledger hash.
func NewFrame(previousLedgerHash Hash) *Frame {
	return &Frame{previousLedgerHash: previousLedgerHash}
}

// PreviousLedgerHash returns the parent ledger hash this set targets.
func (f *Frame) PreviousLedgerHash() Hash {
	return f.previousLedgerHash
}

// SetPreviousLedgerHash re-parents this set and invalidates the cached
// content hash.
func (f *Frame) SetPreviousLedgerHash(h Hash) {
	f.previousLedgerHash = h
	f.hashValid = false
}

// Size returns the number of transactions currently held.
func (f *Frame) Size() int {
	return len(f.transactions)
}

// Transactions returns the current transaction order. Callers must not
// mutate the returned slice; use Add/RemoveTx to mutate the set.
func (f *Frame) Transactions() []Transaction {
	return f.transactions
}

// Add appends tx to the set and invalidates the cached content hash.
func (f *Frame) Add(tx Transaction) {
	f.transactions = append(f.transactions, tx)
	f.hashValid = false
}

// RemoveTx removes tx, identified by full hash, if present. A no-op if the
// transaction is not in the set. Invalidates the cached content hash
// unconditionally, including on early exits.
func (f *Frame) RemoveTx(tx Transaction) {
	defer func() { f.hashValid = false }()

	target := tx.FullHash()
	for i, t := range f.transactions {
		if t.FullHash() == target {
			f.transactions = append(f.transactions[:i], f.transactions[i+1:]...)
			return
		}
	}
}

// SortForHash reorders transactions ascending by FullHash, producing the
// set's canonical order. Invalidates hashValid.
func (f *Frame) SortForHash() {
	sort.Slice(f.transactions, func(i, j int) bool {
		return f.transactions[i].FullHash().Less(f.transactions[j].FullHash())
	})
	f.hashValid = false
}

// isCanonical reports whether transactions is currently sorted strictly
// ascending by FullHash.
func (f *Frame) isCanonical() bool {
	for i := 1; i < len(f.transactions); i++ {
		if !f.transactions[i-1].FullHash().Less(f.transactions[i].FullHash()) {
			return false
		}
	}
	return true
}

// ContentsHash returns this set's content hash, computing and caching it if
// necessary. On a cache miss SortForHash always runs first to guarantee a
// stable, canonical hash input; the cache is only valid while the set is
// still in that order.
func (f *Frame) ContentsHash() Hash {
	if f.hashValid {
		return f.hashCache
	}

	f.SortForHash()

	h := sha256.New()
	h.Write(f.previousLedgerHash[:])
	for _, tx := range f.transactions {
		h.Write(tx.Envelope())
	}

	var sum Hash
	copy(sum[:], h.Sum(nil))

	f.hashCache = sum
	f.hashValid = true
	return f.hashCache
}
