package pool

import (
	"github.com/catena-ledger/txsetd/internal/core/txset"
)

// Candidate wraps a pending transaction with the bookkeeping the pool needs
// to rank it: its fee level and a retry budget. RetriesRemaining starts at
// Config.RetriesAllowed; nothing in this package decrements it or drops a
// candidate because of it.
type Candidate struct {
	Tx               txset.Transaction
	FeeLevel         uint64
	RetriesRemaining int
}

// AccountQueue tracks queued candidates for a single account, keyed by
// sequence number so a duplicate sequence number is found in O(1). Gaps in
// the sequence are not detected.
type AccountQueue struct {
	Account     txset.AccountID
	Candidates  map[txset.SequenceNumber]*Candidate
	DropPenalty bool
}

// NewAccountQueue creates an empty AccountQueue for account.
func NewAccountQueue(account txset.AccountID) *AccountQueue {
	return &AccountQueue{
		Account:    account,
		Candidates: make(map[txset.SequenceNumber]*Candidate),
	}
}

// Add inserts or replaces the candidate at its sequence number.
func (aq *AccountQueue) Add(c *Candidate) {
	aq.Candidates[c.Tx.SeqNum()] = c
}

// Remove deletes the candidate at seq, reporting whether one existed.
func (aq *AccountQueue) Remove(seq txset.SequenceNumber) bool {
	if _, ok := aq.Candidates[seq]; ok {
		delete(aq.Candidates, seq)
		return true
	}
	return false
}

// Count returns the number of candidates queued for this account.
func (aq *AccountQueue) Count() int {
	return len(aq.Candidates)
}

// Empty reports whether this account has no queued candidates.
func (aq *AccountQueue) Empty() bool {
	return len(aq.Candidates) == 0
}

// Sorted returns this account's candidates ordered ascending by sequence
// number, the order sortForApply and the validation engine both require.
func (aq *AccountQueue) Sorted() []*Candidate {
	result := make([]*Candidate, 0, len(aq.Candidates))
	for _, c := range aq.Candidates {
		result = append(result, c)
	}
	for i := 0; i < len(result)-1; i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].Tx.SeqNum() < result[i].Tx.SeqNum() {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result
}
