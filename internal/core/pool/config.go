// Package pool implements a minimal candidate transaction pool: the source
// a consensus round draws pending transactions from before constructing a
// txset.Frame for the next ledger close.
package pool

import "github.com/catena-ledger/txsetd/internal/config"

// Config holds tuning knobs for the pool's admission and retry behavior.
type Config struct {
	// SizeMin is the configured minimum pool capacity. Pool carries it but
	// does not bound its total size by it.
	SizeMin uint32

	// LedgersInPool is the configured number of ledgers' worth of
	// transactions the pool may hold. Pool carries it but does not bound
	// its total size by it.
	LedgersInPool uint32

	// MaxPerAccount is the maximum number of transactions that may be
	// queued for a single account at once.
	MaxPerAccount uint32

	// RetriesAllowed is the starting retry count for newly admitted
	// candidates.
	RetriesAllowed int
}

// DefaultConfig returns sensible defaults for a single-node deployment.
func DefaultConfig() Config {
	return Config{
		SizeMin:        2000,
		LedgersInPool:  20,
		MaxPerAccount:  10,
		RetriesAllowed: 10,
	}
}

// FromTransactionQueueConfig builds a Config from a loaded [transaction_queue]
// section: ledgers_in_queue, minimum_queue_size, and maximum_txn_per_account
// map field-for-field onto LedgersInPool, SizeMin, and MaxPerAccount via the
// section's own Getter methods, which already carry rippled-matching
// defaults for an unset (zero) field. RetriesAllowed has no corresponding
// [transaction_queue] key and keeps DefaultConfig's value.
func FromTransactionQueueConfig(tq *config.TransactionQueueConfig) Config {
	cfg := DefaultConfig()
	if tq == nil {
		return cfg
	}
	cfg.LedgersInPool = uint32(tq.GetLedgersInQueue())
	cfg.SizeMin = uint32(tq.GetMinimumQueueSize())
	cfg.MaxPerAccount = uint32(tq.GetMaximumTxnPerAccount())
	return cfg
}
