package txset

import (
	"context"

	"github.com/catena-ledger/txsetd/internal/core/XRPAmount"
	"github.com/catena-ledger/txsetd/internal/core/amendment"
	"github.com/catena-ledger/txsetd/internal/core/ledger/header"
)

// Transaction is the external collaborator a TxSetFrame operates over. A
// concrete implementation lives in transaction.go; tests may substitute
// fakes satisfying this interface directly.
type Transaction interface {
	// SourceID is the account that submitted this transaction.
	SourceID() AccountID

	// SeqNum is this transaction's sequence number within its source
	// account's history.
	SeqNum() SequenceNumber

	// Fee is the fee in drops this transaction pays.
	Fee() int64

	// FullHash is this transaction's unique byte identity, distinct from
	// the TxSet's own content hash.
	FullHash() Hash

	// Envelope is the canonical external wire encoding of this
	// transaction. contentsHash and toWire operate on this, never on any
	// in-memory representation.
	Envelope() []byte

	// FeeRatio normalizes this transaction's fee by its consumed
	// capacity, given the target ledger. Lower is worse.
	FeeRatio(lm header.LedgerManager) float64

	// IsWhitelisted reports whether this transaction's source account
	// currently holds whitelist priority.
	IsWhitelisted(ctx ApplicationContext) bool

	// CheckValid verifies this transaction's own validity rules,
	// including that SeqNum immediately follows lastSeq.
	CheckValid(ctx ApplicationContext, lastSeq SequenceNumber) bool
}

// ReadScope is a scoped, read-only view of account state, held for the
// duration of a single checkValid/trimInvalid pass. It must never permit
// writes and must be released on every exit path.
type ReadScope interface {
	// Balance returns the account's current spendable balance in drops.
	Balance(ctx context.Context, account AccountID) (XRPAmount.XRPAmount, error)

	// MinimumBalance returns the account's minimum required reserve,
	// below which it may not fall after fees are deducted.
	MinimumBalance(ctx context.Context, account AccountID) (XRPAmount.XRPAmount, error)

	// Close releases the scope. Safe to call more than once.
	Close() error
}

// Database is the storage collaborator that hands out read-only scopes.
type Database interface {
	ReadOnlyScope(ctx context.Context) (ReadScope, error)
}

// Whitelist grants priority inclusion to an authority-controlled allow-list
// of accounts, optionally naming a single holder account with absolute top
// priority.
type Whitelist interface {
	// UnwhitelistedReserve is the minimum capacity reserved for
	// non-whitelisted transactions out of a set bounded at max.
	UnwhitelistedReserve(max int) int

	// AccountID returns the whitelist-holder account, if one is
	// configured.
	AccountID() (AccountID, bool)
}

// ApplicationContext bundles the collaborators a TxSetFrame needs beyond the
// ledger manager: the whitelist oracle, storage access, and the feature
// flags gating optional behavior (see RulesFeatureSurgeWhitelist).
type ApplicationContext interface {
	Whitelist() Whitelist
	Database() Database
	LedgerManager() header.LedgerManager
	Rules() *amendment.Rules
}

// TransactionFactory reconstructs a Transaction from its wire envelope,
// parameterized by the network identifier (which participates in signature
// verification downstream, outside this package's scope).
type TransactionFactory interface {
	MakeFromWire(networkID uint32, envelope []byte) (Transaction, error)
}
