package txset

import (
	"github.com/catena-ledger/txsetd/internal/core/ledger/header"
	"github.com/catena-ledger/txsetd/internal/core/protocol"
	crypto "github.com/catena-ledger/txsetd/internal/crypto/common"
)

// BaseTransaction is the concrete Transaction implementation used by tests
// and by the pool package. A real node would instead derive Transaction
// from a decoded protocol object; this type holds only the fields the
// TxSet's own logic (canonicalization, apply order, surge pricing,
// validation) ever reads.
type BaseTransaction struct {
	Source   AccountID
	Seq      SequenceNumber
	FeeDrops int64
	Wire     []byte

	// Whitelisted marks this transaction's source account as
	// whitelist-eligible for the duration of the surge filter pass.
	Whitelisted bool

	// Valid lets tests control the outcome of CheckValid independently of
	// seqNum bookkeeping (e.g. simulating a signature failure).
	Valid bool

	// hash caches FullHash once computed.
	hash    Hash
	hashSet bool
}

// NewBaseTransaction builds a BaseTransaction and derives its full hash
// using the same domain-separated hashing idiom this module's ledger layer
// uses for transaction IDs: HashPrefixTransactionID prefixed onto the
// envelope, then SHA-512/half.
func NewBaseTransaction(source AccountID, seq SequenceNumber, fee int64, wire []byte) *BaseTransaction {
	t := &BaseTransaction{
		Source:   source,
		Seq:      seq,
		FeeDrops: fee,
		Wire:     wire,
		Valid:    true,
	}
	t.FullHash()
	return t
}

func (t *BaseTransaction) SourceID() AccountID { return t.Source }

func (t *BaseTransaction) SeqNum() SequenceNumber { return t.Seq }

func (t *BaseTransaction) Fee() int64 { return t.FeeDrops }

// FullHash computes (and memoizes) this transaction's unique identity:
// Sha512Half(HashPrefixTransactionID || envelope), truncated into the
// 32-byte Hash this package's canonicalization logic sorts by. This is
// distinct from, and independent of, the TxSet's own SHA-256 content hash.
func (t *BaseTransaction) FullHash() Hash {
	if t.hashSet {
		return t.hash
	}
	buf := make([]byte, 0, 4+len(t.Wire))
	buf = append(buf, protocol.HashPrefixTransactionID.Bytes()...)
	buf = append(buf, t.Wire...)
	t.hash = Hash(crypto.Sha512Half(buf))
	t.hashSet = true
	return t.hash
}

func (t *BaseTransaction) Envelope() []byte { return t.Wire }

// FeeRatio reports this transaction's fee level against the target
// ledger's base fee, via feelevel.go's overflow-safe arithmetic.
func (t *BaseTransaction) FeeRatio(lm header.LedgerManager) float64 {
	h := lm.LastClosedLedgerHeader()
	baseFee := h.Drops
	if baseFee == 0 {
		baseFee = 10 // fallback base fee in drops, matches network default
	}
	drops := t.FeeDrops
	if drops < 0 {
		drops = 0
	}
	return float64(ToFeeLevel(uint64(drops), baseFee))
}

func (t *BaseTransaction) IsWhitelisted(ctx ApplicationContext) bool {
	return t.Whitelisted
}

// CheckValid verifies sequence continuity and this transaction's own
// validity flag. A real implementation would also verify signatures and
// authorization here; those are external collaborator concerns per this
// module's scope.
func (t *BaseTransaction) CheckValid(ctx ApplicationContext, lastSeq SequenceNumber) bool {
	if !t.Valid {
		return false
	}
	return t.Seq == lastSeq+1
}

var _ Transaction = (*BaseTransaction)(nil)
