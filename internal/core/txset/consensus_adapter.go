package txset

import (
	"github.com/catena-ledger/txsetd/internal/core/consensus"
)

// ConsensusAdapter wraps a Frame so it satisfies consensus.TxSet, letting a
// consensus Engine/Adaptor pair drive a Frame through its round without
// depending on this package's richer API directly.
type ConsensusAdapter struct {
	frame     *Frame
	networkID uint32
	factory   TransactionFactory
}

// NewConsensusAdapter wraps frame for use as a consensus.TxSet. factory is
// used to materialize transactions handed to Add as raw envelope bytes.
func NewConsensusAdapter(frame *Frame, networkID uint32, factory TransactionFactory) *ConsensusAdapter {
	return &ConsensusAdapter{frame: frame, networkID: networkID, factory: factory}
}

// Frame returns the wrapped Frame for callers that need the richer API.
func (a *ConsensusAdapter) Frame() *Frame { return a.frame }

// ID returns the set's content hash as a consensus.TxSetID.
func (a *ConsensusAdapter) ID() consensus.TxSetID {
	return consensus.TxSetID(a.frame.ContentsHash())
}

// Txs returns the wire envelopes in the set's current order; it does not
// sort the set first.
func (a *ConsensusAdapter) Txs() [][]byte {
	ws, _ := a.frame.ToWire()
	return ws.Envelopes
}

// Contains reports whether a transaction with the given full hash is held.
func (a *ConsensusAdapter) Contains(id consensus.TxID) bool {
	for _, tx := range a.frame.Transactions() {
		if tx.FullHash() == Hash(id) {
			return true
		}
	}
	return false
}

// Add decodes a raw envelope via the configured factory and appends it.
func (a *ConsensusAdapter) Add(tx []byte) error {
	decoded, err := a.factory.MakeFromWire(a.networkID, tx)
	if err != nil {
		return err
	}
	a.frame.Add(decoded)
	return nil
}

// Remove removes the transaction with the given full hash, if present.
func (a *ConsensusAdapter) Remove(id consensus.TxID) error {
	for _, tx := range a.frame.Transactions() {
		if tx.FullHash() == Hash(id) {
			a.frame.RemoveTx(tx)
			return nil
		}
	}
	return nil
}

// Size returns the number of transactions held.
func (a *ConsensusAdapter) Size() int { return a.frame.Size() }

// Bytes returns the encoded wire form of the set's current order.
func (a *ConsensusAdapter) Bytes() []byte {
	ws, err := a.frame.ToWire()
	if err != nil {
		return nil
	}
	encoded, err := EncodeWire(ws)
	if err != nil {
		return nil
	}
	return encoded
}

var _ consensus.TxSet = (*ConsensusAdapter)(nil)
