package txset

import (
	"testing"

	"github.com/catena-ledger/txsetd/internal/core/consensus"
)

func TestConsensusAdapterIDMatchesContentsHash(t *testing.T) {
	f := NewFrame(ZeroHash)
	f.Add(NewBaseTransaction(AccountID{1}, 1, 10, []byte("a")))
	a := NewConsensusAdapter(f, 0, fakeFactory{})

	if consensus.TxSetID(f.ContentsHash()) != a.ID() {
		t.Fatalf("adapter ID does not match wrapped frame's contents hash")
	}
}

func TestConsensusAdapterAddAndContains(t *testing.T) {
	f := NewFrame(ZeroHash)
	a := NewConsensusAdapter(f, 0, fakeFactory{})

	if err := a.Add([]byte("envelope")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if a.Size() != 1 {
		t.Fatalf("want size 1, got %d", a.Size())
	}

	tx := f.Transactions()[0]
	if !a.Contains(consensus.TxID(tx.FullHash())) {
		t.Fatalf("adapter should report the added transaction as contained")
	}
}

func TestConsensusAdapterRemove(t *testing.T) {
	f := NewFrame(ZeroHash)
	tx := NewBaseTransaction(AccountID{1}, 1, 10, []byte("a"))
	f.Add(tx)
	a := NewConsensusAdapter(f, 0, fakeFactory{})

	if err := a.Remove(consensus.TxID(tx.FullHash())); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if a.Size() != 0 {
		t.Fatalf("want size 0 after remove, got %d", a.Size())
	}
}

func TestConsensusAdapterTxsReturnsEnvelopes(t *testing.T) {
	f := NewFrame(ZeroHash)
	f.Add(NewBaseTransaction(AccountID{1}, 1, 10, []byte("alpha")))
	a := NewConsensusAdapter(f, 0, fakeFactory{})

	txs := a.Txs()
	if len(txs) != 1 || string(txs[0]) != "alpha" {
		t.Fatalf("want [\"alpha\"], got %v", txs)
	}
}

var _ consensus.TxSet = (*ConsensusAdapter)(nil)
