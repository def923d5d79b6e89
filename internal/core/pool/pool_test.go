package pool

import (
	"testing"

	"github.com/catena-ledger/txsetd/internal/config"
	"github.com/catena-ledger/txsetd/internal/core/ledger/header"
	"github.com/catena-ledger/txsetd/internal/core/txset"
)

func TestFromTransactionQueueConfigMapsFields(t *testing.T) {
	tq := &config.TransactionQueueConfig{
		LedgersInQueue:       5,
		MinimumQueueSize:     100,
		MaximumTxnPerAccount: 3,
	}
	got := FromTransactionQueueConfig(tq)
	want := Config{SizeMin: 100, LedgersInPool: 5, MaxPerAccount: 3, RetriesAllowed: DefaultConfig().RetriesAllowed}
	if got != want {
		t.Fatalf("FromTransactionQueueConfig(%+v) = %+v, want %+v", tq, got, want)
	}
}

func TestFromTransactionQueueConfigAppliesDefaultsForZeroFields(t *testing.T) {
	got := FromTransactionQueueConfig(&config.TransactionQueueConfig{})
	if got != DefaultConfig() {
		t.Fatalf("an all-zero section should resolve to DefaultConfig, got %+v", got)
	}
}

func TestFromTransactionQueueConfigNilFallsBackToDefault(t *testing.T) {
	if got := FromTransactionQueueConfig(nil); got != DefaultConfig() {
		t.Fatalf("nil section should resolve to DefaultConfig, got %+v", got)
	}
}

func tx(source txset.AccountID, seq txset.SequenceNumber, fee int64) *txset.BaseTransaction {
	return txset.NewBaseTransaction(source, seq, fee, []byte{byte(seq), source[0]})
}

func TestPoolAddAndSize(t *testing.T) {
	p := New(DefaultConfig())
	if !p.Add(tx(txset.AccountID{1}, 1, 10), 256) {
		t.Fatalf("want admission to succeed")
	}
	if p.Size() != 1 {
		t.Fatalf("want size 1, got %d", p.Size())
	}
}

func TestPoolEnforcesMaxPerAccount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPerAccount = 1
	p := New(cfg)

	if !p.Add(tx(txset.AccountID{1}, 1, 10), 256) {
		t.Fatalf("first admission should succeed")
	}
	if p.Add(tx(txset.AccountID{1}, 2, 10), 256) {
		t.Fatalf("second admission should be rejected once MaxPerAccount is reached")
	}
	if p.Size() != 1 {
		t.Fatalf("want size 1, got %d", p.Size())
	}
}

func TestPoolRemoveThenReAdmitRequiresHigherFee(t *testing.T) {
	p := New(DefaultConfig())
	t1 := tx(txset.AccountID{1}, 1, 10)
	p.Add(t1, 256)
	p.Remove(t1.FullHash())

	if p.Add(t1, 256) {
		t.Fatalf("re-admitting a dropped transaction at the same fee level should be rejected")
	}
	if !p.Add(t1, 512) {
		t.Fatalf("re-admitting a dropped transaction at a higher fee level should succeed")
	}
}

func TestPoolCandidatesOrderedByFeeLevelDescending(t *testing.T) {
	p := New(DefaultConfig())
	p.Add(tx(txset.AccountID{1}, 1, 10), 100)
	p.Add(tx(txset.AccountID{2}, 1, 10), 500)
	p.Add(tx(txset.AccountID{3}, 1, 10), 250)

	candidates := p.Candidates()
	if len(candidates) != 3 {
		t.Fatalf("want 3 candidates, got %d", len(candidates))
	}
	if candidates[0].SourceID() != (txset.AccountID{2}) {
		t.Fatalf("want highest fee level first, got %v", candidates[0].SourceID())
	}
	if candidates[2].SourceID() != (txset.AccountID{1}) {
		t.Fatalf("want lowest fee level last, got %v", candidates[2].SourceID())
	}
}

func TestPoolBuildFrameBindsToLastClosedLedger(t *testing.T) {
	p := New(DefaultConfig())
	p.Add(tx(txset.AccountID{1}, 1, 10), 256)
	p.Add(tx(txset.AccountID{2}, 1, 10), 256)

	var parent [32]byte
	parent[0] = 0x42
	lm := header.StaticLedgerManager{Header: header.LedgerHeader{Hash: parent}}

	frame := p.BuildFrame(lm)
	if frame.PreviousLedgerHash() != txset.Hash(parent) {
		t.Fatalf("frame should be parented to the ledger manager's last closed hash")
	}
	if frame.Size() != 2 {
		t.Fatalf("want 2 transactions in built frame, got %d", frame.Size())
	}
}
