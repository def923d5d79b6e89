package txset

import (
	"testing"

	"github.com/catena-ledger/txsetd/internal/core/amendment"
	"github.com/catena-ledger/txsetd/internal/core/ledger/header"
)

func amendmentRulesWithSurgeWhitelist() *amendment.Rules {
	return amendment.NewRules([][32]byte{RulesFeatureSurgeWhitelist})
}

func feeTx(source AccountID, seq SequenceNumber, fee int64, fullHash byte) *BaseTransaction {
	return txWithHash(source, seq, fee, fullHash, []byte{fullHash})
}

func TestSurgePricingFilterNoOpWhenWithinCapacity(t *testing.T) {
	f := NewFrame(ZeroHash)
	f.Add(feeTx(AccountID{1}, 1, 10, 0xAA))
	f.Add(feeTx(AccountID{2}, 1, 10, 0x55))

	lm := header.StaticLedgerManager{Header: header.LedgerHeader{Drops: 10, MaxTxSetSize: 10}}
	app := &StaticApplicationContext{LedgerMgr: lm}

	f.SurgePricingFilter(lm, app)
	if f.Size() != 2 {
		t.Fatalf("want no transactions removed when under capacity, got size %d", f.Size())
	}
}

func TestSurgePricingFilterKeepsHigherFeeRatio(t *testing.T) {
	f := NewFrame(ZeroHash)
	f.Add(feeTx(AccountID{1}, 1, 100, 0xAA)) // high fee
	f.Add(feeTx(AccountID{2}, 1, 10, 0x55))  // low fee

	lm := header.StaticLedgerManager{Header: header.LedgerHeader{Drops: 10, MaxTxSetSize: 1}}
	app := &StaticApplicationContext{LedgerMgr: lm}

	f.SurgePricingFilter(lm, app)
	if f.Size() != 1 {
		t.Fatalf("want 1 transaction remaining, got %d", f.Size())
	}
	if f.Transactions()[0].SourceID() != (AccountID{1}) {
		t.Fatalf("want the higher fee-ratio account retained, got %v", f.Transactions()[0].SourceID())
	}
}

func TestSurgePricingFilterWhitelistHolderAbsolutePriority(t *testing.T) {
	f := NewFrame(ZeroHash)
	holder := AccountID{9}
	holderTx := feeTx(holder, 1, 1, 0xAA) // low fee but whitelist holder
	holderTx.Whitelisted = true
	other := feeTx(AccountID{2}, 1, 1000, 0x55) // high fee, not whitelisted
	f.Add(holderTx)
	f.Add(other)

	lm := header.StaticLedgerManager{Header: header.LedgerHeader{Drops: 10, MaxTxSetSize: 1}}
	app := &StaticApplicationContext{
		LedgerMgr:      lm,
		WhitelistValue: StaticWhitelist{Reserve: 0, Holder: holder, HasHolder: true},
		RulesValue:     amendmentRulesWithSurgeWhitelist(),
	}

	f.SurgePricingFilter(lm, app)
	if f.Size() != 1 {
		t.Fatalf("want 1 transaction remaining, got %d", f.Size())
	}
	if f.Transactions()[0].SourceID() != holder {
		t.Fatalf("want whitelist holder retained regardless of fee, got %v", f.Transactions()[0].SourceID())
	}
}
