package txset

import (
	"context"
	"testing"

	"github.com/catena-ledger/txsetd/internal/core/XRPAmount"
	"github.com/catena-ledger/txsetd/internal/core/ledger/header"
)

func staticApp(accounts map[AccountID]AccountState, ledgerHash Hash, maxSize uint32) *StaticApplicationContext {
	return &StaticApplicationContext{
		LedgerMgr: header.StaticLedgerManager{
			Header: header.LedgerHeader{
				Hash:         [32]byte(ledgerHash),
				MaxTxSetSize: maxSize,
			},
		},
		Accounts: accounts,
	}
}

func TestCheckValidAcceptsWellFormedSet(t *testing.T) {
	parent := hashFromByte(0x01)
	f := NewFrame(parent)
	f.Add(NewBaseTransaction(AccountID{1}, 1, 10, []byte("a")))
	f.Add(NewBaseTransaction(AccountID{1}, 2, 10, []byte("b")))

	app := staticApp(map[AccountID]AccountState{
		{1}: {Balance: XRPAmount.NewXRPAmount(1000), MinimumBalance: XRPAmount.NewXRPAmount(0)},
	}, parent, 10)

	f.SortForHash()
	ok, err := f.CheckValid(context.Background(), app)
	if err != nil {
		t.Fatalf("CheckValid: %v", err)
	}
	if !ok {
		t.Fatalf("want valid set, got rejected")
	}
}

func TestCheckValidRejectsWrongParent(t *testing.T) {
	f := NewFrame(hashFromByte(0x01))
	f.Add(NewBaseTransaction(AccountID{1}, 1, 10, []byte("a")))

	app := staticApp(map[AccountID]AccountState{
		{1}: {Balance: XRPAmount.NewXRPAmount(1000)},
	}, hashFromByte(0x02), 10)

	ok, err := f.CheckValid(context.Background(), app)
	if err != nil {
		t.Fatalf("CheckValid: %v", err)
	}
	if ok {
		t.Fatalf("want rejected for mismatched parent, got accepted")
	}
}

func TestCheckValidRejectsTooLarge(t *testing.T) {
	parent := hashFromByte(0x01)
	f := NewFrame(parent)
	f.Add(NewBaseTransaction(AccountID{1}, 1, 10, []byte("a")))
	f.Add(NewBaseTransaction(AccountID{2}, 1, 10, []byte("b")))

	app := staticApp(map[AccountID]AccountState{
		{1}: {Balance: XRPAmount.NewXRPAmount(1000)},
		{2}: {Balance: XRPAmount.NewXRPAmount(1000)},
	}, parent, 1)

	ok, err := f.CheckValid(context.Background(), app)
	if err != nil {
		t.Fatalf("CheckValid: %v", err)
	}
	if ok {
		t.Fatalf("want rejected for exceeding max set size, got accepted")
	}
}

func TestCheckValidRejectsSequenceGap(t *testing.T) {
	parent := hashFromByte(0x01)
	f := NewFrame(parent)
	f.Add(NewBaseTransaction(AccountID{1}, 1, 10, []byte("a")))
	f.Add(NewBaseTransaction(AccountID{1}, 3, 10, []byte("b")))

	app := staticApp(map[AccountID]AccountState{
		{1}: {Balance: XRPAmount.NewXRPAmount(1000)},
	}, parent, 10)

	f.SortForHash()
	ok, err := f.CheckValid(context.Background(), app)
	if err != nil {
		t.Fatalf("CheckValid: %v", err)
	}
	if ok {
		t.Fatalf("want rejected for sequence gap, got accepted")
	}
}

func TestCheckValidRejectsInsufficientBalance(t *testing.T) {
	parent := hashFromByte(0x01)
	f := NewFrame(parent)
	f.Add(NewBaseTransaction(AccountID{1}, 1, 900, []byte("a")))

	app := staticApp(map[AccountID]AccountState{
		{1}: {Balance: XRPAmount.NewXRPAmount(1000), MinimumBalance: XRPAmount.NewXRPAmount(200)},
	}, parent, 10)

	f.SortForHash()
	ok, err := f.CheckValid(context.Background(), app)
	if err != nil {
		t.Fatalf("CheckValid: %v", err)
	}
	if ok {
		t.Fatalf("want rejected for insufficient balance, got accepted")
	}
}

func TestTrimInvalidRemovesBadSignature(t *testing.T) {
	parent := hashFromByte(0x01)
	f := NewFrame(parent)
	good := NewBaseTransaction(AccountID{1}, 1, 10, []byte("a"))
	bad := NewBaseTransaction(AccountID{2}, 1, 10, []byte("b"))
	bad.Valid = false
	f.Add(good)
	f.Add(bad)

	app := staticApp(map[AccountID]AccountState{
		{1}: {Balance: XRPAmount.NewXRPAmount(1000)},
		{2}: {Balance: XRPAmount.NewXRPAmount(1000)},
	}, parent, 10)

	trimmed, err := f.TrimInvalid(context.Background(), app)
	if err != nil {
		t.Fatalf("TrimInvalid: %v", err)
	}
	if len(trimmed) != 1 || trimmed[0].FullHash() != bad.FullHash() {
		t.Fatalf("want only the invalid transaction trimmed, got %d trimmed", len(trimmed))
	}
	if f.Size() != 1 {
		t.Fatalf("want 1 transaction remaining, got %d", f.Size())
	}
}

func TestTrimInvalidRemovesWholeInsolventAccount(t *testing.T) {
	parent := hashFromByte(0x01)
	f := NewFrame(parent)
	f.Add(NewBaseTransaction(AccountID{1}, 1, 500, []byte("a")))
	f.Add(NewBaseTransaction(AccountID{1}, 2, 500, []byte("b")))

	app := staticApp(map[AccountID]AccountState{
		{1}: {Balance: XRPAmount.NewXRPAmount(900), MinimumBalance: XRPAmount.NewXRPAmount(0)},
	}, parent, 10)

	trimmed, err := f.TrimInvalid(context.Background(), app)
	if err != nil {
		t.Fatalf("TrimInvalid: %v", err)
	}
	if len(trimmed) != 2 {
		t.Fatalf("want both transactions trimmed for an insolvent account, got %d", len(trimmed))
	}
	if f.Size() != 0 {
		t.Fatalf("want 0 transactions remaining, got %d", f.Size())
	}
}
