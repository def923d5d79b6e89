package txset

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/catena-ledger/txsetd/internal/storage/keyValueDb"
)

func TestStaticWhitelistReserveCappedByMax(t *testing.T) {
	w := StaticWhitelist{Reserve: 100}
	if got := w.UnwhitelistedReserve(10); got != 10 {
		t.Fatalf("reserve should be capped at max: want 10, got %d", got)
	}
	if got := w.UnwhitelistedReserve(1000); got != 100 {
		t.Fatalf("reserve under max should pass through unchanged: want 100, got %d", got)
	}
}

func TestStaticWhitelistAccountID(t *testing.T) {
	w := StaticWhitelist{}
	if _, ok := w.AccountID(); ok {
		t.Fatalf("want no holder configured")
	}

	holder := AccountID{7}
	w = StaticWhitelist{Holder: holder, HasHolder: true}
	got, ok := w.AccountID()
	if !ok || got != holder {
		t.Fatalf("want holder %v, got %v (ok=%v)", holder, got, ok)
	}
}

func TestPebbleDatabaseReadsSeededBalances(t *testing.T) {
	db, err := keyValueDb.OpenPebble(keyValueDb.DefaultPebbleOptions(t.TempDir()))
	if err != nil {
		t.Fatalf("OpenPebble: %v", err)
	}
	defer db.Close()

	account := AccountID{3}
	balance := make([]byte, 8)
	binary.BigEndian.PutUint64(balance, 5000)
	if err := db.Write(context.Background(), balanceKey(account), balance); err != nil {
		t.Fatalf("seed balance: %v", err)
	}

	pdb := PebbleDatabase{DB: db}
	scope, err := pdb.ReadOnlyScope(context.Background())
	if err != nil {
		t.Fatalf("ReadOnlyScope: %v", err)
	}
	defer scope.Close()

	got, err := scope.Balance(context.Background(), account)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if got.Drops() != 5000 {
		t.Fatalf("want balance 5000, got %d", got.Drops())
	}

	min, err := scope.MinimumBalance(context.Background(), AccountID{9})
	if err != nil {
		t.Fatalf("MinimumBalance: %v", err)
	}
	if min.Drops() != 0 {
		t.Fatalf("want zero minimum balance for unseeded account, got %d", min.Drops())
	}
}

func TestStaticScopeErrorsAfterClose(t *testing.T) {
	app := &StaticApplicationContext{
		Accounts: map[AccountID]AccountState{},
	}
	scope, err := app.ReadOnlyScope(context.Background())
	if err != nil {
		t.Fatalf("ReadOnlyScope: %v", err)
	}
	if err := scope.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := scope.Balance(context.Background(), AccountID{1}); err != ErrScopeClosed {
		t.Fatalf("want ErrScopeClosed after close, got %v", err)
	}
}
