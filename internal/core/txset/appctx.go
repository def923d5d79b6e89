package txset

import (
	"context"
	"encoding/binary"

	"github.com/catena-ledger/txsetd/internal/core/XRPAmount"
	"github.com/catena-ledger/txsetd/internal/core/amendment"
	"github.com/catena-ledger/txsetd/internal/core/ledger/header"
	"github.com/catena-ledger/txsetd/internal/storage/keyValueDb"
)

// RulesFeatureSurgeWhitelist gates the whitelist step of SurgePricingFilter
// behind an amendment-style feature flag, the same mechanism this module's
// ledger layer uses to gate other behavior changes. Disabled, every
// transaction is treated as unwhitelisted regardless of what Whitelist
// reports — a conservative fallback matching pre-whitelist behavior.
var RulesFeatureSurgeWhitelist = amendment.FeatureID("SurgePricingWhitelist")

// StaticWhitelist is a fixed-value Whitelist, useful for tests and for
// deployments that configure their whitelist at startup rather than
// deriving it from live validator state.
type StaticWhitelist struct {
	Reserve   int
	Holder    AccountID
	HasHolder bool
}

func (w StaticWhitelist) UnwhitelistedReserve(max int) int {
	if w.Reserve > max {
		return max
	}
	return w.Reserve
}

func (w StaticWhitelist) AccountID() (AccountID, bool) {
	return w.Holder, w.HasHolder
}

var _ Whitelist = StaticWhitelist{}

// kvAccountScope is the ReadScope PebbleDatabase hands out, backed by a keyValueDb
// read-only snapshot. Account balances and reserves are stored under
// "bal/"+account and "res/"+account as big-endian uint64 drop counts.
type kvAccountScope struct {
	snap *keyValueDb.PebbleSnapshot
}

// PebbleDatabase adapts a keyValueDb.PebbleDB into this package's Database
// collaborator, handing out snapshot-backed read scopes.
type PebbleDatabase struct {
	DB *keyValueDb.PebbleDB
}

func (d PebbleDatabase) ReadOnlyScope(ctx context.Context) (ReadScope, error) {
	snap, err := d.DB.Snapshot()
	if err != nil {
		return nil, err
	}
	return &kvAccountScope{snap: snap}, nil
}

func balanceKey(account AccountID) []byte {
	key := make([]byte, 0, 4+20)
	key = append(key, []byte("bal/")...)
	key = append(key, account[:]...)
	return key
}

func reserveKey(account AccountID) []byte {
	key := make([]byte, 0, 4+20)
	key = append(key, []byte("res/")...)
	key = append(key, account[:]...)
	return key
}

func (s *kvAccountScope) Balance(ctx context.Context, account AccountID) (XRPAmount.XRPAmount, error) {
	raw, err := s.snap.Read(ctx, balanceKey(account))
	if err != nil {
		if err == keyValueDb.ErrKeyNotFound {
			return 0, nil
		}
		return 0, err
	}
	return XRPAmount.XRPAmount(int64(binary.BigEndian.Uint64(raw))), nil
}

func (s *kvAccountScope) MinimumBalance(ctx context.Context, account AccountID) (XRPAmount.XRPAmount, error) {
	raw, err := s.snap.Read(ctx, reserveKey(account))
	if err != nil {
		if err == keyValueDb.ErrKeyNotFound {
			return 0, nil
		}
		return 0, err
	}
	return XRPAmount.XRPAmount(int64(binary.BigEndian.Uint64(raw))), nil
}

func (s *kvAccountScope) Close() error {
	if s.snap == nil {
		return nil
	}
	err := s.snap.Close()
	s.snap = nil
	return err
}

var _ Database = PebbleDatabase{}
var _ ReadScope = (*kvAccountScope)(nil)

// StaticApplicationContext is an in-memory ApplicationContext for tests: a
// fixed whitelist, ledger manager, rule set, and an in-memory account
// ledger rather than a pebble-backed one.
type StaticApplicationContext struct {
	WhitelistValue Whitelist
	LedgerMgr      header.LedgerManager
	RulesValue     *amendment.Rules
	Accounts       map[AccountID]AccountState
}

// AccountState is the minimal per-account data checkOrTrim reads.
type AccountState struct {
	Balance        XRPAmount.XRPAmount
	MinimumBalance XRPAmount.XRPAmount
}

func (a *StaticApplicationContext) Whitelist() Whitelist                { return a.WhitelistValue }
func (a *StaticApplicationContext) LedgerManager() header.LedgerManager { return a.LedgerMgr }
func (a *StaticApplicationContext) Rules() *amendment.Rules             { return a.RulesValue }
func (a *StaticApplicationContext) Database() Database                 { return a }

func (a *StaticApplicationContext) ReadOnlyScope(ctx context.Context) (ReadScope, error) {
	return &staticScope{accounts: a.Accounts}, nil
}

type staticScope struct {
	accounts map[AccountID]AccountState
	closed   bool
}

func (s *staticScope) Balance(ctx context.Context, account AccountID) (XRPAmount.XRPAmount, error) {
	if s.closed {
		return 0, ErrScopeClosed
	}
	return s.accounts[account].Balance, nil
}

func (s *staticScope) MinimumBalance(ctx context.Context, account AccountID) (XRPAmount.XRPAmount, error) {
	if s.closed {
		return 0, ErrScopeClosed
	}
	return s.accounts[account].MinimumBalance, nil
}

func (s *staticScope) Close() error {
	s.closed = true
	return nil
}

var _ ApplicationContext = (*StaticApplicationContext)(nil)
