package cli

import (
	"encoding/hex"
	"fmt"
	"os"

	"encoding/json"

	"github.com/catena-ledger/txsetd/internal/core/XRPAmount"
	"github.com/catena-ledger/txsetd/internal/core/ledger/header"
	"github.com/catena-ledger/txsetd/internal/core/txset"
)

func xrpAmount(drops int64) XRPAmount.XRPAmount {
	return XRPAmount.NewXRPAmount(drops)
}

// txsetFixture is the JSON shape accepted by validate/surge/trim/hash: a
// self-contained description of a candidate TxSet plus the ledger and
// account state it is checked against. Real deployments build a Frame from
// a live LedgerManager/ApplicationContext instead; this fixture format
// exists so the CLI can exercise the full TxSetFrame pipeline without a
// running node.
type txsetFixture struct {
	PreviousLedgerHash string                `json:"previous_ledger_hash"`
	Ledger             fixtureLedger         `json:"ledger"`
	Whitelist          *fixtureWhitelist     `json:"whitelist,omitempty"`
	Transactions       []fixtureTransaction  `json:"transactions"`
	Accounts           map[string]fixtureAcc `json:"accounts,omitempty"`
}

type fixtureLedger struct {
	Hash          string `json:"hash"`
	MaxTxSetSize  uint32 `json:"max_tx_set_size"`
	BaseFeeDrops  uint64 `json:"base_fee_drops"`
	LedgerIndex   uint32 `json:"ledger_index"`
}

type fixtureWhitelist struct {
	Reserve int    `json:"reserve"`
	Holder  string `json:"holder,omitempty"`
}

type fixtureTransaction struct {
	Source      string `json:"source"`
	Seq         uint64 `json:"seq"`
	Fee         int64  `json:"fee"`
	Envelope    string `json:"envelope"`
	Whitelisted bool   `json:"whitelisted,omitempty"`
	Valid       bool   `json:"valid"`
}

type fixtureAcc struct {
	Balance        int64 `json:"balance"`
	MinimumBalance int64 `json:"minimum_balance"`
}

func loadFixture(path string) (*txsetFixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f txsetFixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &f, nil
}

func parseHash(s string) (txset.Hash, error) {
	var h txset.Hash
	if s == "" {
		return h, nil
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	if len(raw) != len(h) {
		return h, fmt.Errorf("hash %q: want %d bytes, got %d", s, len(h), len(raw))
	}
	copy(h[:], raw)
	return h, nil
}

func parseAccountID(s string) (txset.AccountID, error) {
	var a txset.AccountID
	if s == "" {
		return a, nil
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("invalid account id %q: %w", s, err)
	}
	if len(raw) != len(a) {
		return a, fmt.Errorf("account id %q: want %d bytes, got %d", s, len(a), len(raw))
	}
	copy(a[:], raw)
	return a, nil
}

// buildFrame materializes a *txset.Frame and a StaticApplicationContext from
// a parsed fixture, ready to drive SurgePricingFilter/TrimInvalid/CheckValid.
func buildFrame(f *txsetFixture) (*txset.Frame, *txset.StaticApplicationContext, error) {
	parent, err := parseHash(f.PreviousLedgerHash)
	if err != nil {
		return nil, nil, err
	}
	frame := txset.NewFrame(parent)

	for i, ftx := range f.Transactions {
		source, err := parseAccountID(ftx.Source)
		if err != nil {
			return nil, nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		envelope, err := hex.DecodeString(ftx.Envelope)
		if err != nil {
			return nil, nil, fmt.Errorf("transaction %d: invalid envelope: %w", i, err)
		}
		tx := txset.NewBaseTransaction(source, txset.SequenceNumber(ftx.Seq), ftx.Fee, envelope)
		tx.Whitelisted = ftx.Whitelisted
		tx.Valid = ftx.Valid
		frame.Add(tx)
	}

	ledgerHash, err := parseHash(f.Ledger.Hash)
	if err != nil {
		return nil, nil, err
	}

	accounts := make(map[txset.AccountID]txset.AccountState, len(f.Accounts))
	for key, acc := range f.Accounts {
		id, err := parseAccountID(key)
		if err != nil {
			return nil, nil, fmt.Errorf("account %q: %w", key, err)
		}
		accounts[id] = txset.AccountState{
			Balance:        xrpAmount(acc.Balance),
			MinimumBalance: xrpAmount(acc.MinimumBalance),
		}
	}

	var wl txset.Whitelist
	if f.Whitelist != nil {
		holder, err := parseAccountID(f.Whitelist.Holder)
		if err != nil {
			return nil, nil, err
		}
		wl = txset.StaticWhitelist{
			Reserve:   f.Whitelist.Reserve,
			Holder:    holder,
			HasHolder: f.Whitelist.Holder != "",
		}
	}

	app := &txset.StaticApplicationContext{
		WhitelistValue: wl,
		LedgerMgr: header.StaticLedgerManager{
			Header: header.LedgerHeader{
				LedgerIndex:  f.Ledger.LedgerIndex,
				Hash:         [32]byte(ledgerHash),
				Drops:        f.Ledger.BaseFeeDrops,
				MaxTxSetSize: f.Ledger.MaxTxSetSize,
			},
		},
		Accounts: accounts,
	}

	return frame, app, nil
}
