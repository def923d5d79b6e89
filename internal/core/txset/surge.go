package txset

import (
	"sort"

	"github.com/catena-ledger/txsetd/internal/core/ledger/header"
)

// SurgePricingFilter trims the set to the target ledger's capacity using
// fee-ratio ranking, granting whitelisted transactions priority and the
// whitelist holder (if any) absolute top priority. A no-op when the set
// already fits.
func (f *Frame) SurgePricingFilter(lm header.LedgerManager, app ApplicationContext) {
	max := int(lm.MaxTxSetSize())
	if len(f.transactions) <= max {
		return
	}

	whitelistEnabled := true
	if rules := app.Rules(); rules != nil {
		whitelistEnabled = rules.Enabled(RulesFeatureSurgeWhitelist)
	}

	wl := app.Whitelist()
	holder, hasHolder := AccountID{}, false
	if wl != nil && whitelistEnabled {
		holder, hasHolder = wl.AccountID()
	}

	var whitelisted, unwhitelisted []Transaction
	for _, tx := range f.transactions {
		if whitelistEnabled && tx.IsWhitelisted(app) {
			whitelisted = append(whitelisted, tx)
		} else {
			unwhitelisted = append(unwhitelisted, tx)
		}
	}

	reserve := 0
	if wl != nil && whitelistEnabled {
		reserve = wl.UnwhitelistedReserve(max)
	}
	if reserve > len(unwhitelisted) {
		reserve = len(unwhitelisted)
	}

	accountFeeRatio := make(map[AccountID]float64)
	accountFeeRatioSet := make(map[AccountID]bool)
	lmHeader := app.LedgerManager()
	for _, tx := range f.transactions {
		a := tx.SourceID()
		ratio := tx.FeeRatio(lmHeader)
		if !accountFeeRatioSet[a] || ratio < accountFeeRatio[a] {
			accountFeeRatio[a] = ratio
			accountFeeRatioSet[a] = true
		}
	}

	wCmp := func(t1, t2 Transaction) bool {
		if t1.SourceID() == t2.SourceID() {
			return t1.SeqNum() < t2.SeqNum()
		}
		if hasHolder {
			if t1.SourceID() == holder {
				return true
			}
			if t2.SourceID() == holder {
				return false
			}
		}
		return t1.SourceID().Less(t2.SourceID())
	}

	uCmp := func(t1, t2 Transaction) bool {
		if t1.SourceID() == t2.SourceID() {
			return t1.SeqNum() < t2.SeqNum()
		}
		if hasHolder {
			if t1.SourceID() == holder {
				return true
			}
			if t2.SourceID() == holder {
				return false
			}
		}
		r1, r2 := accountFeeRatio[t1.SourceID()], accountFeeRatio[t2.SourceID()]
		if r1 != r2 {
			return r1 > r2 // descending: higher ratio first
		}
		return t1.SourceID().Less(t2.SourceID())
	}

	sortedW := make([]Transaction, len(whitelisted))
	copy(sortedW, whitelisted)
	sort.Slice(sortedW, func(i, j int) bool { return wCmp(sortedW[i], sortedW[j]) })

	whitelistCapacity := max - reserve
	if whitelistCapacity < 0 {
		whitelistCapacity = 0
	}
	if len(sortedW) > whitelistCapacity {
		for _, tx := range sortedW[whitelistCapacity:] {
			f.RemoveTx(tx)
		}
		sortedW = sortedW[:whitelistCapacity]
	}

	extraWhitelistRoom := whitelistCapacity - len(sortedW)
	if extraWhitelistRoom < 0 {
		extraWhitelistRoom = 0
	}
	totalUnwhitelistedCapacity := reserve + extraWhitelistRoom

	if len(unwhitelisted) <= totalUnwhitelistedCapacity {
		return
	}

	sortedU := make([]Transaction, len(unwhitelisted))
	copy(sortedU, unwhitelisted)
	sort.Slice(sortedU, func(i, j int) bool { return uCmp(sortedU[i], sortedU[j]) })

	for _, tx := range sortedU[totalUnwhitelistedCapacity:] {
		f.RemoveTx(tx)
	}
}
