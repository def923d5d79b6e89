package pool

import (
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/catena-ledger/txsetd/internal/core/ledger/header"
	"github.com/catena-ledger/txsetd/internal/core/txset"
)

// droppedCacheSize bounds the recently-dropped set, preventing an
// immediately-resubmitted, still-failing transaction from being re-admitted
// and re-dropped every round.
const droppedCacheSize = 4096

// Pool is the candidate pool a consensus round draws from when building the
// next ledger's Frame. It is safe for concurrent use.
type Pool struct {
	mu sync.Mutex

	config Config

	byAccount map[txset.AccountID]*AccountQueue
	byHash    map[txset.Hash]*Candidate

	// dropped records the fee level a dropped candidate last held, so a
	// resubmission is only re-admitted if it raises the fee.
	dropped *lru.Cache[txset.Hash, uint64]
}

// New creates an empty Pool.
func New(config Config) *Pool {
	dropped, _ := lru.New[txset.Hash, uint64](droppedCacheSize)
	return &Pool{
		config:    config,
		byAccount: make(map[txset.AccountID]*AccountQueue),
		byHash:    make(map[txset.Hash]*Candidate),
		dropped:   dropped,
	}
}

// Size returns the number of candidates currently pooled.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byHash)
}

// Add admits tx into the pool at the given fee level. Returns false if the
// account is already at its per-account cap or tx was recently dropped and
// has not been explicitly resubmitted with a higher fee.
func (p *Pool) Add(tx txset.Transaction, feeLevel uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	h := tx.FullHash()
	if droppedFeeLevel, wasDropped := p.dropped.Get(h); wasDropped && feeLevel <= droppedFeeLevel {
		return false
	}

	account := tx.SourceID()
	aq, ok := p.byAccount[account]
	if !ok {
		aq = NewAccountQueue(account)
		p.byAccount[account] = aq
	}
	if uint32(aq.Count()) >= p.config.MaxPerAccount {
		if _, exists := aq.Candidates[tx.SeqNum()]; !exists {
			return false
		}
	}

	c := &Candidate{Tx: tx, FeeLevel: feeLevel, RetriesRemaining: p.config.RetriesAllowed}
	aq.Add(c)
	p.byHash[h] = c
	return true
}

// Remove drops the candidate with the given full hash, recording it in the
// dropped cache so it is not immediately re-admitted unchanged.
func (p *Pool) Remove(h txset.Hash) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removeLocked(h)
}

func (p *Pool) removeLocked(h txset.Hash) {
	c, ok := p.byHash[h]
	if !ok {
		return
	}
	delete(p.byHash, h)
	p.dropped.Add(h, c.FeeLevel)

	aq, ok := p.byAccount[c.Tx.SourceID()]
	if !ok {
		return
	}
	aq.Remove(c.Tx.SeqNum())
	if aq.Empty() {
		delete(p.byAccount, c.Tx.SourceID())
	}
}

// Candidates returns every pooled transaction, highest fee level first,
// with per-account sequence order preserved within ties — the same shape
// consensus feeds into a fresh Frame before surge pricing trims it.
func (p *Pool) Candidates() []txset.Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()

	all := make([]*Candidate, 0, len(p.byHash))
	for _, c := range p.byHash {
		all = append(all, c)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].FeeLevel != all[j].FeeLevel {
			return all[i].FeeLevel > all[j].FeeLevel
		}
		a, b := all[i].Tx.SourceID(), all[j].Tx.SourceID()
		if a != b {
			return a.Less(b)
		}
		return all[i].Tx.SeqNum() < all[j].Tx.SeqNum()
	})

	result := make([]txset.Transaction, len(all))
	for i, c := range all {
		result[i] = c.Tx
	}
	return result
}

// BuildFrame constructs a fresh txset.Frame bound to lm's last-closed ledger
// hash, populated with every currently pooled transaction. Callers still
// invoke SurgePricingFilter/TrimInvalid/CheckValid themselves; the pool's
// only job is admission and ranking, not validation.
func (p *Pool) BuildFrame(lm header.LedgerManager) *txset.Frame {
	parent := txset.Hash(lm.LastClosedLedgerHeader().Hash)
	frame := txset.NewFrame(parent)
	for _, tx := range p.Candidates() {
		frame.Add(tx)
	}
	return frame
}
