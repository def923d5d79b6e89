package txset

import "sort"

// SortForApply produces the deterministic-yet-submitter-unpredictable apply
// order. It does not mutate f.transactions.
//
// Two properties hold simultaneously:
//   - per-account order is preserved: transaction k for account A is never
//     placed before transaction k-1 for A.
//   - cross-account order is derived from ContentsHash, a value no
//     individual submitter can know in advance, preventing front-running
//     within a batch.
func (f *Frame) SortForApply() []Transaction {
	working := make([]Transaction, len(f.transactions))
	copy(working, f.transactions)
	sort.Slice(working, func(i, j int) bool {
		return working[i].SeqNum() < working[j].SeqNum()
	})

	// Partition into batches by rank-within-account: the k-th transaction
	// seen for account A (0-based, in seqNum order) lands in batch[k].
	rank := make(map[AccountID]int)
	var batches [][]Transaction
	for _, tx := range working {
		k := rank[tx.SourceID()]
		rank[tx.SourceID()] = k + 1
		for len(batches) <= k {
			batches = append(batches, nil)
		}
		batches[k] = append(batches[k], tx)
	}

	contentHash := f.ContentsHash()
	for _, batch := range batches {
		sort.Slice(batch, func(i, j int) bool {
			return batch[i].FullHash().LessXored(batch[j].FullHash(), contentHash)
		})
	}

	result := make([]Transaction, 0, len(working))
	for _, batch := range batches {
		result = append(result, batch...)
	}
	return result
}
