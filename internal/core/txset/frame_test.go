package txset

import (
	"crypto/sha256"
	"testing"
)

func hashFromByte(b byte) Hash {
	var h Hash
	for i := range h {
		h[i] = b
	}
	return h
}

func txWithHash(source AccountID, seq SequenceNumber, fee int64, fullHash byte, envelope []byte) *BaseTransaction {
	return &BaseTransaction{
		Source:   source,
		Seq:      seq,
		FeeDrops: fee,
		Wire:     envelope,
		Valid:    true,
		hash:     hashFromByte(fullHash),
		hashSet:  true,
	}
}

func TestSortForHash(t *testing.T) {
	f := NewFrame(ZeroHash)
	f.Add(txWithHash(AccountID{1}, 1, 10, 0xAA, []byte("a")))
	f.Add(txWithHash(AccountID{2}, 1, 10, 0x55, []byte("b")))

	f.SortForHash()

	txs := f.Transactions()
	for i := 1; i < len(txs); i++ {
		if !txs[i-1].FullHash().Less(txs[i].FullHash()) {
			t.Fatalf("transactions not ascending by full hash at index %d", i)
		}
	}
	if txs[0].FullHash() != hashFromByte(0x55) {
		t.Errorf("expected 0x55... first, got %s", txs[0].FullHash())
	}
}

func TestContentsHashEmptySet(t *testing.T) {
	parent := hashFromByte(0x11)
	f := NewFrame(parent)

	want := sha256.Sum256(parent[:])
	got := f.ContentsHash()

	if Hash(want) != got {
		t.Errorf("contentsHash = %x, want %x", got, want)
	}
}

func TestContentsHashCanonicalOrder(t *testing.T) {
	parent := ZeroHash
	f := NewFrame(parent)
	f.Add(txWithHash(AccountID{1}, 1, 10, 0xAA, []byte{0xAA}))
	f.Add(txWithHash(AccountID{2}, 1, 10, 0x55, []byte{0x55}))

	h := sha256.New()
	h.Write(parent[:])
	h.Write([]byte{0x55})
	h.Write([]byte{0xAA})
	want := h.Sum(nil)

	got := f.ContentsHash()
	if string(got[:]) != string(want) {
		t.Errorf("contentsHash did not hash canonical order")
	}
}

func TestContentsHashStableUntilMutated(t *testing.T) {
	f := NewFrame(ZeroHash)
	f.Add(txWithHash(AccountID{1}, 1, 10, 0x01, []byte{0x01}))

	first := f.ContentsHash()
	second := f.ContentsHash()
	if first != second {
		t.Fatal("contentsHash changed without mutation")
	}

	f.Add(txWithHash(AccountID{2}, 1, 10, 0x02, []byte{0x02}))
	third := f.ContentsHash()
	if first == third {
		t.Fatal("contentsHash did not change after Add")
	}
}

func TestRemoveTxInvalidatesHash(t *testing.T) {
	f := NewFrame(ZeroHash)
	tx := txWithHash(AccountID{1}, 1, 10, 0x01, []byte{0x01})
	f.Add(tx)
	_ = f.ContentsHash()

	f.RemoveTx(tx)
	if f.hashValid {
		t.Fatal("hashValid still true after RemoveTx")
	}
	if f.Size() != 0 {
		t.Fatalf("Size = %d, want 0", f.Size())
	}
}

func TestRemoveTxNotPresentIsNoop(t *testing.T) {
	f := NewFrame(ZeroHash)
	f.Add(txWithHash(AccountID{1}, 1, 10, 0x01, []byte{0x01}))

	other := txWithHash(AccountID{2}, 1, 10, 0x02, []byte{0x02})
	f.RemoveTx(other)

	if f.Size() != 1 {
		t.Fatalf("Size = %d, want 1 (no-op removal)", f.Size())
	}
}

func TestSetPreviousLedgerHashInvalidatesCache(t *testing.T) {
	f := NewFrame(hashFromByte(0x01))
	_ = f.ContentsHash()

	f.SetPreviousLedgerHash(hashFromByte(0x02))
	if f.hashValid {
		t.Fatal("hashValid still true after re-parenting")
	}
}

func TestLessXored(t *testing.T) {
	a := hashFromByte(0x0F)
	b := hashFromByte(0xF0)
	k := hashFromByte(0xFF)

	// a XOR k = 0xF0..., b XOR k = 0x0F...; so under k, b sorts first.
	if a.LessXored(b, k) {
		t.Error("expected a to NOT sort before b under this key")
	}
	if !b.LessXored(a, k) {
		t.Error("expected b to sort before a under this key")
	}
}
