package txset

import "testing"

func TestToFeeLevelBaseFee(t *testing.T) {
	if got := ToFeeLevel(10, 10); got != BaseFeeLevel {
		t.Fatalf("paying exactly base fee: want %d, got %d", BaseFeeLevel, got)
	}
}

func TestToFeeLevelScalesLinearly(t *testing.T) {
	if got := ToFeeLevel(20, 10); got != 2*BaseFeeLevel {
		t.Fatalf("paying double base fee: want %d, got %d", 2*BaseFeeLevel, got)
	}
	if got := ToFeeLevel(5, 10); got != BaseFeeLevel/2 {
		t.Fatalf("paying half base fee: want %d, got %d", BaseFeeLevel/2, got)
	}
}

func TestToFeeLevelZeroBaseFee(t *testing.T) {
	if got := ToFeeLevel(100, 0); got != ^uint64(0) {
		t.Fatalf("zero base fee: want max uint64, got %d", got)
	}
}

func TestMulDivNoOverflow(t *testing.T) {
	got := mulDiv(^uint64(0), 1, 1)
	if got != ^uint64(0) {
		t.Fatalf("identity mulDiv: want %d, got %d", ^uint64(0), got)
	}
}

func TestMulDivOverflowSaturates(t *testing.T) {
	got := mulDiv(^uint64(0), ^uint64(0), 1)
	if got != ^uint64(0) {
		t.Fatalf("overflowing mulDiv: want saturated max uint64, got %d", got)
	}
}

func TestMul64MatchesBigProduct(t *testing.T) {
	hi, lo := mul64(1<<63, 2)
	if hi != 1 || lo != 0 {
		t.Fatalf("1<<63 * 2 should equal 1<<64: got hi=%d lo=%d", hi, lo)
	}
}

func TestDiv128NoHighBits(t *testing.T) {
	if got := div128(0, 100, 10); got != 10 {
		t.Fatalf("want 10, got %d", got)
	}
}
