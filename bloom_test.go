package sketch

import (
	"fmt"
	"math"
	"testing"
)

func TestFilterBasic(t *testing.T) {
	f := New(1000, 0.01)

	f.Insert([]byte("hello"))
	f.Insert([]byte("world"))
	f.InsertString("foo")

	if !f.Contains([]byte("hello")) {
		t.Error("expected hello to be present")
	}
	if !f.Contains([]byte("world")) {
		t.Error("expected world to be present")
	}
	if !f.ContainsString("foo") {
		t.Error("expected foo to be present")
	}

	// Bytes and strings with the same content hash identically
	if !f.ContainsString("hello") {
		t.Error("expected string hello to be present")
	}
	if !f.Contains([]byte("foo")) {
		t.Error("expected bytes foo to be present")
	}

	if f.Contains([]byte("notpresent")) {
		t.Log("warning: false positive for 'notpresent'")
	}
}

func TestFilterInsertItem(t *testing.T) {
	f := New(100, 0.01)
	f.InsertString("item")
	if !f.ContainsString("item") {
		t.Error("expected item to be present")
	}
}

func TestFilterCheckAndInsert(t *testing.T) {
	f := New(100, 0.01, WithSeeds(1, 2))

	if f.ContainsString("item_1") {
		t.Error("expected item_1 to be absent from empty filter")
	}
	if f.ContainsString("item_2") {
		t.Error("expected item_2 to be absent from empty filter")
	}

	if f.CheckAndInsert([]byte("item_1")) {
		t.Error("expected CheckAndInsert to return false for new item")
	}
	if !f.CheckAndInsert([]byte("item_1")) {
		t.Error("expected CheckAndInsert to return true for existing item")
	}
	if !f.ContainsString("item_1") {
		t.Error("expected item_1 to be present")
	}

	if f.CheckAndInsertString("item_3") {
		t.Error("expected CheckAndInsertString to return false for new item")
	}
	if !f.CheckAndInsertString("item_3") {
		t.Error("expected CheckAndInsertString to return true for existing item")
	}
}

func TestFilterEmptyContainsNothing(t *testing.T) {
	f := New(1000, 0.01)
	for i := range 1000 {
		if f.Contains(fmt.Appendf(nil, "item-%d", i)) {
			t.Fatalf("empty filter reported item-%d present", i)
		}
	}
}

func TestFilterNoFalseNegatives(t *testing.T) {
	for _, index := range []IndexFunc{DoubleHashIndex, SummedIndex} {
		f := New(5000, 0.01, WithIndexFunc(index))

		for i := range 5000 {
			f.Insert(fmt.Appendf(nil, "item-%d", i))
		}
		// Later inserts never clear earlier bits
		for i := range 5000 {
			f.Insert(fmt.Appendf(nil, "other-%d", i))
		}

		var missing int
		for i := range 5000 {
			if !f.Contains(fmt.Appendf(nil, "item-%d", i)) {
				missing++
			}
		}
		if missing > 0 {
			t.Errorf("expected all items to be present, but %d were missing", missing)
		}
	}
}

func TestFilterFalsePositiveRate(t *testing.T) {
	expectedItems := uint64(10000)
	targetFPRate := 0.01 // 1%

	f := New(expectedItems, targetFPRate, WithSeeds(0x5eed, 0xbeef))

	for i := range expectedItems {
		f.Insert(fmt.Appendf(nil, "item-%d", i))
	}

	testItems := uint64(10000)
	var falsePositives uint64
	for i := range testItems {
		if f.Contains(fmt.Appendf(nil, "notitem-%d", i)) {
			falsePositives++
		}
	}

	actualFPRate := float64(falsePositives) / float64(testItems)

	// Allow 2x margin for statistical variance
	if actualFPRate > targetFPRate*2 {
		t.Errorf("false positive rate too high: got %.4f, want <= %.4f", actualFPRate, targetFPRate*2)
	}

	t.Logf("FP rate: %.4f (target: %.4f, k=%d, m=%d)", actualFPRate, targetFPRate, f.K(), f.Cap())
}

func TestFilterSummedIndexFalsePositiveRate(t *testing.T) {
	f := New(10000, 0.01, WithSeeds(0x5eed, 0xbeef), WithIndexFunc(SummedIndex))
	for i := range 10000 {
		f.Insert(fmt.Appendf(nil, "item-%d", i))
	}

	var falsePositives int
	for i := range 10000 {
		if f.Contains(fmt.Appendf(nil, "notitem-%d", i)) {
			falsePositives++
		}
	}

	// Recorded for comparison with TestFilterFalsePositiveRate only.
	t.Logf("summed index FP rate: %.4f", float64(falsePositives)/10000)
}

func TestFilterIdempotentInsert(t *testing.T) {
	once := NewWithParams(1024, 5, WithSeeds(7, 11))
	twice := NewWithParams(1024, 5, WithSeeds(7, 11))

	once.InsertString("element")
	twice.InsertString("element")
	twice.InsertString("element")

	if !once.bits.Equal(twice.bits) {
		t.Error("expected repeated insert to leave the bit array unchanged")
	}
	if twice.Count() != 2 {
		t.Errorf("expected count 2, got %d", twice.Count())
	}
}

func TestFilterSameSeedsSameBits(t *testing.T) {
	a := New(1000, 0.01, WithSeeds(3, 4))
	b := New(1000, 0.01, WithSeeds(3, 4))
	for i := range 200 {
		key := fmt.Sprintf("key-%d", i)
		a.InsertString(key)
		b.Insert([]byte(key))
	}
	if !a.bits.Equal(b.bits) {
		t.Error("expected filters with equal seeds to have equal bits")
	}
}

func TestFilterOptimalSizing(t *testing.T) {
	f := New(100, 0.01)
	if f.Cap() != 959 {
		t.Errorf("Cap() = %d, want 959", f.Cap())
	}
	if f.K() != 7 {
		t.Errorf("K() = %d, want 7", f.K())
	}
}

func TestFilterWithDifferentKValues(t *testing.T) {
	for k := uint32(1); k <= 14; k++ {
		f := NewWithParams(51200, k)

		for i := range 1000 {
			f.InsertString(fmt.Sprintf("item-%d", i))
		}

		var missing int
		for i := range 1000 {
			if !f.ContainsString(fmt.Sprintf("item-%d", i)) {
				missing++
			}
		}

		if missing > 0 {
			t.Errorf("k=%d: %d items missing", k, missing)
		}
	}
}

func TestFilterZeroRounds(t *testing.T) {
	// With no rounds nothing is set, and every query is vacuously true.
	f := NewWithParams(64, 0)
	f.InsertString("a")
	if f.EstimatedFillRatio() != 0 {
		t.Errorf("expected 0 fill ratio, got %f", f.EstimatedFillRatio())
	}
	if !f.ContainsString("b") {
		t.Error("expected k=0 filter to report everything present")
	}
}

func TestFilterZeroWidthPanics(t *testing.T) {
	f := NewWithParams(0, 3)

	defer func() {
		if recover() == nil {
			t.Error("expected insert into zero-width filter to panic")
		}
	}()
	f.InsertString("boom")
}

func TestFilterEstimatedFillRatio(t *testing.T) {
	f := New(1000, 0.01)

	if f.EstimatedFillRatio() != 0 {
		t.Errorf("expected 0 fill ratio for empty filter, got %f", f.EstimatedFillRatio())
	}

	for i := range 500 {
		f.Insert(fmt.Appendf(nil, "item-%d", i))
	}

	ratio := f.EstimatedFillRatio()
	if ratio <= 0 || ratio >= 1 {
		t.Errorf("expected fill ratio between 0 and 1, got %f", ratio)
	}

	t.Logf("Fill ratio after 500 items: %.4f", ratio)
}

func TestFilterEstimatedFalsePositiveRate(t *testing.T) {
	f := New(1000, 0.01)

	if f.EstimatedFalsePositiveRate() != 0 {
		t.Error("expected 0 FP rate for empty filter")
	}

	for i := range 500 {
		f.InsertString(fmt.Sprintf("item-%d", i))
	}

	fpRate := f.EstimatedFalsePositiveRate()
	if fpRate <= 0 || fpRate >= 1 {
		t.Errorf("expected FP rate between 0 and 1, got %f", fpRate)
	}

	want := EstimateFalsePositiveRate(f.Cap(), f.K(), 500)
	if math.Abs(fpRate-want) > 1e-12 {
		t.Errorf("EstimatedFalsePositiveRate() = %f, want %f", fpRate, want)
	}
}
