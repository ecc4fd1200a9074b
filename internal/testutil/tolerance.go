package testutil

import (
	"math"
	"testing"
)

// RequireClose fails t unless got and want have the same length and every
// pair is within eps. eps == 0 demands bit-equal samples.
func RequireClose(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i, g := range got {
		if d := math.Abs(g - want[i]); d > eps {
			t.Fatalf("sample %d: got %v, want %v (|diff| %v > %v)", i, g, want[i], d, eps)
		}
	}
}

// RequireFinite fails t on the first NaN or Inf sample.
func RequireFinite(t *testing.T, buf []float64) {
	t.Helper()
	for i, v := range buf {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("sample %d is not finite: %v", i, v)
		}
	}
}

// RequireWithin fails t on the first sample outside [lo, hi].
func RequireWithin(t *testing.T, buf []float64, lo, hi float64) {
	t.Helper()
	for i, v := range buf {
		if v < lo || v > hi {
			t.Fatalf("sample %d: %v outside [%v, %v]", i, v, lo, hi)
		}
	}
}
