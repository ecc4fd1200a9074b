package testutil

import (
	"math"
	"math/rand"
)

// Sine returns n samples of amp*sin(2*pi*freq*i/rate), starting at phase 0.
func Sine(freq, rate, amp float64, n int) []float64 {
	out := make([]float64, n)
	w := 2 * math.Pi * freq / rate
	for i := range out {
		out[i] = amp * math.Sin(w*float64(i))
	}
	return out
}

// Noise returns n uniform samples in [-amp, amp) from a seeded source.
func Noise(seed int64, amp float64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * (2*rng.Float64() - 1)
	}
	return out
}

// Constant returns n copies of v.
func Constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Stereo returns a two-channel buffer set holding copies of left and right,
// so callers can process it in place without touching the originals.
func Stereo(left, right []float64) [][]float64 {
	return [][]float64{
		append([]float64(nil), left...),
		append([]float64(nil), right...),
	}
}

// Float32 converts a signal to host single precision.
func Float32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}
