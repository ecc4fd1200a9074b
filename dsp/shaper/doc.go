// Package shaper provides the threshold-normalized symmetric clipping
// waveshaper used by the DigiDist effect.
//
// The transfer function clips the input to [-threshold, threshold] and then
// divides by threshold, so every input at or beyond the threshold maps to ±1.
// The curve is odd, so no even-order harmonics are introduced. Raising the
// threshold also lowers overall gain below the clip point; that coupling is
// part of the sound and is not compensated.
package shaper
