// Package smoothing implements the two-stage one-pole smoothing cascade that
// follows the DigiDist waveshaper.
//
// Each stage is an exponential moving average with coefficient c in (0, 1]:
//
//	s += c * (x - s)
//
// The cascade feeds the first stage with the shaped sample, the second stage
// with the first, and emits the shaped sample minus the twice-smoothed value.
// The residual keeps content that moves faster than the smoothing, so a small
// coefficient removes more low end. The coefficient is used as given; it is
// not derived from a frequency.
//
// State is kept per channel. StateShared keeps a single pair for every
// channel, reproducing the coupling of the original plugin.
package smoothing
