package shaper

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// DefaultThreshold is the unity clip ceiling.
const DefaultThreshold = 1.0

// Clip applies the symmetric clip to x. threshold must be > 0.
func Clip(x, threshold float64) float64 {
	if x >= 0 {
		return math.Min(x, threshold) / threshold
	}

	return math.Max(x, -threshold) / threshold
}

// Shaper is a stateless clipping waveshaper with a fixed threshold.
type Shaper struct {
	threshold float64
}

// New creates a shaper with the given threshold.
func New(threshold float64) (*Shaper, error) {
	s := &Shaper{}

	err := s.SetThreshold(threshold)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// SetThreshold updates the clip ceiling. It must be > 0 and finite.
func (s *Shaper) SetThreshold(threshold float64) error {
	if threshold <= 0 || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return fmt.Errorf("shaper threshold must be > 0 and finite: %f", threshold)
	}

	s.threshold = threshold

	return nil
}

// Threshold returns the clip ceiling.
func (s *Shaper) Threshold() float64 { return s.threshold }

// ProcessSample shapes one sample.
func (s *Shaper) ProcessSample(x float64) float64 {
	return Clip(x, s.threshold)
}

// ProcessInPlace shapes buf in place. The normalization runs as one
// vectorized scale, so results may differ from ProcessSample in the last ulp.
func (s *Shaper) ProcessInPlace(buf []float64) {
	if len(buf) == 0 {
		return
	}

	t := s.threshold
	for i, x := range buf {
		if x > t {
			buf[i] = t
		} else if x < -t {
			buf[i] = -t
		}
	}

	vecmath.ScaleBlock(buf, buf, 1/t)
}
