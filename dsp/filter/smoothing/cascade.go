package smoothing

import (
	"fmt"
	"math"
)

// StateMode selects how filter state is allocated across channels.
type StateMode int

const (
	// StatePerChannel keeps an independent stage pair per channel.
	StatePerChannel StateMode = iota
	// StateShared keeps one stage pair mutated by every channel in turn.
	StateShared
)

// DefaultCoefficient passes the sample straight through both stages.
const DefaultCoefficient = 1.0

type stagePair struct {
	s0 OnePole
	s1 OnePole
}

// Cascade is a two-stage smoothing residual filter for a fixed channel count.
type Cascade struct {
	coeff    float64
	mode     StateMode
	channels int
	pairs    []stagePair
}

// NewCascade creates a cascade for channels channels with coefficient coeff.
func NewCascade(channels int, coeff float64, mode StateMode) (*Cascade, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("smoothing channel count must be > 0: %d", channels)
	}

	if mode != StatePerChannel && mode != StateShared {
		return nil, fmt.Errorf("smoothing state mode is invalid: %d", mode)
	}

	c := &Cascade{mode: mode, channels: channels}

	err := c.SetCoefficient(coeff)
	if err != nil {
		return nil, err
	}

	pairs := channels
	if mode == StateShared {
		pairs = 1
	}

	c.pairs = make([]stagePair, pairs)

	return c, nil
}

// SetCoefficient updates the stage coefficient. It must be > 0 and finite.
func (c *Cascade) SetCoefficient(coeff float64) error {
	if coeff <= 0 || math.IsNaN(coeff) || math.IsInf(coeff, 0) {
		return fmt.Errorf("smoothing coefficient must be > 0 and finite: %f", coeff)
	}

	c.coeff = coeff

	return nil
}

// Coefficient returns the stage coefficient.
func (c *Cascade) Coefficient() float64 { return c.coeff }

// Channels returns the configured channel count.
func (c *Cascade) Channels() int { return c.channels }

// Mode returns the state allocation mode.
func (c *Cascade) Mode() StateMode { return c.mode }

// ProcessSample filters y for channel ch and returns y minus the
// twice-smoothed value. Out-of-range channels pass y through unchanged.
func (c *Cascade) ProcessSample(ch int, y float64) float64 {
	p := c.pair(ch)
	if p == nil {
		return y
	}

	s0 := p.s0.Process(y, c.coeff)
	s1 := p.s1.Process(s0, c.coeff)

	return y - s1
}

// ProcessInPlace filters buf for channel ch in place.
func (c *Cascade) ProcessInPlace(ch int, buf []float64) {
	p := c.pair(ch)
	if p == nil {
		return
	}

	coeff := c.coeff
	for i, y := range buf {
		s0 := p.s0.Process(y, coeff)
		buf[i] = y - p.s1.Process(s0, coeff)
	}
}

// State returns the two running averages seen by channel ch.
func (c *Cascade) State(ch int) (s0, s1 float64) {
	p := c.pair(ch)
	if p == nil {
		return 0, 0
	}

	return p.s0.State(), p.s1.State()
}

// Reset clears every stage to zero.
func (c *Cascade) Reset() {
	for i := range c.pairs {
		c.pairs[i].s0.Reset()
		c.pairs[i].s1.Reset()
	}
}

func (c *Cascade) pair(ch int) *stagePair {
	if ch < 0 || ch >= c.channels {
		return nil
	}

	if c.mode == StateShared {
		return &c.pairs[0]
	}

	return &c.pairs[ch]
}
