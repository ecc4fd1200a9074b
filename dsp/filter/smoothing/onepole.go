package smoothing

import "github.com/cwbudde/algo-digidist/dsp/core"

// OnePole is a single exponential-moving-average stage.
type OnePole struct {
	state float64
}

// Process moves the state toward x by coefficient c and returns it.
func (p *OnePole) Process(x, c float64) float64 {
	p.state = core.FlushDenormals(p.state + c*(x-p.state))
	return p.state
}

// State returns the current running average.
func (p *OnePole) State() float64 { return p.state }

// Reset clears the state to zero.
func (p *OnePole) Reset() { p.state = 0 }
