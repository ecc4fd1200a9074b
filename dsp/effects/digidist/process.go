package digidist

import (
	"math"

	"github.com/cwbudde/algo-digidist/dsp/shaper"
)

// ProcessSample runs one sample of channel ch through the chain.
func (e *Effect) ProcessSample(ch int, x float64) float64 {
	if e.sanitize && (math.IsNaN(x) || math.IsInf(x, 0)) {
		x = 0
	}

	y := shaper.Clip(x, e.params[ParamThreshold])

	if e.filter != nil {
		y = e.filter.ProcessSample(ch, y)
	}

	return y
}

// Process renders host single-precision buffers, one slice per channel.
// Channels are processed in order, each over its whole block. With
// WithSharedFilterState, channel 1 therefore starts from the smoothing state
// channel 0 left at the end of the block.
func (e *Effect) Process(inputs, outputs [][]float32) {
	n := channelCount(len(inputs), len(outputs))

	for ch := range n {
		in, out := inputs[ch], outputs[ch]
		m := min(len(in), len(out))

		for i := range m {
			out[i] = float32(e.ProcessSample(ch, float64(in[i])))
		}
	}
}

// Process64 renders double-precision buffers, one slice per channel. In and
// out may alias. Channel order and shared-state coupling match Process.
func (e *Effect) Process64(inputs, outputs [][]float64) {
	n := channelCount(len(inputs), len(outputs))

	for ch := range n {
		m := min(len(inputs[ch]), len(outputs[ch]))
		out := outputs[ch][:m]
		copy(out, inputs[ch][:m])

		if e.sanitize {
			for i, x := range out {
				if math.IsNaN(x) || math.IsInf(x, 0) {
					out[i] = 0
				}
			}
		}

		e.shaper.ProcessInPlace(out)

		if e.filter != nil {
			e.filter.ProcessInPlace(ch, out)
		}
	}
}

func channelCount(inputs, outputs int) int {
	return min(inputs, outputs, Channels)
}
