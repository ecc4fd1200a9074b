package digidist

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-digidist/dsp/core"
	"github.com/cwbudde/algo-digidist/dsp/filter/smoothing"
	"github.com/cwbudde/algo-digidist/dsp/shaper"
)

// Parameter indices as seen by a host.
const (
	ParamThreshold = 0
	ParamCutoff    = 1
)

// ParameterFloor is the smallest value any parameter can hold.
const ParameterFloor = 0.01

type paramSpec struct {
	name         string
	label        string
	displayScale float64
	def          float64
}

var paramTable = [...]paramSpec{
	ParamThreshold: {name: "Threshold", label: "%", displayScale: 100, def: shaper.DefaultThreshold},
	ParamCutoff:    {name: "Cutoff", label: "hz", displayScale: 20000, def: smoothing.DefaultCoefficient},
}

// ParameterInfo describes one host parameter.
type ParameterInfo struct {
	Index   int
	Name    string
	Label   string
	Default float64
	Floor   float64
}

// Parameters lists the parameters exposed by the active revision.
func (e *Effect) Parameters() []ParameterInfo {
	n := e.revision.parameterCount()
	out := make([]ParameterInfo, n)

	for i := range n {
		ps := paramTable[i]
		out[i] = ParameterInfo{
			Index:   i,
			Name:    ps.name,
			Label:   ps.label,
			Default: ps.def,
			Floor:   ParameterFloor,
		}
	}

	return out
}

// Parameter returns the stored value for index, or 0 for unknown indices.
func (e *Effect) Parameter(index int) float64 {
	if !e.validIndex(index) {
		return 0
	}

	return e.params[index]
}

// SetParameter stores value for index, raising it to ParameterFloor first.
// Non-finite values store the floor. Unknown indices are ignored.
func (e *Effect) SetParameter(index int, value float64) {
	if !e.validIndex(index) {
		return
	}

	v := core.Floor(value, ParameterFloor)
	if v != value && e.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		e.log.WithFields(fieldsFor("SetParameter", index, value, v)).Debug("Parameter clamped to floor")
	}

	e.params[index] = v
	e.applyParameter(index)
}

// ParameterName returns the display name for index, or "".
func (e *Effect) ParameterName(index int) string {
	if !e.validIndex(index) {
		return ""
	}

	return paramTable[index].name
}

// ParameterText renders the scaled value for index without units, or "".
// Values are rendered at host single precision, so 0.1 cutoff reads "2000".
func (e *Effect) ParameterText(index int) string {
	if !e.validIndex(index) {
		return ""
	}

	scaled := float32(e.params[index]) * float32(paramTable[index].displayScale)

	return strconv.FormatFloat(float64(scaled), 'f', -1, 32)
}

// ParameterLabel returns the unit label for index, or "".
func (e *Effect) ParameterLabel(index int) string {
	if !e.validIndex(index) {
		return ""
	}

	return paramTable[index].label
}

func (e *Effect) validIndex(index int) bool {
	return index >= 0 && index < e.revision.parameterCount()
}

func (e *Effect) applyParameter(index int) {
	var err error

	switch index {
	case ParamThreshold:
		err = e.shaper.SetThreshold(e.params[index])
	case ParamCutoff:
		if e.filter != nil {
			err = e.filter.SetCoefficient(e.params[index])
		}
	}

	if err != nil {
		e.log.WithFields(fieldsFor("SetParameter", index, e.params[index], e.params[index])).
			WithError(err).Warn("Parameter rejected by processor")
	}
}
