package digidist

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEffect(t *testing.T, opts ...Option) *Effect {
	t.Helper()

	logger, _ := test.NewNullLogger()
	e, err := New(append([]Option{WithLogger(logrus.NewEntry(logger))}, opts...)...)
	require.NoError(t, err)

	return e
}

func TestDefaults(t *testing.T) {
	e := newEffect(t)

	assert.Equal(t, Revision2, e.Revision())
	assert.Equal(t, 1.0, e.Parameter(ParamThreshold))
	assert.Equal(t, 1.0, e.Parameter(ParamCutoff))

	for ch := range Channels {
		s0, s1 := e.FilterState(ch)
		assert.Zero(t, s0)
		assert.Zero(t, s1)
	}
}

func TestSetParameterFloor(t *testing.T) {
	for _, rev := range []Revision{Revision1, Revision2} {
		e := newEffect(t, WithRevision(rev))

		for i := range rev.parameterCount() {
			for _, v := range []float64{0.009, 0, -1, math.Inf(-1), math.NaN()} {
				e.SetParameter(i, v)
				assert.Equal(t, ParameterFloor, e.Parameter(i), "%s index %d value %v", rev, i, v)
			}

			e.SetParameter(i, 0.75)
			assert.Equal(t, 0.75, e.Parameter(i))

			e.SetParameter(i, 3)
			assert.Equal(t, 3.0, e.Parameter(i), "no upper cap")
		}
	}
}

func TestUnknownIndexIsNoOp(t *testing.T) {
	e := newEffect(t)
	e.SetParameter(ParamThreshold, 0.4)
	e.SetParameter(ParamCutoff, 0.2)

	for _, idx := range []int{2, -1, 99} {
		e.SetParameter(idx, 0.9)
		assert.Zero(t, e.Parameter(idx))
		assert.Empty(t, e.ParameterName(idx))
		assert.Empty(t, e.ParameterText(idx))
		assert.Empty(t, e.ParameterLabel(idx))
	}

	assert.Equal(t, 0.4, e.Parameter(ParamThreshold))
	assert.Equal(t, 0.2, e.Parameter(ParamCutoff))
}

func TestRevision1HasNoCutoff(t *testing.T) {
	e := newEffect(t, WithRevision(Revision1))

	e.SetParameter(ParamCutoff, 0.3)
	assert.Zero(t, e.Parameter(ParamCutoff))
	assert.Empty(t, e.ParameterName(ParamCutoff))
	assert.Equal(t, 1, e.Info().Parameters)
	assert.Len(t, e.Parameters(), 1)
}

func TestParameterMetadata(t *testing.T) {
	e := newEffect(t)

	assert.Equal(t, "Threshold", e.ParameterName(ParamThreshold))
	assert.Equal(t, "Cutoff", e.ParameterName(ParamCutoff))
	assert.Equal(t, "%", e.ParameterLabel(ParamThreshold))
	assert.Equal(t, "hz", e.ParameterLabel(ParamCutoff))

	params := e.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, ParameterInfo{Index: 0, Name: "Threshold", Label: "%", Default: 1, Floor: 0.01}, params[0])
	assert.Equal(t, ParameterInfo{Index: 1, Name: "Cutoff", Label: "hz", Default: 1, Floor: 0.01}, params[1])
}

func TestParameterText(t *testing.T) {
	e := newEffect(t)

	assert.Equal(t, "100", e.ParameterText(ParamThreshold))
	assert.Equal(t, "20000", e.ParameterText(ParamCutoff))

	e.SetParameter(ParamThreshold, 0.5)
	e.SetParameter(ParamCutoff, 0.1)
	assert.Equal(t, "50", e.ParameterText(ParamThreshold))
	assert.Equal(t, "2000", e.ParameterText(ParamCutoff))

	e.SetParameter(ParamThreshold, 0)
	assert.Equal(t, "1", e.ParameterText(ParamThreshold))

	e.SetParameter(ParamThreshold, 0.125)
	assert.Equal(t, "12.5", e.ParameterText(ParamThreshold))
}

func TestSetParameterUpdatesProcessing(t *testing.T) {
	e := newEffect(t, WithRevision(Revision1))
	e.SetParameter(ParamThreshold, 0.5)

	assert.InDelta(t, 0.5, e.ProcessSample(0, 0.25), 1e-12)
	assert.InDelta(t, 0.5, e.shaper.Threshold(), 0)
}

func TestClampIsLoggedAtDebug(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	e, err := New(WithLogger(logrus.NewEntry(logger)))
	require.NoError(t, err)
	hook.Reset()

	e.SetParameter(ParamThreshold, 0.5)
	assert.Empty(t, hook.AllEntries(), "in-range sets are silent")

	e.SetParameter(ParamCutoff, 0.001)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "Cutoff", entry.Data["param"])
	assert.Equal(t, 0.01, entry.Data["stored"])
}

func TestClampSilentAboveDebug(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)

	e, err := New(WithLogger(logrus.NewEntry(logger)))
	require.NoError(t, err)

	e.SetParameter(ParamThreshold, -5)
	assert.Empty(t, hook.AllEntries())
	assert.Equal(t, ParameterFloor, e.Threshold())
}
