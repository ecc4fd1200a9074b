package digidist

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-digidist/dsp/core"
	"github.com/cwbudde/algo-digidist/dsp/filter/smoothing"
	"github.com/cwbudde/algo-digidist/dsp/shaper"
)

// Channels is the fixed input and output channel count.
const Channels = 2

// Revision selects the processing chain.
type Revision int

const (
	// Revision1 runs the waveshaper only.
	Revision1 Revision = iota + 1
	// Revision2 runs the waveshaper followed by the smoothing residual.
	Revision2
)

func (r Revision) String() string {
	switch r {
	case Revision1:
		return "revision1"
	case Revision2:
		return "revision2"
	default:
		return fmt.Sprintf("Revision(%d)", int(r))
	}
}

func (r Revision) parameterCount() int {
	if r == Revision2 {
		return 2
	}

	return 1
}

func validRevision(r Revision) bool {
	return r == Revision1 || r == Revision2
}

// Info is the static descriptor a host queries once.
type Info struct {
	Name       string
	Vendor     string
	UniqueID   int32
	Inputs     int
	Outputs    int
	Parameters int
}

// Option mutates construction-time parameters.
type Option func(*config) error

type config struct {
	revision  Revision
	threshold float64
	cutoff    float64
	stateMode smoothing.StateMode
	sanitize  bool
	logger    *logrus.Entry
}

func defaultConfig() config {
	return config{
		revision:  Revision2,
		threshold: paramTable[ParamThreshold].def,
		cutoff:    paramTable[ParamCutoff].def,
		stateMode: smoothing.StatePerChannel,
		sanitize:  true,
	}
}

// WithRevision selects Revision1 or Revision2. The default is Revision2.
func WithRevision(r Revision) Option {
	return func(cfg *config) error {
		if !validRevision(r) {
			return fmt.Errorf("digidist revision is invalid: %d", r)
		}

		cfg.revision = r

		return nil
	}
}

// WithThreshold sets the initial threshold. Values below ParameterFloor are
// raised to it.
func WithThreshold(threshold float64) Option {
	return func(cfg *config) error {
		if threshold <= 0 || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
			return fmt.Errorf("digidist threshold must be > 0 and finite: %f", threshold)
		}

		cfg.threshold = core.Floor(threshold, ParameterFloor)

		return nil
	}
}

// WithCutoff sets the initial smoothing coefficient. Values below
// ParameterFloor are raised to it. Ignored by Revision1.
func WithCutoff(cutoff float64) Option {
	return func(cfg *config) error {
		if cutoff <= 0 || math.IsNaN(cutoff) || math.IsInf(cutoff, 0) {
			return fmt.Errorf("digidist cutoff must be > 0 and finite: %f", cutoff)
		}

		cfg.cutoff = core.Floor(cutoff, ParameterFloor)

		return nil
	}
}

// WithSharedFilterState makes both channels drive one smoothing state pair,
// as the original plugin did. Channels then bleed into each other.
func WithSharedFilterState(shared bool) Option {
	return func(cfg *config) error {
		cfg.stateMode = smoothing.StatePerChannel
		if shared {
			cfg.stateMode = smoothing.StateShared
		}

		return nil
	}
}

// WithInputSanitizing controls whether NaN and Inf input samples are replaced
// by silence before shaping. Enabled by default. With sanitizing off a single
// non-finite sample propagates through the smoothing state indefinitely.
func WithInputSanitizing(enabled bool) Option {
	return func(cfg *config) error {
		cfg.sanitize = enabled
		return nil
	}
}

// WithLogger sets the logger used for construction and parameter events.
func WithLogger(logger *logrus.Entry) Option {
	return func(cfg *config) error {
		if logger == nil {
			return fmt.Errorf("digidist logger must not be nil")
		}

		cfg.logger = logger

		return nil
	}
}

// Effect is one DigiDist instance.
type Effect struct {
	revision Revision
	params   [len(paramTable)]float64
	sanitize bool

	shaper *shaper.Shaper
	filter *smoothing.Cascade

	log *logrus.Entry
}

// New creates an effect with validated options.
func New(opts ...Option) (*Effect, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	if cfg.logger == nil {
		cfg.logger = logrus.NewEntry(logrus.StandardLogger())
	}

	sh, err := shaper.New(cfg.threshold)
	if err != nil {
		return nil, err
	}

	e := &Effect{
		revision: cfg.revision,
		sanitize: cfg.sanitize,
		shaper:   sh,
		log:      cfg.logger,
	}
	e.params[ParamThreshold] = cfg.threshold
	e.params[ParamCutoff] = cfg.cutoff

	if cfg.revision == Revision2 {
		e.filter, err = smoothing.NewCascade(Channels, cfg.cutoff, cfg.stateMode)
		if err != nil {
			return nil, err
		}
	}

	fields := logrus.Fields{
		"function":  "New",
		"revision":  cfg.revision.String(),
		"threshold": e.shaper.Threshold(),
		"sanitize":  cfg.sanitize,
	}
	if e.filter != nil {
		fields["cutoff"] = e.filter.Coefficient()
		fields["channels"] = e.filter.Channels()
		fields["shared_state"] = e.filter.Mode() == smoothing.StateShared
	}

	e.log.WithFields(fields).Debug("DigiDist effect created")

	return e, nil
}

// Info returns the static host descriptor.
func (e *Effect) Info() Info {
	return Info{
		Name:       "DigiDist",
		Vendor:     "Dan Lipert",
		UniqueID:   3425221,
		Inputs:     Channels,
		Outputs:    Channels,
		Parameters: e.revision.parameterCount(),
	}
}

// Revision returns the active processing chain.
func (e *Effect) Revision() Revision { return e.revision }

// Threshold returns the stored threshold.
func (e *Effect) Threshold() float64 { return e.params[ParamThreshold] }

// Cutoff returns the stored smoothing coefficient.
func (e *Effect) Cutoff() float64 { return e.params[ParamCutoff] }

// FilterState returns the smoothing state seen by channel ch. It is (0, 0)
// for Revision1.
func (e *Effect) FilterState(ch int) (s0, s1 float64) {
	if e.filter == nil {
		return 0, 0
	}

	return e.filter.State(ch)
}

// Reset clears the smoothing state. Parameters are kept.
func (e *Effect) Reset() {
	if e.filter != nil {
		e.filter.Reset()
	}

	e.log.WithField("function", "Reset").Debug("DigiDist filter state cleared")
}

func fieldsFor(function string, index int, requested, stored float64) logrus.Fields {
	return logrus.Fields{
		"function":  function,
		"index":     index,
		"param":     paramTable[index].name,
		"requested": requested,
		"stored":    stored,
	}
}
