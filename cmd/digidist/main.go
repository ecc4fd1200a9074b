// Command digidist renders a sine test tone through the DigiDist effect and
// reports the parameter display and the harmonic content of the result.
//
// Usage:
//
//	digidist [flags]
//
// Examples:
//
//	digidist -threshold 0.3
//	digidist -revision 1 -threshold 0.1 -freq 750
//	digidist -cutoff 0.05 -shared-state -v
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-digidist/dsp/core"
	"github.com/cwbudde/algo-digidist/dsp/effects/digidist"
	"github.com/cwbudde/algo-digidist/measure/harmonics"
)

type options struct {
	revision    int
	threshold   float64
	cutoff      float64
	sharedState bool
	freq        float64
	amp         float64
	rate        float64
	size        int
	block       int
	verbose     bool
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("digidist", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.IntVar(&o.revision, "revision", 2, "processing chain: 1 (waveshaper) or 2 (waveshaper + smoothing)")
	fs.Float64Var(&o.threshold, "threshold", 1, "clip threshold as a fraction of full scale")
	fs.Float64Var(&o.cutoff, "cutoff", 1, "smoothing coefficient (revision 2)")
	fs.BoolVar(&o.sharedState, "shared-state", false, "share one smoothing state across both channels")
	fs.Float64Var(&o.freq, "freq", 750, "test tone frequency in Hz")
	fs.Float64Var(&o.amp, "amp", 1, "test tone peak amplitude")
	fs.Float64Var(&o.rate, "rate", 48000, "sample rate in Hz")
	fs.IntVar(&o.size, "size", 4096, "rendered length in samples")
	fs.IntVar(&o.block, "block", 256, "host block size in samples")
	fs.BoolVar(&o.verbose, "v", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if o.size <= 0 || o.block <= 0 {
		return fmt.Errorf("size and block must be > 0: %d, %d", o.size, o.block)
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if o.verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	entry := log.WithField("component", "digidist")

	fx, err := digidist.New(
		digidist.WithRevision(digidist.Revision(o.revision)),
		digidist.WithSharedFilterState(o.sharedState),
		digidist.WithLogger(entry),
	)
	if err != nil {
		return err
	}

	// Go through the host path so the floor applies exactly as in a host.
	fx.SetParameter(digidist.ParamThreshold, o.threshold)
	fx.SetParameter(digidist.ParamCutoff, o.cutoff)

	out := render(fx, o)

	entry.WithFields(logrus.Fields{
		"function": "run",
		"samples":  o.size,
		"block":    o.block,
	}).Debug("Test tone rendered")

	res, err := harmonics.AnalyzeSignal(out[0], harmonics.Config{
		SampleRate:      o.rate,
		FundamentalFreq: o.freq,
	})
	if err != nil {
		return err
	}

	return report(stdout, fx, out, res)
}

// render feeds a stereo sine through fx in host-sized blocks.
func render(fx *digidist.Effect, o options) [][]float64 {
	out := [][]float64{make([]float64, o.size), make([]float64, o.size)}

	step := 2 * math.Pi * o.freq / o.rate
	for i := range o.size {
		v := o.amp * math.Sin(step*float64(i))
		out[0][i] = v
		out[1][i] = v
	}

	for start := 0; start < o.size; start += o.block {
		end := min(start+o.block, o.size)
		blk := [][]float64{out[0][start:end], out[1][start:end]}
		fx.Process64(blk, blk)
	}

	return out
}

func report(w io.Writer, fx *digidist.Effect, out [][]float64, res harmonics.Result) error {
	info := fx.Info()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s by %s (id %d, %s)\n\n", info.Name, info.Vendor, info.UniqueID, fx.Revision())
	fmt.Fprintf(tw, "Parameter\tValue\tDisplay\tLabel\n")
	fmt.Fprintf(tw, "---------\t-----\t-------\t-----\n")

	for _, p := range fx.Parameters() {
		fmt.Fprintf(tw, "%s\t%.4f\t%s\t%s\n",
			p.Name, fx.Parameter(p.Index), fx.ParameterText(p.Index), fx.ParameterLabel(p.Index))
	}

	fmt.Fprintf(tw, "\nChannel\tPeak\tPeak [dB]\n")
	fmt.Fprintf(tw, "-------\t----\t---------\n")

	for ch, buf := range out {
		p := peak(buf)
		fmt.Fprintf(tw, "%d\t%.6f\t%.2f\n", ch, p, core.LinearToDB(p))
	}

	fmt.Fprintf(tw, "\nFundamental [Hz]\tLevel\tTHD\tTHD [dB]\tOdd HD\tEven HD\n")
	fmt.Fprintf(tw, "----------------\t-----\t---\t--------\t------\t-------\n")
	fmt.Fprintf(tw, "%.2f\t%.6f\t%.6f\t%.2f\t%.6f\t%.6f\n",
		res.FundamentalFreq, res.FundamentalLevel, res.THD, res.THDdB, res.OddHD, res.EvenHD)

	return tw.Flush()
}

func peak(buf []float64) float64 {
	p := 0.0
	for _, v := range buf {
		p = math.Max(p, math.Abs(v))
	}

	return p
}
