package harmonics

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-digidist/dsp/core"
	"github.com/cwbudde/algo-digidist/dsp/window"
)

const (
	defaultMaxHarmonics = 9
	defaultCaptureBins  = 2
)

var errEmptySignal = errors.New("harmonics: signal is empty")

// Config holds analysis parameters.
type Config struct {
	SampleRate      float64
	FundamentalFreq float64
	// FFTSize defaults to the next power of two >= len(signal).
	FFTSize int
	// MaxHarmonics counts orders above the fundamental; defaults to 9.
	MaxHarmonics int
	// CaptureBins is the half-width of the integration band; defaults to 2.
	CaptureBins int
}

// Result holds the measurement.
type Result struct {
	FundamentalFreq float64
	// FundamentalLevel is the estimated peak amplitude of the fundamental.
	FundamentalLevel float64
	// Harmonics[i] is the amplitude ratio of order i+2 to the fundamental.
	Harmonics []float64
	THD       float64
	THDdB     float64
	OddHD     float64
	EvenHD    float64
}

// AnalyzeSignal measures the harmonic content of signal.
func AnalyzeSignal(signal []float64, cfg Config) (Result, error) {
	if len(signal) == 0 {
		return Result{}, errEmptySignal
	}

	if cfg.SampleRate <= 0 || !core.IsFinite(cfg.SampleRate) {
		return Result{}, fmt.Errorf("harmonics sample rate must be > 0 and finite: %f", cfg.SampleRate)
	}

	if !core.IsFinite(cfg.FundamentalFreq) || cfg.FundamentalFreq <= 0 || cfg.FundamentalFreq >= cfg.SampleRate/2 {
		return Result{}, fmt.Errorf("harmonics fundamental must be in (0, %g): %f",
			cfg.SampleRate/2, cfg.FundamentalFreq)
	}

	fftSize := cfg.FFTSize
	if fftSize <= 0 {
		fftSize = nextPowerOf2(len(signal))
	}

	if fftSize < len(signal) {
		return Result{}, fmt.Errorf("harmonics FFT size %d is shorter than signal %d", fftSize, len(signal))
	}

	maxHarmonics := cfg.MaxHarmonics
	if maxHarmonics <= 0 {
		maxHarmonics = defaultMaxHarmonics
	}

	capture := cfg.CaptureBins
	if capture <= 0 {
		capture = defaultCaptureBins
	}

	power, winEnergy, err := powerSpectrum(signal, fftSize)
	if err != nil {
		return Result{}, err
	}

	binHz := cfg.SampleRate / float64(fftSize)
	fundBin := int(math.Round(cfg.FundamentalFreq / binHz))
	maxBin := len(power) - 1

	if fundBin < 1 || fundBin > maxBin {
		return Result{}, fmt.Errorf("harmonics fundamental bin out of range: %d", fundBin)
	}

	if capture*2 >= fundBin {
		capture = max((fundBin-1)/2, 0)
	}

	fundPower := bandPower(power, fundBin, capture)
	res := Result{
		FundamentalFreq:  float64(fundBin) * binHz,
		FundamentalLevel: math.Sqrt(4 * fundPower / (float64(fftSize) * winEnergy)),
	}

	if fundPower <= 0 {
		return res, nil
	}

	var total, odd, even float64

	res.Harmonics = make([]float64, 0, maxHarmonics)

	for k := 2; k <= maxHarmonics+1; k++ {
		bin := k * fundBin
		if bin > maxBin {
			break
		}

		p := bandPower(power, bin, capture) / fundPower
		res.Harmonics = append(res.Harmonics, math.Sqrt(p))

		total += p
		if k%2 == 0 {
			even += p
		} else {
			odd += p
		}
	}

	res.THD = math.Sqrt(total)
	res.THDdB = core.LinearToDB(res.THD)
	res.OddHD = math.Sqrt(odd)
	res.EvenHD = math.Sqrt(even)

	return res, nil
}

// powerSpectrum returns |X[k]|^2 for bins [0..fftSize/2] of the Hann-windowed
// signal together with the window's sum of squares.
func powerSpectrum(signal []float64, fftSize int) ([]float64, float64, error) {
	win := window.Generate(window.TypeHann, len(signal), window.WithPeriodic())

	buf := append([]float64(nil), signal...)

	err := window.ApplyCoefficientsInPlace(buf, win)
	if err != nil {
		return nil, 0, fmt.Errorf("harmonics window: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range buf {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, 0, fmt.Errorf("harmonics FFT plan: %w", err)
	}

	out := make([]complex128, fftSize)

	err = plan.Forward(out, in)
	if err != nil {
		return nil, 0, fmt.Errorf("harmonics FFT: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	return power, window.Energy(win), nil
}

func bandPower(power []float64, center, capture int) float64 {
	lo := max(center-capture, 0)
	hi := min(center+capture, len(power)-1)

	sum := 0.0
	for i := lo; i <= hi; i++ {
		sum += power[i]
	}

	return sum
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
