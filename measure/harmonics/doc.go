// Package harmonics measures harmonic distortion of a rendered test tone.
//
// AnalyzeSignal windows the signal with a periodic Hann window, transforms
// it with algo-fft and integrates the power around each harmonic of a known
// fundamental. Ratios are reported relative to the fundamental and split
// into odd and even orders, which makes the absence of even harmonics from a
// symmetric waveshaper directly observable.
//
// For exact results pick a fundamental that falls on an FFT bin, e.g.
// 750 Hz at 48 kHz with a 4096-point transform.
package harmonics
