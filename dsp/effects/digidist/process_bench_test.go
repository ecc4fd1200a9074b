package digidist

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/cwbudde/algo-digidist/internal/testutil"
)

func benchmarkEffect(b *testing.B, rev Revision) *Effect {
	b.Helper()

	logger, _ := test.NewNullLogger()

	e, err := New(WithRevision(rev), WithThreshold(0.3), WithCutoff(0.1), WithLogger(logrus.NewEntry(logger)))
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	return e
}

func BenchmarkProcess(b *testing.B) {
	for _, rev := range []Revision{Revision1, Revision2} {
		b.Run(rev.String(), func(b *testing.B) {
			e := benchmarkEffect(b, rev)
			sig := testutil.Float32(testutil.Noise(1, 1, 512))
			in := [][]float32{sig, sig}
			out := [][]float32{make([]float32, 512), make([]float32, 512)}

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				e.Process(in, out)
			}
		})
	}
}

func BenchmarkProcess64(b *testing.B) {
	for _, rev := range []Revision{Revision1, Revision2} {
		b.Run(rev.String(), func(b *testing.B) {
			e := benchmarkEffect(b, rev)
			in := testutil.Stereo(testutil.Noise(1, 1, 512), testutil.Noise(2, 1, 512))
			out := [][]float64{make([]float64, 512), make([]float64, 512)}

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				e.Process64(in, out)
			}
		})
	}
}
