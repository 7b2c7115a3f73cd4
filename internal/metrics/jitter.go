package metrics

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Jitter describes the variation of frame times. Period and Amplitude are
// the strongest periodic component: it repeats every Period frames and
// swings Amplitude ms around the mean.
type Jitter struct {
	MeanMs    float64
	StdDevMs  float64
	Period    float64
	Amplitude float64
}

// FrameJitter analyses a run of frame times in ms. Fewer than four samples
// give only the mean and deviation.
func FrameJitter(frameMs []float64) Jitter {
	n := len(frameMs)
	if n == 0 {
		return Jitter{}
	}

	var j Jitter
	for _, v := range frameMs {
		j.MeanMs += v
	}
	j.MeanMs /= float64(n)
	for _, v := range frameMs {
		d := v - j.MeanMs
		j.StdDevMs += d * d
	}
	j.StdDevMs = math.Sqrt(j.StdDevMs / float64(n))
	if n < 4 || j.StdDevMs == 0 {
		return j
	}

	// periodic Hann window
	windowed := make([]float64, n)
	windowSum := 0.0
	for i, v := range frameMs {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
		windowed[i] = (v - j.MeanMs) * w
		windowSum += w
	}
	spectrum := fft.FFTReal(windowed)

	peak, peakMag := 0, 0.0
	for k := 1; k <= n/2; k++ {
		if mag := cmplx.Abs(spectrum[k]); mag > peakMag {
			peak, peakMag = k, mag
		}
	}
	if peak == 0 {
		return j
	}
	j.Period = float64(n) / float64(peak)
	j.Amplitude = 2 * peakMag / windowSum
	return j
}
