package viz

import (
	"math"

	"github.com/iburimskiy/preset-visualizer/internal/config"
)

// spectrum turns the latest PCM window into smoothed band magnitudes.
type spectrum struct {
	bands []float64
	pcm   [][2]float64
	beat  float64 // average band energy of the last update
}

func newSpectrum(n int) *spectrum {
	return &spectrum{bands: make([]float64, n)}
}

// addPCM replaces the sample window analysed by the next update.
func (s *spectrum) addPCM(samples [][2]float64) {
	s.pcm = append(s.pcm[:0], samples...)
}

func (s *spectrum) update(sensitivity float64) {
	samples := s.pcm
	nBands := len(s.bands)
	if len(samples) == 0 || nBands == 0 {
		// decay towards silence
		for i := range s.bands {
			s.bands[i] *= config.SmoothingFactor
		}
		s.beat *= config.SmoothingFactor
		return
	}

	segmentSize := int(math.Max(1, float64(len(samples))/float64(nBands)))
	total := 0.0
	for i := 0; i < nBands; i++ {
		start := i * segmentSize
		end := start + segmentSize
		if start >= len(samples) {
			break
		}
		if end > len(samples) {
			end = len(samples)
		}

		var sumSquares float64
		for _, smp := range samples[start:end] {
			mono := (smp[0] + smp[1]) * 0.5
			sumSquares += mono * mono
		}

		rms := math.Sqrt(sumSquares / float64(end-start))
		mag := clamp01(math.Pow(rms, 0.3) * sensitivity) // aggressive compression for visual effect

		// Smooth with previous value
		s.bands[i] = config.SmoothingFactor*s.bands[i] + (1-config.SmoothingFactor)*mag
		total += s.bands[i]
	}
	s.beat = total / float64(nBands)
}

func (s *spectrum) at(i int) float64 {
	return s.bands[i%len(s.bands)]
}
