package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// tap wraps a beep.Streamer and records the last N samples into a ring buffer
// so the engine can be fed the audio that was just played.
type tap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	filled    int
	mu        sync.RWMutex
}

func newTap(src beep.Streamer, ringSize int) *tap {
	return &tap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = samples[i]
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
			}
		}
		t.filled = min(t.filled+n, len(t.buffer))
		t.mu.Unlock()
	}
	return n, ok
}

func (t *tap) Err() error { return t.Source.Err() }

// snapshot appends up to the last n recorded samples to dst in chronological
// order.
func (t *tap) snapshot(dst [][2]float64, n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = min(n, t.filled)
	// Walk forward from the oldest of the last n samples
	idx := t.nextIndex - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := 0; i < n; i++ {
		dst = append(dst, t.buffer[idx])
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
	return dst
}
