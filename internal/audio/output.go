package audio

import (
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/preset-visualizer/internal/config"
)

// Output plays the device stream.
type Output interface {
	Play(s beep.Streamer) error
	Clear()
}

// Speaker plays through the default sound card at config.SampleRate.
type Speaker struct {
	once sync.Once
	err  error
}

func (s *Speaker) init() error {
	s.once.Do(func() {
		sr := beep.SampleRate(config.SampleRate)
		s.err = speaker.Init(sr, sr.N(time.Second/20))
	})
	return s.err
}

func (s *Speaker) Play(st beep.Streamer) error {
	if err := s.init(); err != nil {
		return err
	}
	speaker.Play(st)
	return nil
}

func (s *Speaker) Clear() {
	if s.init() != nil {
		return
	}
	speaker.Clear()
}
