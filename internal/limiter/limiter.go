// Package limiter caps the render loop to a target frame rate.
package limiter

import "time"

// Limiter measures frame time and sleeps away what is left of each frame's
// budget. A target of 0 disables the cap.
type Limiter struct {
	target     int
	frameStart time.Time
	lastStart  time.Time
	fps        float64

	now   func() time.Time
	sleep func(time.Duration)
}

func New() *Limiter {
	return &Limiter{now: time.Now, sleep: time.Sleep}
}

// TargetFPS sets the frame rate cap.
func (l *Limiter) TargetFPS(fps int) {
	if fps < 0 {
		fps = 0
	}
	l.target = fps
}

func (l *Limiter) StartFrame() {
	l.frameStart = l.now()
}

// EndFrame sleeps until the frame budget is used up and updates the measured
// rate. The measured rate covers the whole interval between two frame starts,
// sleep included.
func (l *Limiter) EndFrame() {
	if l.target > 0 {
		budget := time.Second / time.Duration(l.target)
		if spent := l.now().Sub(l.frameStart); spent < budget {
			l.sleep(budget - spent)
		}
	}

	end := l.now()
	if !l.lastStart.IsZero() {
		if d := l.frameStart.Sub(l.lastStart); d > 0 {
			l.fps = float64(time.Second) / float64(d)
		}
	} else if d := end.Sub(l.frameStart); d > 0 {
		l.fps = float64(time.Second) / float64(d)
	}
	l.lastStart = l.frameStart
}

// FPS returns the last measured frame rate.
func (l *Limiter) FPS() float64 {
	return l.fps
}
