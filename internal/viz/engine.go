// Package viz is the preset-driven visualization engine: it owns the preset
// playlist, turns captured audio into spectrum bands and renders one frame of
// the active preset per call.
package viz

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/preset-visualizer/internal/config"
	"github.com/iburimskiy/preset-visualizer/internal/notify"
	"github.com/iburimskiy/preset-visualizer/internal/playlist"
)

const (
	minSensitivity = 0
	maxSensitivity = 5

	softTransition = 1500 * time.Millisecond
)

// Notifier is the part of the notification center the engine uses.
type Notifier interface {
	PublishToast(t notify.Toast)
	OnPlayback(fn func(notify.PlaybackControl)) (remove func())
}

// Surface hands out the image the next frame is drawn into.
type Surface interface {
	Surface() *ebiten.Image
}

// Clipboard receives the copied preset name.
type Clipboard interface {
	WriteText(s string) error
}

type Options struct {
	Playlist  *playlist.Playlist
	Notifier  Notifier
	Surface   Surface
	Clipboard Clipboard
	Config    *config.UserConfig
	Logger    zerolog.Logger

	// DebugDir receives frames written by WriteDebugImageOnNextFrame.
	DebugDir string
}

// Status is a snapshot of the engine state for the overlay.
type Status struct {
	Preset      string
	Index       int
	Count       int
	Shuffle     bool
	Locked      bool
	FPS         float64
	Sensitivity float32
	Width       int
	Height      int
}

type Engine struct {
	playlist  *playlist.Playlist
	notifier  Notifier
	surface   Surface
	clipboard Clipboard
	log       zerolog.Logger
	debugDir  string

	targetFPS      int
	presetDuration time.Duration

	width, height    int
	aspectCorrection bool
	sensitivity      float32
	locked           bool
	realFPS          float64
	writeDebugImage  bool

	preset     string
	from, to   style
	switchedAt time.Time
	transition time.Duration
	spec       *spectrum
	touches    []touchWave
	time       float64
	rotation   float64
	colorPhase float64
	removePlay func()

	rng *rand.Rand
	now func() time.Time
}

func New(o Options) *Engine {
	cfg := o.Config
	if cfg == nil {
		cfg = config.Default()
	}
	e := &Engine{
		playlist:         o.Playlist,
		notifier:         o.Notifier,
		surface:          o.Surface,
		clipboard:        o.Clipboard,
		log:              o.Logger.With().Str("component", "viz").Logger(),
		debugDir:         o.DebugDir,
		targetFPS:        cfg.TargetFPS,
		presetDuration:   cfg.PresetDuration,
		aspectCorrection: cfg.AspectCorrection,
		sensitivity:      clampSensitivity(cfg.BeatSensitivity),
		from:             idleStyle,
		to:               idleStyle,
		spec:             newSpectrum(config.SpectrumBands),
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())),
		now:              time.Now,
	}
	if e.playlist == nil {
		e.playlist = playlist.New()
	}
	e.playlist.SetShuffle(cfg.Shuffle)
	e.playlist.SetPresetSwitchedCallback(e.presetSwitched)
	if e.notifier != nil {
		e.removePlay = e.notifier.OnPlayback(e.playbackControl)
	}
	e.switchedAt = e.now()
	return e
}

// Close detaches the engine from the notification center.
func (e *Engine) Close() {
	if e.removePlay != nil {
		e.removePlay()
		e.removePlay = nil
	}
}

func (e *Engine) Playlist() *playlist.Playlist { return e.playlist }

func (e *Engine) TargetFPS() int { return e.targetFPS }

// SetTargetFPS changes the frame rate target; zero or less means unlimited.
func (e *Engine) SetTargetFPS(fps int) { e.targetFPS = max(fps, 0) }

// DisplayInitialPreset starts playback, picking a random preset when shuffling.
func (e *Engine) DisplayInitialPreset() {
	if e.playlist.Len() == 0 {
		e.toast("No presets loaded, drop preset files or folders onto the window")
		return
	}
	if e.playlist.Shuffle() {
		e.playlist.PlayRandom(true)
		return
	}
	e.playlist.PlayNext(true)
}

func (e *Engine) SetWindowSize(width, height int) {
	e.width, e.height = width, height
}

func (e *Engine) AspectCorrection() bool { return e.aspectCorrection }

func (e *Engine) SetAspectCorrection(enabled bool) {
	e.aspectCorrection = enabled
}

// Touch adds a waveform at x, y in 0..1 coordinates, origin bottom left.
func (e *Engine) Touch(x, y float32, pressure int, kind TouchType) {
	t := touchWave{
		x:        clamp01(float64(x)),
		y:        clamp01(float64(y)),
		kind:     resolveTouch(kind, e.rng),
		pressure: pressure,
		born:     e.now(),
	}
	e.touches = append(e.touches, t)
	if len(e.touches) > config.MaxTouches {
		e.touches = e.touches[len(e.touches)-config.MaxTouches:]
	}
}

func (e *Engine) ChangeBeatSensitivity(delta float32) {
	e.sensitivity = clampSensitivity(e.sensitivity + delta)
	e.toast(fmt.Sprintf("Beat Sensitivity: %.2f", e.sensitivity))
}

func (e *Engine) BeatSensitivity() float32 { return e.sensitivity }

func (e *Engine) UpdateRealFPS(fps float64) { e.realFPS = fps }

func (e *Engine) WriteDebugImageOnNextFrame() { e.writeDebugImage = true }

func (e *Engine) Locked() bool { return e.locked }

// AddPCM hands the engine the latest captured sample window.
func (e *Engine) AddPCM(samples [][2]float64) {
	e.spec.addPCM(samples)
}

// PresetFileNameToClipboard copies the current preset's path.
func (e *Engine) PresetFileNameToClipboard() {
	preset, ok := e.playlist.Current()
	if !ok || e.clipboard == nil {
		return
	}
	if err := e.clipboard.WriteText(preset); err != nil {
		e.log.Warn().Err(err).Msg("clipboard write failed")
		return
	}
	e.toast("Copied preset name to clipboard")
}

// Session reports the settings changed from the keyboard during this run.
func (e *Engine) Session() config.Session {
	return config.Session{
		Shuffle:          e.playlist.Shuffle(),
		BeatSensitivity:  e.sensitivity,
		AspectCorrection: e.aspectCorrection,
	}
}

func (e *Engine) Status() Status {
	return Status{
		Preset:      DisplayName(e.preset),
		Index:       e.playlist.Position(),
		Count:       e.playlist.Len(),
		Shuffle:     e.playlist.Shuffle(),
		Locked:      e.locked,
		FPS:         e.realFPS,
		Sensitivity: e.sensitivity,
		Width:       e.width,
		Height:      e.height,
	}
}

// RenderFrame advances the animation and draws it into the current surface.
func (e *Engine) RenderFrame() {
	now := e.now()
	e.advancePreset(now)

	step := 1.0 / 60
	if e.realFPS > 0 {
		step = 1 / e.realFPS
	}
	e.time += step
	e.rotation += config.RotationSpeed * e.current(now).spin
	e.colorPhase += config.ColorShiftSpeed
	e.spec.update(float64(e.sensitivity))
	e.expireTouches(now)

	if e.surface == nil {
		return
	}
	dst := e.surface.Surface()
	if dst == nil {
		return
	}
	e.draw(dst, now)

	if e.writeDebugImage {
		e.writeDebugImage = false
		if path, err := writeFrame(dst, e.debugDir, now); err != nil {
			e.log.Error().Err(err).Msg("writing debug image failed")
		} else {
			e.log.Info().Str("path", path).Msg("wrote debug image")
		}
	}
}

// advancePreset switches to the next preset once the display time is over,
// unless the preset is locked.
func (e *Engine) advancePreset(now time.Time) {
	if e.locked || e.presetDuration <= 0 || e.playlist.Len() < 2 {
		return
	}
	if now.Sub(e.switchedAt) >= e.presetDuration {
		e.playlist.PlayNext(false)
	}
}

func (e *Engine) presetSwitched(hardCut bool, index int, preset string) {
	now := e.now()
	e.from = e.current(now)
	e.to = styleFor(preset)
	e.preset = preset
	e.switchedAt = now
	e.transition = softTransition
	if hardCut {
		e.transition = 0
	}
	e.log.Debug().Str("preset", preset).Int("index", index).Bool("hard_cut", hardCut).Msg("preset switched")
}

// current returns the style in effect at now, blending during a transition.
func (e *Engine) current(now time.Time) style {
	if e.transition <= 0 {
		return e.to
	}
	t := float64(now.Sub(e.switchedAt)) / float64(e.transition)
	if t >= 1 {
		return e.to
	}
	return e.from.lerp(e.to, t)
}

func (e *Engine) playbackControl(p notify.PlaybackControl) {
	hardCut := p.Alternate
	switch p.Action {
	case notify.NextPreset:
		e.playlist.PlayNext(hardCut)
	case notify.PreviousPreset:
		e.playlist.PlayPrevious(hardCut)
	case notify.RandomPreset:
		e.playlist.PlayRandom(hardCut)
	case notify.LastPreset:
		e.playlist.PlayLast(hardCut)
	case notify.ToggleShuffle:
		on := !e.playlist.Shuffle()
		e.playlist.SetShuffle(on)
		e.toast(onOff("Shuffle", on, "enabled", "disabled"))
	case notify.TogglePresetLocked:
		e.locked = !e.locked
		if !e.locked {
			// restart the display timer so an unlock does not switch at once
			e.switchedAt = e.now()
		}
		e.toast(onOff("Preset", e.locked, "locked", "unlocked"))
	}
}

func (e *Engine) expireTouches(now time.Time) {
	kept := e.touches[:0]
	for _, t := range e.touches {
		if now.Sub(t.born) < config.TouchLife {
			kept = append(kept, t)
		}
	}
	e.touches = kept
}

func (e *Engine) toast(msg string) {
	if e.notifier != nil {
		e.notifier.PublishToast(notify.Toast{Text: msg})
	}
}

func onOff(subject string, on bool, yes, no string) string {
	if on {
		return subject + " " + yes
	}
	return subject + " " + no
}

func clampSensitivity(v float32) float32 {
	return max(minSensitivity, min(v, maxSensitivity))
}
