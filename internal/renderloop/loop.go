// Package renderloop runs the application's frame loop: it polls window
// events, turns input into playback actions and drives one visualization
// frame per iteration.
package renderloop

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/iburimskiy/preset-visualizer/internal/input"
	"github.com/iburimskiy/preset-visualizer/internal/limiter"
	"github.com/iburimskiy/preset-visualizer/internal/notify"
)

type Loop struct {
	engine   Engine
	playlist Playlist
	audio    AudioCapture
	window   Window
	gui      GUI
	notifier Notifier
	settings Settings
	bindings *input.Bindings
	log      zerolog.Logger

	limiter *limiter.Limiter

	wantsToQuit atomic.Bool
	keys        input.Modifiers
	mouseDown   bool

	renderWidth  int
	renderHeight int
}

func New(d Deps) *Loop {
	b := d.Bindings
	if b == nil {
		b = input.DefaultBindings()
	}
	return &Loop{
		engine:   d.Engine,
		playlist: d.Playlist,
		audio:    d.Audio,
		window:   d.Window,
		gui:      d.GUI,
		notifier: d.Notifier,
		settings: d.Settings,
		bindings: b,
		log:      d.Logger.With().Str("component", "renderloop").Logger(),
		limiter:  limiter.New(),
	}
}

// Run renders frames until a quit is requested or ctx is done.
func (l *Loop) Run(ctx context.Context) {
	removeQuit := l.notifier.OnQuit(l.quitNotificationHandler)
	stop := context.AfterFunc(ctx, func() { l.wantsToQuit.Store(true) })

	l.engine.DisplayInitialPreset()

	for !l.wantsToQuit.Load() {
		l.limiter.TargetFPS(l.engine.TargetFPS())
		l.limiter.StartFrame()

		l.PollEvents()
		l.CheckViewportSize()
		l.audio.FillBuffer()
		l.engine.RenderFrame()
		l.gui.Draw()

		l.window.Swap()

		l.limiter.EndFrame()

		// Pass the engine the actual FPS of the last frame.
		l.engine.UpdateRealFPS(l.limiter.FPS())
	}

	stop()
	removeQuit()

	l.playlist.SetPresetSwitchedCallback(nil)
	l.log.Info().Msg("render loop stopped")
}

// Quit asks the loop to stop after the current frame. Safe from any goroutine.
func (l *Loop) Quit() {
	l.wantsToQuit.Store(true)
}

func (l *Loop) WantsToQuit() bool {
	return l.wantsToQuit.Load()
}

func (l *Loop) quitNotificationHandler(q notify.Quit) {
	l.log.Debug().Str("source", q.Source).Msg("quit requested")
	l.wantsToQuit.Store(true)
}

// CheckViewportSize pushes a changed drawable size to the engine and the
// overlay font metrics.
func (l *Loop) CheckViewportSize() {
	width, height := l.window.DrawableSize()
	if width == l.renderWidth && height == l.renderHeight {
		return
	}

	l.engine.SetWindowSize(width, height)
	l.renderWidth = width
	l.renderHeight = height

	l.gui.UpdateFontSize()

	l.log.Debug().Int("width", width).Int("height", height).Msg("resized rendering canvas")
}
