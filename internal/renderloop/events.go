package renderloop

import (
	"github.com/iburimskiy/preset-visualizer/internal/input"
	"github.com/iburimskiy/preset-visualizer/internal/notify"
	"github.com/iburimskiy/preset-visualizer/internal/viz"
)

// PollEvents delivers queued notifications and handles every pending window
// event. The overlay sees each event first; while it wants the mouse or the
// keyboard, events of that category stop there.
func (l *Loop) PollEvents() {
	l.notifier.Flush()

	for {
		ev, ok := l.window.PollEvent()
		if !ok {
			return
		}
		l.gui.ProcessInput(ev)
		l.dispatch(ev)
	}
}

func (l *Loop) dispatch(ev input.Event) {
	if ev.IsMouse() && l.gui.WantsMouseInput() {
		return
	}
	if ev.IsKeyboard() && l.gui.WantsKeyboardInput() {
		return
	}

	switch ev.Kind {
	case input.Wheel:
		l.scrollEvent(ev)

	case input.KeyDown:
		l.keyEvent(ev, true)

	case input.KeyUp:
		l.keyEvent(ev, false)

	case input.MouseDown:
		l.mouseDownEvent(ev)

	case input.MouseUp:
		l.mouseUpEvent(ev)

	case input.ControllerAdded:
		l.log.Debug().Int("controller", int(ev.Controller)).Msg("controller added")
		l.window.ControllerAdd(ev.Controller)

	case input.ControllerRemoved:
		l.log.Debug().Int("controller", int(ev.Controller)).Msg("controller removed")
		l.window.ControllerRemove(ev.Controller)

	case input.ControllerButtonDown:
		l.controllerDownEvent(ev)

	case input.ControllerButtonUp:
		// Button releases carry no action.

	case input.Drop:
		l.dropEvent(ev)

	case input.Quit:
		l.wantsToQuit.Store(true)
	}
}

func (l *Loop) scrollEvent(ev input.Event) {
	// Wheel up is positive
	switch {
	case ev.WheelY > 0:
		l.playlist.PlayNext(true)
	case ev.WheelY < 0:
		l.playlist.PlayPrevious(true)
	}
}

func (l *Loop) keyEvent(ev input.Event, down bool) {
	l.keys.Track(ev.Key, down)
	if !down {
		return
	}

	action, ok := l.bindings.ForKey(ev.Key, input.CommandHeld(ev.Mod))
	if !ok {
		return
	}
	l.perform(action)
}

func (l *Loop) controllerDownEvent(ev input.Event) {
	if !l.window.ControllerIsOurs(ev.Controller) {
		return
	}

	action, ok := l.bindings.ForButton(ev.ControllerButton)
	if !ok {
		return
	}
	l.log.Debug().Int("controller", int(ev.Controller)).Uint8("button", uint8(ev.ControllerButton)).Msg("controller button pressed")
	l.perform(action)
}

func (l *Loop) perform(a input.Action) {
	switch a.Kind {
	case input.ActionToggleGUI:
		l.gui.Toggle()
		l.window.ShowCursor(l.gui.Visible())

	case input.ActionToggleAspectCorrection:
		l.engine.SetAspectCorrection(!l.engine.AspectCorrection())

	case input.ActionCopyPresetName:
		l.engine.PresetFileNameToClipboard()

	case input.ActionToggleFullscreen:
		l.window.ToggleFullscreen()

	case input.ActionNextAudioDevice:
		l.audio.NextAudioDevice()

	case input.ActionNextDisplay:
		l.window.NextDisplay()

	case input.ActionPlayback:
		l.notifier.PublishPlayback(notify.PlaybackControl{
			Action:    a.Playback,
			Alternate: a.UseShift && l.keys.Shift,
		})

	case input.ActionQuit:
		l.wantsToQuit.Store(true)

	case input.ActionBeatSensitivity:
		l.engine.ChangeBeatSensitivity(a.Delta)

	case input.ActionDebugImage:
		l.engine.WriteDebugImageOnNextFrame()
	}
}

func (l *Loop) mouseDownEvent(ev input.Event) {
	switch ev.Button {
	case input.MouseLeft:
		if l.mouseDown || !l.keys.Shift {
			return
		}
		// TODO: tell a click (add waveform) apart from a drag (move waveform).
		width, height := l.window.DrawableSize()
		if width <= 0 || height <= 0 {
			return
		}

		// The engine uses 0..1 coordinates with the origin at the bottom left.
		x := float32(ev.X) / float32(width)
		y := float32(height-ev.Y) / float32(height)

		l.engine.Touch(x, y, 0, viz.TouchRandom)
		l.log.Debug().Int("x", ev.X).Int("y", ev.Y).Msg("added random waveform")

		l.mouseDown = true

	case input.MouseRight:
		l.window.ToggleFullscreen()
	}
}

func (l *Loop) mouseUpEvent(ev input.Event) {
	if ev.Button == input.MouseLeft {
		l.mouseDown = false
	}
}
