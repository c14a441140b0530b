package renderloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/preset-visualizer/internal/input"
	"github.com/iburimskiy/preset-visualizer/internal/notify"
	"github.com/iburimskiy/preset-visualizer/internal/viz"
)

func TestWheel(t *testing.T) {
	h := newHarness("a.milk", "b.milk", "c.milk")
	h.playlist.Play(0, true)

	h.send(input.Event{Kind: input.Wheel, WheelY: 1})
	assert.Equal(t, 1, h.playlist.Position())

	h.send(input.Event{Kind: input.Wheel, WheelY: -2})
	assert.Equal(t, 0, h.playlist.Position())

	h.send(input.Event{Kind: input.Wheel, WheelY: 0})
	assert.Equal(t, 1, h.playlist.nexts)
	assert.Equal(t, 1, h.playlist.previouses)
}

func TestWheelSuppressedWhileGUIWantsMouse(t *testing.T) {
	h := newHarness("a.milk", "b.milk")
	h.playlist.Play(0, true)
	h.gui.wantsMouse = true

	h.send(input.Event{Kind: input.Wheel, WheelY: 1})

	assert.Equal(t, 0, h.playlist.Position())
	assert.Len(t, h.gui.seen, 1, "the overlay still sees the event")
}

func TestKeyboardSuppressedWhileGUIWantsKeyboard(t *testing.T) {
	h := newHarness()
	h.gui.wantsKeyboard = true

	h.send(keyDown(input.KeyLShift, 0), keyDown(input.KeyN, 0))

	assert.False(t, h.loop.keys.Shift)
	assert.Empty(t, h.playback)
}

func TestModifierTracking(t *testing.T) {
	h := newHarness()

	h.send(keyDown(input.KeyLShift, 0), keyDown(input.KeyRAlt, 0))
	assert.Equal(t, input.Modifiers{Shift: true, Alt: true}, h.loop.keys)

	h.send(keyUp(input.KeyRShift), keyUp(input.KeyLMeta))
	assert.Equal(t, input.Modifiers{Alt: true}, h.loop.keys)
}

func TestPlaybackKeysCarryShift(t *testing.T) {
	h := newHarness()

	h.send(keyDown(input.KeyN, 0))
	h.send(keyDown(input.KeyLShift, input.ModLShift), keyDown(input.KeyP, input.ModLShift))
	h.send(keyDown(input.KeyY, input.ModLShift))
	h.send(keyUp(input.KeyLShift), keyDown(input.KeyR, 0), keyDown(input.KeyBackspace, 0), keyDown(input.KeySpace, 0))

	assert.Equal(t, []notify.PlaybackControl{
		{Action: notify.NextPreset},
		{Action: notify.PreviousPreset, Alternate: true},
		{Action: notify.ToggleShuffle},
		{Action: notify.RandomPreset},
		{Action: notify.LastPreset},
		{Action: notify.TogglePresetLocked},
	}, h.playback)
}

func TestKeyUpPerformsNoAction(t *testing.T) {
	h := newHarness()
	h.send(keyUp(input.KeyN), keyUp(input.KeyEscape))
	assert.Empty(t, h.playback)
	assert.False(t, h.gui.visible)
}

func TestModifierGatedShortcuts(t *testing.T) {
	h := newHarness()

	h.send(keyDown(input.KeyF, 0), keyDown(input.KeyI, 0), keyDown(input.KeyM, 0), keyDown(input.KeyC, 0))
	assert.Equal(t, 0, h.window.fullscreen)
	assert.Equal(t, 0, h.audio.nextDevices)
	assert.Equal(t, 0, h.window.displays)
	assert.Equal(t, 0, h.engine.clipboard)

	h.send(keyDown(input.KeyF, input.ModLCtrl), keyDown(input.KeyI, input.ModLMeta),
		keyDown(input.KeyM, input.ModRMeta), keyDown(input.KeyC, input.ModLCtrl))
	assert.Equal(t, 1, h.window.fullscreen)
	assert.Equal(t, 1, h.audio.nextDevices)
	assert.Equal(t, 1, h.window.displays)
	assert.Equal(t, 1, h.engine.clipboard)
}

func TestQuitShortcut(t *testing.T) {
	h := newHarness()

	h.send(keyDown(input.KeyQ, 0))
	assert.False(t, h.loop.WantsToQuit())

	h.send(keyDown(input.KeyQ, input.ModLCtrl))
	assert.True(t, h.loop.WantsToQuit())
}

func TestQuitEvent(t *testing.T) {
	h := newHarness()
	h.send(input.Event{Kind: input.Quit})
	assert.True(t, h.loop.WantsToQuit())
}

func TestToggleGUIShowsCursor(t *testing.T) {
	h := newHarness()

	h.send(keyDown(input.KeyEscape, 0))
	h.send(keyDown(input.KeyEscape, 0))

	assert.Equal(t, []bool{true, false}, h.window.cursor)
}

func TestAspectCorrectionAndSensitivity(t *testing.T) {
	h := newHarness()
	h.engine.aspect = true

	h.send(keyDown(input.KeyA, 0), keyDown(input.KeyArrowUp, 0), keyDown(input.KeyArrowDown, 0), keyDown(input.KeyArrowDown, 0))

	assert.False(t, h.engine.aspect)
	assert.Equal(t, []float32{0.01, -0.01, -0.01}, h.engine.sensitivity)
}

func TestUnknownKeyIgnored(t *testing.T) {
	h := newHarness()
	h.send(keyDown(input.KeyUnknown, input.ModLCtrl), keyDown(input.KeyZ, 0))
	assert.Empty(t, h.playback)
	assert.False(t, h.loop.WantsToQuit())
}

func TestShiftClickAddsTouch(t *testing.T) {
	h := newHarness()
	left := input.Event{Kind: input.MouseDown, Button: input.MouseLeft, X: 200, Y: 150}

	h.send(left)
	assert.Empty(t, h.engine.touches, "no touch without shift")

	h.send(keyDown(input.KeyLShift, input.ModLShift), left)
	require.Len(t, h.engine.touches, 1)
	assert.InDelta(t, 0.25, h.engine.touches[0].x, 1e-6)
	assert.InDelta(t, 0.75, h.engine.touches[0].y, 1e-6)
	assert.Equal(t, viz.TouchRandom, h.engine.touches[0].kind)

	h.send(left)
	assert.Len(t, h.engine.touches, 1, "drag in progress")

	h.send(input.Event{Kind: input.MouseUp, Button: input.MouseLeft}, left)
	assert.Len(t, h.engine.touches, 2)
}

func TestRightClickTogglesFullscreen(t *testing.T) {
	h := newHarness()
	h.send(input.Event{Kind: input.MouseDown, Button: input.MouseRight})
	assert.Equal(t, 1, h.window.fullscreen)

	h.gui.wantsMouse = true
	h.send(input.Event{Kind: input.MouseDown, Button: input.MouseRight})
	assert.Equal(t, 1, h.window.fullscreen)
}

func TestControllerLifecycleForwarded(t *testing.T) {
	h := newHarness()
	h.send(input.Event{Kind: input.ControllerAdded, Controller: 3}, input.Event{Kind: input.ControllerRemoved, Controller: 3})
	assert.Equal(t, []input.ControllerID{3}, h.window.added)
	assert.Equal(t, []input.ControllerID{3}, h.window.removed)
}

func TestControllerButtons(t *testing.T) {
	h := newHarness()
	h.window.ours[1] = true
	btn := func(id input.ControllerID, b input.ControllerButton) input.Event {
		return input.Event{Kind: input.ControllerButtonDown, Controller: id, ControllerButton: b}
	}

	h.send(btn(2, input.ButtonA))
	assert.Equal(t, 0, h.window.fullscreen, "foreign controller ignored")

	h.send(btn(1, input.ButtonA), btn(1, input.ButtonLeftShoulder), btn(1, input.ButtonRightShoulder),
		btn(1, input.ButtonDPadUp), btn(1, input.ButtonDPadLeft), btn(1, input.ButtonStart))
	assert.Equal(t, 1, h.window.fullscreen)
	assert.Equal(t, 1, h.audio.nextDevices)
	assert.Equal(t, 1, h.window.displays)
	assert.Equal(t, []float32{0.05}, h.engine.sensitivity)
	assert.Equal(t, []notify.PlaybackControl{{Action: notify.PreviousPreset}}, h.playback)
	assert.True(t, h.gui.visible)

	h.send(input.Event{Kind: input.ControllerButtonUp, Controller: 1, ControllerButton: input.ButtonBack})
	assert.False(t, h.loop.WantsToQuit(), "button up is a no-op")

	h.send(btn(1, input.ButtonBack))
	assert.True(t, h.loop.WantsToQuit())
}

func TestControllerPlaybackCarriesShift(t *testing.T) {
	h := newHarness()
	h.window.ours[1] = true
	btn := func(b input.ControllerButton) input.Event {
		return input.Event{Kind: input.ControllerButtonDown, Controller: 1, ControllerButton: b}
	}

	h.send(keyDown(input.KeyLShift, input.ModLShift), btn(input.ButtonB), btn(input.ButtonGuide), btn(input.ButtonY))
	h.send(keyUp(input.KeyLShift), btn(input.ButtonB), btn(input.ButtonDPadRight))

	assert.Equal(t, []notify.PlaybackControl{
		{Action: notify.RandomPreset, Alternate: true},
		{Action: notify.LastPreset, Alternate: true},
		{Action: notify.ToggleShuffle},
		{Action: notify.RandomPreset},
		{Action: notify.NextPreset},
	}, h.playback)
}

func TestPollEventsFlushesQueuedNotifications(t *testing.T) {
	h := newHarness()
	h.center.Enqueue(notify.Toast{Text: "from remote"})

	h.loop.PollEvents()
	assert.Equal(t, []string{"from remote"}, h.toasts)
}
