package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iburimskiy/preset-visualizer/internal/notify"
)

func TestForKey(t *testing.T) {
	b := DefaultBindings()

	tests := []struct {
		name     string
		key      Key
		modifier bool
		want     Action
		found    bool
	}{
		{"escape toggles gui", KeyEscape, false, Action{Kind: ActionToggleGUI}, true},
		{"a toggles aspect", KeyA, false, Action{Kind: ActionToggleAspectCorrection}, true},
		{"c without modifier", KeyC, false, Action{}, false},
		{"c with modifier", KeyC, true, Action{Kind: ActionCopyPresetName}, true},
		{"f with modifier", KeyF, true, Action{Kind: ActionToggleFullscreen}, true},
		{"q without modifier", KeyQ, false, Action{}, false},
		{"q with modifier", KeyQ, true, Action{Kind: ActionQuit}, true},
		{"n next", KeyN, false, Action{Kind: ActionPlayback, Playback: notify.NextPreset, UseShift: true}, true},
		{"n ignores modifier", KeyN, true, Action{Kind: ActionPlayback, Playback: notify.NextPreset, UseShift: true}, true},
		{"backspace last", KeyBackspace, false, Action{Kind: ActionPlayback, Playback: notify.LastPreset, UseShift: true}, true},
		{"y shuffle", KeyY, false, Action{Kind: ActionPlayback, Playback: notify.ToggleShuffle}, true},
		{"space lock", KeySpace, false, Action{Kind: ActionPlayback, Playback: notify.TogglePresetLocked}, true},
		{"up", KeyArrowUp, false, Action{Kind: ActionBeatSensitivity, Delta: 0.01}, true},
		{"down", KeyArrowDown, false, Action{Kind: ActionBeatSensitivity, Delta: -0.01}, true},
		{"unbound", KeyZ, true, Action{}, false},
		{"modifier key alone", KeyLShift, false, Action{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := b.ForKey(tt.key, tt.modifier)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForButton(t *testing.T) {
	b := DefaultBindings()

	a, ok := b.ForButton(ButtonBack)
	assert.True(t, ok)
	assert.Equal(t, ActionQuit, a.Kind)

	a, ok = b.ForButton(ButtonDPadUp)
	assert.True(t, ok)
	assert.InDelta(t, 0.05, a.Delta, 1e-6)

	a, ok = b.ForButton(ButtonDPadRight)
	assert.True(t, ok)
	assert.Equal(t, notify.NextPreset, a.Playback)

	_, ok = b.ForButton(ButtonUnknown)
	assert.False(t, ok)
}

func TestBindingsAreUnique(t *testing.T) {
	b := DefaultBindings()

	keys := map[Key]bool{}
	for _, kb := range b.Keys {
		assert.False(t, keys[kb.Key], "key %d bound twice", kb.Key)
		keys[kb.Key] = true
	}
	buttons := map[ControllerButton]bool{}
	for _, cb := range b.Controllers {
		assert.False(t, buttons[cb.Button], "button %d bound twice", cb.Button)
		buttons[cb.Button] = true
	}
}
