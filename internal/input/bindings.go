package input

import "github.com/iburimskiy/preset-visualizer/internal/notify"

// ActionKind discriminates the variants of Action.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionToggleGUI
	ActionToggleAspectCorrection
	ActionCopyPresetName
	ActionToggleFullscreen
	ActionNextAudioDevice
	ActionNextDisplay
	ActionPlayback // Playback, alternate flag from shift when UseShift
	ActionQuit
	ActionBeatSensitivity // Delta
	ActionDebugImage
)

// Action is what a key or controller button resolves to.
type Action struct {
	Kind     ActionKind
	Playback notify.Action
	UseShift bool
	Delta    float32
}

// KeyBinding maps a key, optionally gated by the command modifier, to an action.
type KeyBinding struct {
	Key           Key
	NeedsModifier bool
	Action        Action
}

// ControllerBinding maps a controller button to an action.
type ControllerBinding struct {
	Button ControllerButton
	Action Action
}

// Bindings holds the keyboard and controller tables.
type Bindings struct {
	Keys        []KeyBinding
	Controllers []ControllerBinding
}

func playback(a notify.Action) Action {
	return Action{Kind: ActionPlayback, Playback: a, UseShift: true}
}

func toggle(a notify.Action) Action {
	return Action{Kind: ActionPlayback, Playback: a}
}

// DefaultBindings returns the built-in key and controller mapping.
func DefaultBindings() *Bindings {
	b := &Bindings{
		Keys: []KeyBinding{
			{KeyEscape, false, Action{Kind: ActionToggleGUI}},
			{KeyA, false, Action{Kind: ActionToggleAspectCorrection}},
			{KeyC, true, Action{Kind: ActionCopyPresetName}},
			{KeyF, true, Action{Kind: ActionToggleFullscreen}},
			{KeyI, true, Action{Kind: ActionNextAudioDevice}},
			{KeyM, true, Action{Kind: ActionNextDisplay}},
			{KeyN, false, playback(notify.NextPreset)},
			{KeyP, false, playback(notify.PreviousPreset)},
			{KeyR, false, playback(notify.RandomPreset)},
			{KeyQ, true, Action{Kind: ActionQuit}},
			{KeyY, false, toggle(notify.ToggleShuffle)},
			{KeyBackspace, false, playback(notify.LastPreset)},
			{KeySpace, false, toggle(notify.TogglePresetLocked)},
			{KeyArrowUp, false, Action{Kind: ActionBeatSensitivity, Delta: 0.01}},
			{KeyArrowDown, false, Action{Kind: ActionBeatSensitivity, Delta: -0.01}},
		},
		Controllers: []ControllerBinding{
			{ButtonA, Action{Kind: ActionToggleFullscreen}},
			{ButtonB, playback(notify.RandomPreset)},
			{ButtonX, toggle(notify.TogglePresetLocked)},
			{ButtonY, toggle(notify.ToggleShuffle)},
			{ButtonBack, Action{Kind: ActionQuit}},
			{ButtonGuide, playback(notify.LastPreset)},
			{ButtonStart, Action{Kind: ActionToggleGUI}},
			{ButtonLeftShoulder, Action{Kind: ActionNextAudioDevice}},
			{ButtonRightShoulder, Action{Kind: ActionNextDisplay}},
			{ButtonDPadUp, Action{Kind: ActionBeatSensitivity, Delta: 0.05}},
			{ButtonDPadDown, Action{Kind: ActionBeatSensitivity, Delta: -0.05}},
			{ButtonDPadLeft, playback(notify.PreviousPreset)},
			{ButtonDPadRight, playback(notify.NextPreset)},
		},
	}
	b.Keys = append(b.Keys, debugKeyBindings...)
	return b
}

// ForKey returns the action bound to key. A binding that needs the command
// modifier matches only when modifierPressed is set; otherwise the key does
// nothing.
func (b *Bindings) ForKey(key Key, modifierPressed bool) (Action, bool) {
	for _, kb := range b.Keys {
		if kb.Key != key {
			continue
		}
		if kb.NeedsModifier && !modifierPressed {
			return Action{}, false
		}
		return kb.Action, true
	}
	return Action{}, false
}

func (b *Bindings) ForButton(button ControllerButton) (Action, bool) {
	for _, cb := range b.Controllers {
		if cb.Button == button {
			return cb.Action, true
		}
	}
	return Action{}, false
}
