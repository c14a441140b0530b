// Package notify carries the cross-cutting notifications exchanged between
// the render loop and the other subsystems: toasts, playback control actions
// and quit requests.
package notify

import "fmt"

// Action names a playback control request.
type Action uint8

const (
	NextPreset Action = iota
	PreviousPreset
	RandomPreset
	LastPreset
	ToggleShuffle
	TogglePresetLocked
)

var actionNames = [...]string{
	NextPreset:         "NextPreset",
	PreviousPreset:     "PreviousPreset",
	RandomPreset:       "RandomPreset",
	LastPreset:         "LastPreset",
	ToggleShuffle:      "ToggleShuffle",
	TogglePresetLocked: "TogglePresetLocked",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Toast is a short user-visible message.
type Toast struct {
	Text string
}

// PlaybackControl asks the playlist owner to perform Action.
// Alternate is set when the user held shift and requests a hard cut.
type PlaybackControl struct {
	Action    Action
	Alternate bool
}

// Quit asks the application to shut down.
type Quit struct {
	Source string
}
