// Package input defines the backend-neutral window events consumed by the
// render loop and the tables mapping keys and controller buttons to actions.
package input

import "io/fs"

type Kind uint8

const (
	KindNone Kind = iota
	Wheel
	KeyDown
	KeyUp
	MouseDown
	MouseUp
	MouseMotion
	ControllerAdded
	ControllerRemoved
	ControllerButtonDown
	ControllerButtonUp
	Drop
	Quit
)

// Mod is a bit mask of the modifier keys held when a key event was produced.
type Mod uint16

const (
	ModLShift Mod = 1 << iota
	ModRShift
	ModLCtrl
	ModRCtrl
	ModLAlt
	ModRAlt
	ModLMeta
	ModRMeta
)

type MouseButton uint8

const (
	MouseLeft MouseButton = iota + 1
	MouseMiddle
	MouseRight
)

// ControllerID identifies a connected game controller.
type ControllerID int

// Event is a single window-system event.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind Kind

	// keyboard
	Key Key
	Mod Mod

	// mouse; X and Y are drawable pixel coordinates, origin top-left
	Button MouseButton
	X, Y   int
	WheelY float64

	// controller
	Controller       ControllerID
	ControllerButton ControllerButton

	// file drop; Path is relative to FS
	FS   fs.FS
	Path string
}

// IsMouse reports whether the event belongs to the mouse input category.
func (e Event) IsMouse() bool {
	switch e.Kind {
	case Wheel, MouseDown, MouseUp, MouseMotion:
		return true
	}
	return false
}

// IsKeyboard reports whether the event belongs to the keyboard input category.
func (e Event) IsKeyboard() bool {
	return e.Kind == KeyDown || e.Kind == KeyUp
}
