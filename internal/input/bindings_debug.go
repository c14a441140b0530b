//go:build debug

package input

// D writes the next rendered frame to disk.
var debugKeyBindings = []KeyBinding{
	{KeyD, false, Action{Kind: ActionDebugImage}},
}
