//go:build !debug

package input

var debugKeyBindings []KeyBinding
