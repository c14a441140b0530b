package renderloop

import (
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/iburimskiy/preset-visualizer/internal/input"
	"github.com/iburimskiy/preset-visualizer/internal/notify"
	"github.com/iburimskiy/preset-visualizer/internal/playlist"
	"github.com/iburimskiy/preset-visualizer/internal/viz"
)

// Engine is the visualization engine.
type Engine interface {
	RenderFrame()
	SetWindowSize(width, height int)
	AspectCorrection() bool
	SetAspectCorrection(enabled bool)
	Touch(x, y float32, pressure int, kind viz.TouchType)
	ChangeBeatSensitivity(delta float32)
	UpdateRealFPS(fps float64)
	WriteDebugImageOnNextFrame()
	TargetFPS() int
	DisplayInitialPreset()
	PresetFileNameToClipboard()
}

// Playlist is the engine's preset playlist.
type Playlist interface {
	Shuffle() bool
	SetShuffle(on bool)
	Position() int
	InsertPreset(preset string, index int, allowDuplicates bool) bool
	InsertPath(fsys fs.FS, dir string, index int, recurse, allowDuplicates bool) int
	PlayNext(hardCut bool) bool
	PlayPrevious(hardCut bool) bool
	Clear()
	SetPresetSwitchedCallback(fn playlist.SwitchedFunc)
}

type AudioCapture interface {
	FillBuffer()
	NextAudioDevice()
}

// Window owns the native window, its swap chain and the event queue.
type Window interface {
	PollEvent() (input.Event, bool)
	DrawableSize() (width, height int)
	Swap()
	ToggleFullscreen()
	NextDisplay()
	ShowCursor(visible bool)
	ControllerAdd(id input.ControllerID)
	ControllerRemove(id input.ControllerID)
	ControllerIsOurs(id input.ControllerID) bool
}

// GUI is the immediate-mode overlay drawn above the visualization.
type GUI interface {
	ProcessInput(ev input.Event)
	WantsMouseInput() bool
	WantsKeyboardInput() bool
	Toggle()
	Visible() bool
	UpdateFontSize()
	Draw()
}

type Notifier interface {
	OnQuit(fn func(notify.Quit)) (remove func())
	PublishToast(t notify.Toast)
	PublishPlayback(p notify.PlaybackControl)
	Flush() int
}

// Settings exposes the user configuration read by the drop handler.
type Settings interface {
	DropSettings() (skipToDropped, folderOverride bool)
}

// Deps are the subsystems the loop drives. All of them are required except
// Bindings, which defaults to input.DefaultBindings.
type Deps struct {
	Engine   Engine
	Playlist Playlist
	Audio    AudioCapture
	Window   Window
	GUI      GUI
	Notifier Notifier
	Settings Settings
	Bindings *input.Bindings
	Logger   zerolog.Logger
}
