// Package window runs the ebiten window on the main goroutine and exposes it
// to the render loop as an event queue plus a double-buffered swap chain.
package window

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/preset-visualizer/internal/input"
)

const (
	maxQueued = 1024

	// Held keys in repeatKeys send another key-down after repeatDelay ticks,
	// then every repeatInterval ticks.
	repeatDelay    = 30
	repeatInterval = 3
)

var repeatKeys = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyArrowDown}

type Options struct {
	Title  string
	Width  int
	Height int
	Logger zerolog.Logger
}

// Window implements ebiten.Game. Update and Draw run on the main goroutine;
// every other method may be called from the render goroutine.
type Window struct {
	title string
	log   zerolog.Logger

	mu     sync.Mutex
	events []input.Event
	back   *ebiten.Image
	front  *ebiten.Image
	width  int
	height int

	backW, backH   int
	frontW, frontH int

	// frame is the back buffer handed out since the last Swap
	frame    *ebiten.Image
	newImage func(width, height int) *ebiten.Image
	release  func(img *ebiten.Image)

	controllers []input.ControllerID

	// main goroutine only
	keys    []ebiten.Key
	buttons []ebiten.StandardGamepadButton
	pads    []ebiten.GamepadID
	known   []ebiten.GamepadID
	cursorX int
	cursorY int
	closing bool
	closed  atomic.Bool
}

func New(opts Options) *Window {
	return &Window{
		title:  opts.Title,
		log:    opts.Logger.With().Str("component", "window").Logger(),
		width:  opts.Width,
		height: opts.Height,

		newImage: ebiten.NewImage,
		release:  (*ebiten.Image).Deallocate,
	}
}

// Run opens the window and blocks until Close is called or the window fails.
// It must be called from the main goroutine.
func (w *Window) Run() error {
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

// Close makes Run return after the current tick.
func (w *Window) Close() {
	w.closed.Store(true)
}

func (w *Window) Update() error {
	if w.closed.Load() {
		return ebiten.Termination
	}

	if ebiten.IsWindowBeingClosed() && !w.closing {
		w.closing = true
		w.push(input.Event{Kind: input.Quit})
	}

	w.updateKeys()
	w.updateMouse()
	w.updateGamepads()
	w.updateDrops()
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.front != nil {
		screen.DrawImage(w.front, nil)
	}
}

// Layout renders at device resolution so drawable and event coordinates
// are both in physical pixels.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	width := int(float64(outsideWidth) * scale)
	height := int(float64(outsideHeight) * scale)

	w.mu.Lock()
	if width != w.width || height != w.height {
		w.log.Debug().Int("width", width).Int("height", height).Msg("drawable resized")
	}
	w.width, w.height = width, height
	w.mu.Unlock()

	return width, height
}

func (w *Window) updateKeys() {
	mod := currentMods()

	w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
	for _, k := range w.keys {
		w.push(input.Event{Kind: input.KeyDown, Key: translateKey(k), Mod: mod})
	}
	for _, k := range repeatKeys {
		if repeats(inpututil.KeyPressDuration(k)) {
			w.push(input.Event{Kind: input.KeyDown, Key: translateKey(k), Mod: mod})
		}
	}
	w.keys = inpututil.AppendJustReleasedKeys(w.keys[:0])
	for _, k := range w.keys {
		w.push(input.Event{Kind: input.KeyUp, Key: translateKey(k), Mod: mod})
	}
}

// repeats reports whether a key held for ticks ticks auto-repeats this tick.
func repeats(ticks int) bool {
	return ticks > repeatDelay && (ticks-repeatDelay)%repeatInterval == 0
}

var mouseButtons = []struct {
	button ebiten.MouseButton
	input  input.MouseButton
}{
	{ebiten.MouseButtonLeft, input.MouseLeft},
	{ebiten.MouseButtonMiddle, input.MouseMiddle},
	{ebiten.MouseButtonRight, input.MouseRight},
}

func (w *Window) updateMouse() {
	x, y := ebiten.CursorPosition()
	if x != w.cursorX || y != w.cursorY {
		w.cursorX, w.cursorY = x, y
		w.push(input.Event{Kind: input.MouseMotion, X: x, Y: y})
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		w.push(input.Event{Kind: input.Wheel, X: x, Y: y, WheelY: dy})
	}

	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.button) {
			w.push(input.Event{Kind: input.MouseDown, Button: mb.input, X: x, Y: y})
		}
		if inpututil.IsMouseButtonJustReleased(mb.button) {
			w.push(input.Event{Kind: input.MouseUp, Button: mb.input, X: x, Y: y})
		}
	}
}

func (w *Window) updateGamepads() {
	w.pads = inpututil.AppendJustConnectedGamepadIDs(w.pads[:0])
	for _, id := range w.pads {
		w.known = append(w.known, id)
		w.push(input.Event{Kind: input.ControllerAdded, Controller: input.ControllerID(id)})
	}

	w.known = slices.DeleteFunc(w.known, func(id ebiten.GamepadID) bool {
		if !inpututil.IsGamepadJustDisconnected(id) {
			return false
		}
		w.push(input.Event{Kind: input.ControllerRemoved, Controller: input.ControllerID(id)})
		return true
	})

	for _, id := range w.known {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		w.buttons = inpututil.AppendJustPressedStandardGamepadButtons(id, w.buttons[:0])
		w.pushButtons(input.ControllerButtonDown, id)
		w.buttons = inpututil.AppendJustReleasedStandardGamepadButtons(id, w.buttons[:0])
		w.pushButtons(input.ControllerButtonUp, id)
	}
}

func (w *Window) pushButtons(kind input.Kind, id ebiten.GamepadID) {
	for _, b := range w.buttons {
		button, ok := buttonMap[b]
		if !ok {
			continue
		}
		w.push(input.Event{Kind: kind, Controller: input.ControllerID(id), ControllerButton: button})
	}
}

func (w *Window) updateDrops() {
	files := ebiten.DroppedFiles()
	if files == nil {
		return
	}
	for _, ev := range dropEvents(files) {
		w.push(ev)
	}
}

// dropEvents turns the root of a dropped file system into one event per
// dropped file or directory.
func dropEvents(files fs.FS) []input.Event {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil
	}
	events := make([]input.Event, 0, len(entries))
	for _, e := range entries {
		events = append(events, input.Event{Kind: input.Drop, FS: files, Path: e.Name()})
	}
	return events
}

func (w *Window) push(ev input.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.events) >= maxQueued {
		w.log.Warn().Msg("event queue full, dropping event")
		return
	}
	w.events = append(w.events, ev)
}

// PollEvent pops the oldest queued event.
func (w *Window) PollEvent() (input.Event, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.events) == 0 {
		return input.Event{}, false
	}
	ev := w.events[0]
	w.events = slices.Delete(w.events, 0, 1)
	return ev, true
}

func (w *Window) DrawableSize() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// Surface returns the back buffer. It is reallocated on the first call after
// a Swap when the drawable size changed; later calls within the same frame
// return the same image.
func (w *Window) Surface() *ebiten.Image {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.frame != nil {
		return w.frame
	}
	width, height := max(w.width, 1), max(w.height, 1)
	if w.back != nil && (w.backW != width || w.backH != height) {
		w.release(w.back)
		w.back = nil
	}
	if w.back == nil {
		w.back = w.newImage(width, height)
		w.backW, w.backH = width, height
	}
	w.frame = w.back
	return w.frame
}

// Swap presents the back buffer.
func (w *Window) Swap() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.back, w.front = w.front, w.back
	w.backW, w.backH, w.frontW, w.frontH = w.frontW, w.frontH, w.backW, w.backH
	w.frame = nil
}

func (w *Window) ToggleFullscreen() {
	ebiten.SetFullscreen(!ebiten.IsFullscreen())
}

// NextDisplay moves the window to the next monitor, wrapping around.
func (w *Window) NextDisplay() {
	monitors := ebiten.AppendMonitors(nil)
	if len(monitors) < 2 {
		return
	}
	current := slices.Index(monitors, ebiten.Monitor())
	next := monitors[(current+1)%len(monitors)]
	ebiten.SetMonitor(next)
	w.log.Debug().Str("monitor", next.Name()).Msg("moved to display")
}

func (w *Window) ShowCursor(visible bool) {
	if visible {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeHidden)
}

func (w *Window) ControllerAdd(id input.ControllerID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if slices.Contains(w.controllers, id) {
		return
	}
	w.controllers = append(w.controllers, id)
}

func (w *Window) ControllerRemove(id input.ControllerID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.controllers = slices.DeleteFunc(w.controllers, func(c input.ControllerID) bool { return c == id })
}

// ControllerIsOurs reports whether id is the active controller: the
// earliest connected one still present.
func (w *Window) ControllerIsOurs(id input.ControllerID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.controllers) > 0 && w.controllers[0] == id
}
