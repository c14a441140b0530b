package renderloop

import (
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/iburimskiy/preset-visualizer/internal/input"
	"github.com/iburimskiy/preset-visualizer/internal/notify"
	"github.com/iburimskiy/preset-visualizer/internal/playlist"
	"github.com/iburimskiy/preset-visualizer/internal/viz"
)

type callLog struct {
	calls []string
}

func (c *callLog) add(name string) {
	if c != nil {
		c.calls = append(c.calls, name)
	}
}

type touch struct {
	x, y float32
	kind viz.TouchType
}

type fakeEngine struct {
	log *callLog

	width, height int
	sizeUpdates   int
	aspect        bool
	touches       []touch
	sensitivity   []float32
	realFPS       []float64
	debugImages   int
	clipboard     int
	initial       int
	targetFPS     int
}

func (e *fakeEngine) RenderFrame() { e.log.add("render") }

func (e *fakeEngine) SetWindowSize(w, h int) {
	e.width, e.height = w, h
	e.sizeUpdates++
}

func (e *fakeEngine) AspectCorrection() bool     { return e.aspect }
func (e *fakeEngine) SetAspectCorrection(v bool) { e.aspect = v }

func (e *fakeEngine) Touch(x, y float32, _ int, kind viz.TouchType) {
	e.touches = append(e.touches, touch{x, y, kind})
}

func (e *fakeEngine) ChangeBeatSensitivity(d float32) { e.sensitivity = append(e.sensitivity, d) }

func (e *fakeEngine) UpdateRealFPS(fps float64) {
	e.log.add("fps")
	e.realFPS = append(e.realFPS, fps)
}

func (e *fakeEngine) WriteDebugImageOnNextFrame() { e.debugImages++ }
func (e *fakeEngine) TargetFPS() int              { return e.targetFPS }
func (e *fakeEngine) PresetFileNameToClipboard()  { e.clipboard++ }

func (e *fakeEngine) DisplayInitialPreset() {
	e.log.add("initial")
	e.initial++
}

// recordingPlaylist wraps the real playlist and remembers the shuffle flag
// seen by every mutation.
type recordingPlaylist struct {
	*playlist.Playlist

	shuffleDuringMutation []bool
	nexts, previouses     int
	clears                int
	callbackCleared       bool
}

func newRecordingPlaylist(items ...string) *recordingPlaylist {
	p := &recordingPlaylist{Playlist: playlist.New()}
	for i, it := range items {
		p.Playlist.InsertPreset(it, i, true)
	}
	return p
}

func (p *recordingPlaylist) InsertPreset(preset string, index int, dup bool) bool {
	p.shuffleDuringMutation = append(p.shuffleDuringMutation, p.Shuffle())
	return p.Playlist.InsertPreset(preset, index, dup)
}

func (p *recordingPlaylist) InsertPath(fsys fs.FS, dir string, index int, recurse, dup bool) int {
	p.shuffleDuringMutation = append(p.shuffleDuringMutation, p.Shuffle())
	return p.Playlist.InsertPath(fsys, dir, index, recurse, dup)
}

func (p *recordingPlaylist) PlayNext(hardCut bool) bool {
	p.shuffleDuringMutation = append(p.shuffleDuringMutation, p.Shuffle())
	p.nexts++
	return p.Playlist.PlayNext(hardCut)
}

func (p *recordingPlaylist) PlayPrevious(hardCut bool) bool {
	p.previouses++
	return p.Playlist.PlayPrevious(hardCut)
}

func (p *recordingPlaylist) Clear() {
	p.clears++
	p.Playlist.Clear()
}

func (p *recordingPlaylist) SetPresetSwitchedCallback(fn playlist.SwitchedFunc) {
	p.callbackCleared = fn == nil
	p.Playlist.SetPresetSwitchedCallback(fn)
}

type fakeAudio struct {
	log         *callLog
	fills       int
	nextDevices int
}

func (a *fakeAudio) FillBuffer() {
	a.log.add("audio")
	a.fills++
}

func (a *fakeAudio) NextAudioDevice() { a.nextDevices++ }

type fakeWindow struct {
	log *callLog

	events        []input.Event
	width, height int
	swaps         int
	fullscreen    int
	displays      int
	cursor        []bool
	ours          map[input.ControllerID]bool
	added         []input.ControllerID
	removed       []input.ControllerID

	// onSwap runs after every swap, used to script multi-frame tests
	onSwap func(w *fakeWindow)
}

func (w *fakeWindow) PollEvent() (input.Event, bool) {
	if len(w.events) == 0 {
		return input.Event{}, false
	}
	ev := w.events[0]
	w.events = w.events[1:]
	return ev, true
}

func (w *fakeWindow) DrawableSize() (int, int) { return w.width, w.height }

func (w *fakeWindow) Swap() {
	w.log.add("swap")
	w.swaps++
	if w.onSwap != nil {
		w.onSwap(w)
	}
}

func (w *fakeWindow) ToggleFullscreen()     { w.fullscreen++ }
func (w *fakeWindow) NextDisplay()          { w.displays++ }
func (w *fakeWindow) ShowCursor(v bool)     { w.cursor = append(w.cursor, v) }
func (w *fakeWindow) ControllerAdd(id input.ControllerID) {
	w.added = append(w.added, id)
}

func (w *fakeWindow) ControllerRemove(id input.ControllerID) {
	w.removed = append(w.removed, id)
}

func (w *fakeWindow) ControllerIsOurs(id input.ControllerID) bool { return w.ours[id] }

type fakeGUI struct {
	log *callLog

	wantsMouse    bool
	wantsKeyboard bool
	visible       bool
	seen          []input.Event
	fontUpdates   int
	draws         int
}

func (g *fakeGUI) ProcessInput(ev input.Event) { g.seen = append(g.seen, ev) }
func (g *fakeGUI) WantsMouseInput() bool       { return g.wantsMouse }
func (g *fakeGUI) WantsKeyboardInput() bool    { return g.wantsKeyboard }
func (g *fakeGUI) Toggle()                     { g.visible = !g.visible }
func (g *fakeGUI) Visible() bool               { return g.visible }
func (g *fakeGUI) UpdateFontSize()             { g.fontUpdates++ }

func (g *fakeGUI) Draw() {
	g.log.add("gui")
	g.draws++
}

type fakeSettings struct {
	skipToDropped  bool
	folderOverride bool
}

func (s fakeSettings) DropSettings() (bool, bool) { return s.skipToDropped, s.folderOverride }

type harness struct {
	loop     *Loop
	calls    *callLog
	engine   *fakeEngine
	playlist *recordingPlaylist
	audio    *fakeAudio
	window   *fakeWindow
	gui      *fakeGUI
	center   *notify.Center
	settings *fakeSettings

	toasts   []string
	playback []notify.PlaybackControl
}

func newHarness(items ...string) *harness {
	calls := &callLog{}
	h := &harness{
		calls:    calls,
		engine:   &fakeEngine{log: calls},
		playlist: newRecordingPlaylist(items...),
		audio:    &fakeAudio{log: calls},
		window:   &fakeWindow{log: calls, width: 800, height: 600, ours: map[input.ControllerID]bool{}},
		gui:      &fakeGUI{log: calls},
		center:   notify.NewCenter(),
		settings: &fakeSettings{skipToDropped: true},
	}
	h.center.OnToast(func(t notify.Toast) { h.toasts = append(h.toasts, t.Text) })
	h.center.OnPlayback(func(p notify.PlaybackControl) { h.playback = append(h.playback, p) })

	h.loop = New(Deps{
		Engine:   h.engine,
		Playlist: h.playlist,
		Audio:    h.audio,
		Window:   h.window,
		GUI:      h.gui,
		Notifier: h.center,
		Settings: h,
		Logger:   zerolog.Nop(),
	})
	return h
}

// DropSettings reads the current settings so tests may flip them between drops.
func (h *harness) DropSettings() (bool, bool) { return h.settings.DropSettings() }

// send queues events and polls them.
func (h *harness) send(evs ...input.Event) {
	h.window.events = append(h.window.events, evs...)
	h.loop.PollEvents()
}

func keyDown(k input.Key, mod input.Mod) input.Event {
	return input.Event{Kind: input.KeyDown, Key: k, Mod: mod}
}

func keyUp(k input.Key) input.Event {
	return input.Event{Kind: input.KeyUp, Key: k}
}
