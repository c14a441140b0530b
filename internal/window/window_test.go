package window

import (
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/preset-visualizer/internal/input"
)

type imageLog struct {
	sizes    [][2]int
	released []*ebiten.Image
}

func newTestWindow() *Window {
	w, _ := newTestWindowWithImages()
	return w
}

// newTestWindowWithImages replaces GPU image allocation with placeholders.
func newTestWindowWithImages() (*Window, *imageLog) {
	w := New(Options{Title: "test", Width: 960, Height: 540, Logger: zerolog.Nop()})
	l := &imageLog{}
	w.newImage = func(width, height int) *ebiten.Image {
		l.sizes = append(l.sizes, [2]int{width, height})
		return new(ebiten.Image)
	}
	w.release = func(img *ebiten.Image) { l.released = append(l.released, img) }
	return w, l
}

func TestTranslateKey(t *testing.T) {
	assert.Equal(t, input.KeyN, translateKey(ebiten.KeyN))
	assert.Equal(t, input.KeyBackspace, translateKey(ebiten.KeyBackspace))
	assert.Equal(t, input.KeyArrowUp, translateKey(ebiten.KeyArrowUp))
	assert.Equal(t, input.KeyRMeta, translateKey(ebiten.KeyMetaRight))
	assert.Equal(t, input.KeyUnknown, translateKey(ebiten.KeyF12))
}

func TestEveryModifierKeyTranslates(t *testing.T) {
	for _, mk := range modKeys {
		assert.NotEqual(t, input.KeyUnknown, translateKey(mk.key), "modifier %v", mk.key)
	}
}

func TestControllerButtonsAreDistinct(t *testing.T) {
	seen := map[input.ControllerButton]bool{}
	for _, b := range buttonMap {
		assert.False(t, seen[b], "button %v mapped twice", b)
		seen[b] = true
	}
	assert.Len(t, seen, 13)
}

func TestPollEventOrder(t *testing.T) {
	w := newTestWindow()

	_, ok := w.PollEvent()
	assert.False(t, ok)

	w.push(input.Event{Kind: input.KeyDown, Key: input.KeyN})
	w.push(input.Event{Kind: input.KeyUp, Key: input.KeyN})

	ev, ok := w.PollEvent()
	require.True(t, ok)
	assert.Equal(t, input.KeyDown, ev.Kind)
	ev, ok = w.PollEvent()
	require.True(t, ok)
	assert.Equal(t, input.KeyUp, ev.Kind)
	_, ok = w.PollEvent()
	assert.False(t, ok)
}

func TestQueueIsBounded(t *testing.T) {
	w := newTestWindow()
	for i := 0; i < maxQueued+10; i++ {
		w.push(input.Event{Kind: input.MouseMotion, X: i})
	}
	assert.Len(t, w.events, maxQueued)
}

func TestFirstControllerIsActive(t *testing.T) {
	w := newTestWindow()
	assert.False(t, w.ControllerIsOurs(0))

	w.ControllerAdd(3)
	w.ControllerAdd(5)
	w.ControllerAdd(3)
	assert.True(t, w.ControllerIsOurs(3))
	assert.False(t, w.ControllerIsOurs(5))

	w.ControllerRemove(3)
	assert.True(t, w.ControllerIsOurs(5))

	w.ControllerRemove(5)
	assert.False(t, w.ControllerIsOurs(5))
}

func TestDrawableSizeStartsAtConfiguredSize(t *testing.T) {
	w := newTestWindow()
	width, height := w.DrawableSize()
	assert.Equal(t, 960, width)
	assert.Equal(t, 540, height)
}

func TestDropEventsOnePerRootEntry(t *testing.T) {
	files := fstest.MapFS{
		"a.milk":             {Data: []byte("x")},
		"presets/b.milk":     {Data: []byte("x")},
		"presets/sub/c.prjm": {Data: []byte("x")},
	}

	events := dropEvents(files)
	require.Len(t, events, 2)
	assert.Equal(t, "a.milk", events[0].Path)
	assert.Equal(t, "presets", events[1].Path)
	for _, ev := range events {
		assert.Equal(t, input.Drop, ev.Kind)
		assert.NotNil(t, ev.FS)
	}
}

// resize stands in for Layout, which needs a running game.
func (w *Window) resize(width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.width, w.height = width, height
}

func TestHeldKeyRepeats(t *testing.T) {
	var fired []int
	for ticks := 1; ticks <= repeatDelay+3*repeatInterval; ticks++ {
		if repeats(ticks) {
			fired = append(fired, ticks)
		}
	}
	assert.Equal(t, []int{
		repeatDelay + repeatInterval,
		repeatDelay + 2*repeatInterval,
		repeatDelay + 3*repeatInterval,
	}, fired)
	assert.False(t, repeats(0))
}

func TestSensitivityKeysRepeat(t *testing.T) {
	for _, k := range repeatKeys {
		assert.Contains(t, []input.Key{input.KeyArrowUp, input.KeyArrowDown}, translateKey(k))
	}
}

func TestSurfaceStableWithinFrame(t *testing.T) {
	w, images := newTestWindowWithImages()

	first := w.Surface()
	w.resize(1280, 720)
	assert.Same(t, first, w.Surface(), "overlay draws on the rendered frame")
	assert.Equal(t, [][2]int{{960, 540}}, images.sizes)

	w.Swap()
	second := w.Surface()
	assert.NotSame(t, first, second)

	w.Swap()
	w.resize(640, 360)
	third := w.Surface()
	assert.NotSame(t, first, third, "stale buffer reallocated at the new size")
	assert.Equal(t, []*ebiten.Image{first}, images.released)
	assert.Equal(t, [2]int{640, 360}, images.sizes[len(images.sizes)-1])
}

func TestSurfaceReusedWhenSizeUnchanged(t *testing.T) {
	w, images := newTestWindowWithImages()

	a := w.Surface()
	w.Swap()
	b := w.Surface()
	w.Swap()
	assert.Same(t, a, w.Surface())
	assert.NotSame(t, a, b)
	assert.Len(t, images.sizes, 2)
	assert.Empty(t, images.released)
}
