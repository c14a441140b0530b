// Package overlay draws the immediate-mode control panel and toast messages
// on top of the visualization.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/iburimskiy/preset-visualizer/internal/config"
	"github.com/iburimskiy/preset-visualizer/internal/input"
	"github.com/iburimskiy/preset-visualizer/internal/notify"
	"github.com/iburimskiy/preset-visualizer/internal/viz"
)

const (
	lineHeight = 16
	padding    = 8
	maxToasts  = 3

	buttonWidth  = 64
	buttonHeight = 22
	buttonGap    = 6
)

type StatusSource interface {
	Status() viz.Status
}

type Notifier interface {
	OnToast(fn func(notify.Toast)) (remove func())
	PublishPlayback(p notify.PlaybackControl)
}

type Options struct {
	Status   StatusSource
	Surface  viz.Surface
	Notifier Notifier
	Visible  bool
}

type toast struct {
	text    string
	expires time.Time
}

type button struct {
	label  string
	action notify.Action
}

var buttons = []button{
	{"Prev", notify.PreviousPreset},
	{"Next", notify.NextPreset},
	{"Random", notify.RandomPreset},
	{"Shuffle", notify.ToggleShuffle},
	{"Lock", notify.TogglePresetLocked},
}

var help = []string{
	"Esc     toggle this panel",
	"N/P/R   next / previous / random",
	"Bksp    last preset",
	"Y       shuffle   Space  lock",
	"Up/Down beat sensitivity",
	"A       aspect correction",
	"Ctrl+F  fullscreen   Ctrl+Q quit",
	"Shift+click adds a waveform",
}

// GUI is the overlay. All methods run on the render loop thread.
type GUI struct {
	status   StatusSource
	surface  viz.Surface
	notifier Notifier

	face    *text.GoXFace
	scale   float64
	visible bool

	cursor  image.Point
	toasts  []toast
	remove  func()
	now     func() time.Time
	clicked int // button index pressed since the last frame, -1 for none
}

func New(o Options) *GUI {
	g := &GUI{
		status:   o.Status,
		surface:  o.Surface,
		notifier: o.Notifier,
		face:     text.NewGoXFace(basicfont.Face7x13),
		scale:    1,
		visible:  o.Visible,
		now:      time.Now,
		clicked:  -1,
	}
	if g.notifier != nil {
		g.remove = g.notifier.OnToast(g.addToast)
	}
	return g
}

func (g *GUI) Close() {
	if g.remove != nil {
		g.remove()
		g.remove = nil
	}
}

func (g *GUI) Toggle() { g.visible = !g.visible }

func (g *GUI) Visible() bool { return g.visible }

func (g *GUI) Scale() float64 { return g.scale }

// UpdateFontSize rescales the overlay to the drawable height.
func (g *GUI) UpdateFontSize() {
	h := 0
	if g.status != nil {
		h = g.status.Status().Height
	}
	g.scale = math.Max(1, math.Round(float64(h)/config.BaseHeight))
}

// ProcessInput tracks the cursor and handles clicks on the panel buttons.
func (g *GUI) ProcessInput(ev input.Event) {
	switch ev.Kind {
	case input.MouseMotion, input.MouseDown, input.MouseUp:
		g.cursor = image.Pt(ev.X, ev.Y)
	}
	if ev.Kind != input.MouseDown || ev.Button != input.MouseLeft || !g.visible {
		return
	}
	for i := range buttons {
		if g.cursor.In(g.buttonRect(i)) {
			g.clicked = i
			return
		}
	}
}

// WantsMouseInput is true while the cursor is over the visible panel.
func (g *GUI) WantsMouseInput() bool {
	return g.visible && g.cursor.In(g.panelRect())
}

// WantsKeyboardInput is always false: the panel has no text entry, and Esc
// must keep reaching the shortcut table to close it.
func (g *GUI) WantsKeyboardInput() bool { return false }

func (g *GUI) addToast(t notify.Toast) {
	g.toasts = append(g.toasts, toast{text: t.Text, expires: g.now().Add(config.ToastTimeout)})
	if len(g.toasts) > maxToasts {
		g.toasts = g.toasts[len(g.toasts)-maxToasts:]
	}
}

// Toasts returns the messages currently on screen, oldest first.
func (g *GUI) Toasts() []string {
	now := g.now()
	var out []string
	for _, t := range g.toasts {
		if now.Before(t.expires) {
			out = append(out, t.text)
		}
	}
	return out
}

// Draw renders the panel and toasts, and fires a pending button click.
func (g *GUI) Draw() {
	if g.clicked >= 0 {
		if g.notifier != nil {
			g.notifier.PublishPlayback(notify.PlaybackControl{Action: buttons[g.clicked].action})
		}
		g.clicked = -1
	}
	g.expireToasts()

	if g.surface == nil {
		return
	}
	dst := g.surface.Surface()
	if dst == nil {
		return
	}
	if g.visible {
		g.drawPanel(dst)
	}
	g.drawToasts(dst)
}

func (g *GUI) expireToasts() {
	now := g.now()
	kept := g.toasts[:0]
	for _, t := range g.toasts {
		if now.Before(t.expires) {
			kept = append(kept, t)
		}
	}
	g.toasts = kept
}

func (g *GUI) px(v float64) int { return int(v * g.scale) }

func (g *GUI) panelRect() image.Rectangle {
	x, y := g.px(config.PanelX), g.px(config.PanelY)
	return image.Rect(x, y, x+g.px(config.PanelWidth), y+g.px(config.PanelHeight))
}

func (g *GUI) buttonRect(i int) image.Rectangle {
	p := g.panelRect()
	x := p.Min.X + g.px(padding) + i*g.px(buttonWidth+buttonGap)
	y := p.Max.Y - g.px(padding+buttonHeight)
	return image.Rect(x, y, x+g.px(buttonWidth), y+g.px(buttonHeight))
}

func (g *GUI) statusLines() []string {
	s := viz.Status{Index: -1}
	if g.status != nil {
		s = g.status.Status()
	}
	preset := s.Preset
	if preset == "" {
		preset = "(no preset)"
	}
	return []string{
		preset,
		fmt.Sprintf("Preset %d/%d  Shuffle: %s  Lock: %s", s.Index+1, s.Count, onOff(s.Shuffle), onOff(s.Locked)),
		fmt.Sprintf("FPS: %.1f  Beat sensitivity: %.2f  %dx%d", s.FPS, s.Sensitivity, s.Width, s.Height),
	}
}

func (g *GUI) drawPanel(dst *ebiten.Image) {
	p := g.panelRect()
	vector.DrawFilledRect(dst, float32(p.Min.X), float32(p.Min.Y), float32(p.Dx()), float32(p.Dy()), color.RGBA{R: 10, G: 12, B: 20, A: 200}, false)
	vector.StrokeRect(dst, float32(p.Min.X), float32(p.Min.Y), float32(p.Dx()), float32(p.Dy()), 2, color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)

	y := float64(p.Min.Y + g.px(padding))
	for _, line := range append(g.statusLines(), help...) {
		g.drawText(dst, line, float64(p.Min.X+g.px(padding)), y, color.White)
		y += float64(g.px(lineHeight))
	}

	for i, b := range buttons {
		r := g.buttonRect(i)
		bg := color.RGBA{R: 100, G: 120, B: 160, A: 255}
		if g.cursor.In(r) {
			bg = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
		}
		vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), bg, false)
		vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, color.RGBA{R: 150, G: 170, B: 200, A: 255}, false)
		g.drawText(dst, b.label, float64(r.Min.X+g.px(6)), float64(r.Min.Y+g.px(5)), color.White)
	}
}

func (g *GUI) drawToasts(dst *ebiten.Image) {
	b := dst.Bounds()
	y := float64(b.Max.Y - g.px(padding+lineHeight*maxToasts))
	for _, t := range g.toasts {
		w := float64(len(t.text)*7+2*padding) * g.scale
		vector.DrawFilledRect(dst, float32(g.px(padding)), float32(y), float32(w), float32(g.px(lineHeight)), color.RGBA{A: 180}, false)
		g.drawText(dst, t.text, float64(g.px(2*padding)), y+float64(g.px(1)), color.RGBA{R: 255, G: 230, B: 140, A: 255})
		y += float64(g.px(lineHeight))
	}
}

func (g *GUI) drawText(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(g.scale, g.scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, g.face, op)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
