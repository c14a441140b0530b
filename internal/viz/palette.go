package viz

import (
	"hash/fnv"
	"math"
	"path"
	"strings"
)

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// style is the look a preset selects. The preset file itself is opaque; its
// name seeds the palette and layer weights so every preset looks different
// and stable across runs.
type style struct {
	hue       float64 // base hue offset, 0..1
	circles   float64
	waves     float64
	particles float64
	rings     float64
	spin      float64
}

var idleStyle = style{hue: 0.6, circles: 1, waves: 1, particles: 1, rings: 1, spin: 1}

func styleFor(preset string) style {
	h := fnv.New64a()
	_, _ = h.Write([]byte(preset))
	sum := h.Sum64()

	weight := func(shift uint) float64 {
		return 0.4 + float64((sum>>shift)&0xff)/255*0.8
	}
	return style{
		hue:       float64(sum%360) / 360,
		circles:   weight(8),
		waves:     weight(16),
		particles: weight(24),
		rings:     weight(32),
		spin:      0.5 + float64((sum>>40)&0xff)/255*1.5,
	}
}

// lerp blends two styles, t in 0..1.
func (s style) lerp(to style, t float64) style {
	mix := func(a, b float64) float64 { return a + (b-a)*t }
	// hue takes the short way round
	dh := to.hue - s.hue
	if dh > 0.5 {
		dh--
	} else if dh < -0.5 {
		dh++
	}
	return style{
		hue:       s.hue + dh*t,
		circles:   mix(s.circles, to.circles),
		waves:     mix(s.waves, to.waves),
		particles: mix(s.particles, to.particles),
		rings:     mix(s.rings, to.rings),
		spin:      mix(s.spin, to.spin),
	}
}

// DisplayName strips directories and the preset extension.
func DisplayName(preset string) string {
	base := path.Base(strings.ReplaceAll(preset, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}
