package viz

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/preset-visualizer/internal/config"
)

// canvas maps the reference layout onto the destination image.
type canvas struct {
	dst      *ebiten.Image
	w, h     float64
	sx, sy   float64
	cx, cy   float64
	st       style
	spec     *spectrum
	phase    float64
	time     float64
	rotation float64
}

func (e *Engine) draw(dst *ebiten.Image, now time.Time) {
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w <= 0 || h <= 0 {
		return
	}

	c := &canvas{
		dst:      dst,
		w:        w,
		h:        h,
		cx:       w / 2,
		cy:       h / 2,
		st:       e.current(now),
		spec:     e.spec,
		phase:    e.colorPhase,
		time:     e.time,
		rotation: e.rotation,
	}
	if e.aspectCorrection {
		s := math.Min(w/config.WindowWidth, h/config.WindowHeight)
		c.sx, c.sy = s, s
	} else {
		c.sx, c.sy = w/config.WindowWidth, h/config.WindowHeight
	}

	// Clear background with gradient
	c.drawBackground()

	// Draw complex visualization
	c.drawAnimatedCircles()
	c.drawWavePatterns()
	c.drawParticleEffects()
	c.drawEnergyRings()

	e.drawTouches(c, now)
}

func (c *canvas) hue(offset float64) float64 {
	return (c.phase + c.st.hue + offset) * 360
}

// point returns the screen position of a polar offset around the center.
func (c *canvas) point(angle, radius float64) (float32, float32) {
	return float32(c.cx + math.Cos(angle)*radius*c.sx), float32(c.cy + math.Sin(angle)*radius*c.sy)
}

func (c *canvas) drawBackground() {
	// Create a dynamic gradient background, one band every 4 pixels
	for y := 0.0; y < c.h; y += 4 {
		ratio := y / c.h
		energy := 1 + c.spec.beat
		r := uint8(math.Min(255, (10+20*math.Sin(c.time*0.5+ratio*math.Pi))*energy))
		g := uint8(math.Min(255, (12+15*math.Cos(c.time*0.3+ratio*math.Pi))*energy))
		b := uint8(math.Min(255, (20+25*math.Sin(c.time*0.7+ratio*math.Pi))*energy))
		vector.DrawFilledRect(c.dst, 0, float32(y), float32(c.w), 4, color.RGBA{R: r, G: g, B: b, A: 255}, false)
	}
}

func (c *canvas) drawAnimatedCircles() {
	n := int(config.CircleCount * c.st.circles)
	for i := 0; i < n; i++ {
		a := c.spec.at(i)
		angle := float64(i) * (2 * math.Pi / float64(n))
		radius := 30 + float64(i)*15 + a*100

		x, y := c.point(angle+c.rotation, radius)

		// Dynamic color based on audio and time
		r, g, b := hsvToRgb(c.hue(float64(i)*0.1), 0.8, 0.9)
		opacity := uint8(150 + 105*a)

		circleRadius := (8 + a*20) * c.sy
		vector.DrawFilledCircle(c.dst, x, y, float32(circleRadius), color.RGBA{R: r, G: g, B: b, A: opacity}, true)
	}
}

func (c *canvas) drawWavePatterns() {
	n := int(config.WaveCount * c.st.waves)
	for i := 0; i < n; i++ {
		a := c.spec.at(i)
		angle := float64(i) * (2 * math.Pi / float64(n))
		waveRadius := 80 + a*150

		// Create wave effect
		for j := 0; j < 360; j += 5 {
			waveAngle := float64(j) * math.Pi / 180
			offset := math.Sin(waveAngle*3+c.time*2) * 10
			nextAngle := float64(j+5) * math.Pi / 180
			nextOffset := math.Sin(nextAngle*3+c.time*2) * 10

			x1, y1 := c.point(angle, waveRadius+offset+a*50)
			x2, y2 := c.point(angle, waveRadius+nextOffset+a*50)

			// Color based on wave position and audio
			r, g, b := hsvToRgb(c.hue(float64(i)*0.05+float64(j)*0.01), 0.7, 0.8)
			opacity := uint8(100 + 155*a)

			vector.StrokeLine(c.dst, x1, y1, x2, y2, 2, color.RGBA{R: r, G: g, B: b, A: opacity}, true)
		}
	}
}

func (c *canvas) drawParticleEffects() {
	n := int(config.ParticleCount * c.st.particles)
	for i := 0; i < n; i++ {
		a := c.spec.at(i)
		// Particle position based on audio and time
		angle := c.time*0.5 + float64(i)*0.1
		x, y := c.point(angle, 20+a*300)

		size := (2 + a*8) * c.sy
		r, g, b := hsvToRgb(c.hue(float64(i)*0.02), 1.0, 1.0)
		opacity := uint8(200 + 55*a)

		vector.DrawFilledCircle(c.dst, x, y, float32(size), color.RGBA{R: r, G: g, B: b, A: opacity}, true)
	}
}

func (c *canvas) drawEnergyRings() {
	n := int(5 * c.st.rings)
	const segments = 24
	for i := 0; i < n; i++ {
		a := c.spec.at(i)
		// Skip rings based on audio intensity
		if a < 0.1 {
			continue
		}
		ringRadius := float64(40+i*30) + a*100

		for j := 0; j < segments; j++ {
			startAngle := float64(j) * (2 * math.Pi / segments)
			endAngle := float64(j+1) * (2 * math.Pi / segments)

			x1, y1 := c.point(startAngle, ringRadius)
			x2, y2 := c.point(endAngle, ringRadius)

			r, g, b := hsvToRgb(c.hue(float64(i)*0.2+float64(j)*0.1), 0.9, 0.8)
			opacity := uint8(120 + 135*a)

			strokeWidth := 3 + a*8
			vector.StrokeLine(c.dst, x1, y1, x2, y2, float32(strokeWidth), color.RGBA{R: r, G: g, B: b, A: opacity}, true)
		}
	}
}

func (e *Engine) drawTouches(c *canvas, now time.Time) {
	for i, t := range e.touches {
		age := now.Sub(t.born).Seconds() / config.TouchLife.Seconds()
		if age >= 1 {
			continue
		}
		fade := 1 - age
		x := float32(t.x * c.w)
		y := float32((1 - t.y) * c.h)
		a := c.spec.at(i)

		r, g, b := hsvToRgb(c.hue(float64(i)*0.15), 0.9, 1)
		col := color.RGBA{R: r, G: g, B: b, A: uint8(255 * fade)}

		switch t.kind {
		case TouchCircle:
			vector.DrawFilledCircle(c.dst, x, y, float32((10+a*40)*c.sy), col, true)
		case TouchRing:
			radius := (20 + age*200 + a*30) * c.sy
			vector.StrokeCircle(c.dst, x, y, float32(radius), 3, col, true)
		case TouchBurst:
			for k := 0; k < 12; k++ {
				angle := float64(k)*math.Pi/6 + c.rotation
				length := (15 + age*120 + a*60) * c.sy
				x2 := x + float32(math.Cos(angle)*length)
				y2 := y + float32(math.Sin(angle)*length)
				vector.StrokeLine(c.dst, x, y, x2, y2, 2, col, true)
			}
		}
	}
}
