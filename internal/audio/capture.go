// Package audio feeds the visualization engine with the audio currently
// playing on the selected input device.
package audio

import (
	"fmt"
	"io"

	"github.com/faiface/beep"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/preset-visualizer/internal/config"
	"github.com/iburimskiy/preset-visualizer/internal/notify"
)

// Sink consumes captured samples.
type Sink interface {
	AddPCM(samples [][2]float64)
}

type Toaster interface {
	PublishToast(t notify.Toast)
}

type Options struct {
	Devices  []Device
	Output   Output
	Sink     Sink
	Notifier Toaster
	Logger   zerolog.Logger
}

// Capture owns the active input device and hands its samples to the sink
// once per frame.
type Capture struct {
	devices  []Device
	output   Output
	sink     Sink
	notifier Toaster
	log      zerolog.Logger

	current int
	tap     *tap
	closer  io.Closer
	buf     [][2]float64
}

func New(o Options) *Capture {
	devices := o.Devices
	if len(devices) == 0 {
		devices = []Device{SilenceDevice()}
	}
	return &Capture{
		devices:  devices,
		output:   o.Output,
		sink:     o.Sink,
		notifier: o.Notifier,
		log:      o.Logger.With().Str("component", "audio").Logger(),
		current:  -1,
		buf:      make([][2]float64, 0, config.PCMWindow),
	}
}

// DevicesFromSources lists the configured files followed by the silent device.
func DevicesFromSources(sources []string) []Device {
	devices := make([]Device, 0, len(sources)+1)
	for _, s := range sources {
		devices = append(devices, FileDevice(s))
	}
	return append(devices, SilenceDevice())
}

// Open starts the first device.
func (c *Capture) Open() error {
	return c.open(0)
}

// Device returns the name of the active device.
func (c *Capture) Device() string {
	if c.current < 0 {
		return ""
	}
	return c.devices[c.current].Name
}

// FillBuffer passes the most recent samples to the sink.
func (c *Capture) FillBuffer() {
	if c.tap == nil || c.sink == nil {
		return
	}
	c.buf = c.tap.snapshot(c.buf[:0], config.PCMWindow)
	c.sink.AddPCM(c.buf)
}

// NextAudioDevice switches to the following device, wrapping around.
// A device that fails to open is skipped.
func (c *Capture) NextAudioDevice() {
	start := c.current
	for i := 1; i <= len(c.devices); i++ {
		next := (start + i) % len(c.devices)
		if next == start && start >= 0 {
			return
		}
		if err := c.open(next); err != nil {
			c.log.Warn().Err(err).Str("device", c.devices[next].Name).Msg("cannot open audio device")
			c.toast("Cannot open audio device: " + c.devices[next].Name)
			continue
		}
		c.toast("Audio device: " + c.devices[next].Name)
		return
	}
}

// open switches to device i. When the output rejects the new device after
// the previous one was already stopped, the previous device is restarted.
func (c *Capture) open(i int) error {
	prev := c.current
	err := c.start(i)
	if err == nil || c.tap != nil || prev < 0 || prev == i {
		return err
	}
	if rerr := c.start(prev); rerr != nil {
		c.log.Error().Err(rerr).Str("device", c.devices[prev].Name).Msg("cannot restore audio device")
		c.current = -1
	}
	return err
}

func (c *Capture) start(i int) error {
	d := c.devices[i]
	s, closer, err := d.Open()
	if err != nil {
		return err
	}

	c.stop()
	t := newTap(s, config.VisualRingSize)
	if c.output != nil {
		if err := c.output.Play(t); err != nil {
			_ = closer.Close()
			return fmt.Errorf("play %s: %w", d.Name, err)
		}
	}
	c.tap = t
	c.closer = closer
	c.current = i
	c.log.Info().Str("device", d.Name).Msg("audio device opened")
	return nil
}

func (c *Capture) stop() {
	if c.output != nil && c.tap != nil {
		c.output.Clear()
	}
	if c.closer != nil {
		_ = c.closer.Close()
		c.closer = nil
	}
	c.tap = nil
}

// Close stops the active device.
func (c *Capture) Close() {
	c.stop()
	c.current = -1
}

func (c *Capture) toast(msg string) {
	if c.notifier != nil {
		c.notifier.PublishToast(notify.Toast{Text: msg})
	}
}

var _ beep.Streamer = (*tap)(nil)
