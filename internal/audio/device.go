package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/preset-visualizer/internal/config"
)

// Device is an audio input the capture can switch to.
type Device struct {
	Name string
	// Open starts the device. The returned closer releases it.
	Open func() (beep.Streamer, io.Closer, error)
}

// SilenceDevice produces no sound; it keeps the engine fed when no other
// input is available.
func SilenceDevice() Device {
	return Device{
		Name: "Silence",
		Open: func() (beep.Streamer, io.Closer, error) {
			return beep.Silence(-1), io.NopCloser(nil), nil
		},
	}
}

// FileDevice loops the audio file at path.
func FileDevice(path string) Device {
	return Device{
		Name: filepath.Base(path),
		Open: func() (beep.Streamer, io.Closer, error) {
			return openFile(path)
		},
	}
}

func openFile(path string) (beep.Streamer, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	// Decode based on extension
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, nil, errors.New("unsupported file type: " + ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}

	var s beep.Streamer = beep.Loop(-1, streamer)
	if format.SampleRate != config.SampleRate {
		s = beep.Resample(4, format.SampleRate, config.SampleRate, s)
	}
	return s, streamer, nil
}
