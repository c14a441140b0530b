package viz

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// writeFrame stores img as a PNG in dir and returns the file path.
func writeFrame(img image.Image, dir string, now time.Time) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%s.png", now.Format("20060102-150405.000")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create debug image: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("encode debug image: %w", err)
	}
	return path, f.Close()
}
