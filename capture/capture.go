// Package capture writes framebuffer contents out as PNG files.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/anthonynsimon/bild/transform"
)

// Flip returns img mirrored vertically, with its origin moved to (0, 0).
// OpenGL reads pixels with the origin at the bottom left, images have theirs at
// the top left.
func Flip(img image.Image) *image.RGBA {
	return transform.FlipV(img)
}

// Save encodes img as a PNG in dir, named from prefix and the current time, and
// returns the path written. A partially written file is removed.
func Save(dir, prefix string, img image.Image) (string, error) {
	return save(dir, prefix, img, time.Now())
}

func save(dir, prefix string, img image.Image, now time.Time) (path string, err error) {
	name := fmt.Sprintf("%s-%s.png", prefix, now.Format("20060102-150405.000"))
	path = filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating screenshot: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
			path = ""
		}
	}()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding %v: %w", name, err)
	}
	return path, nil
}
