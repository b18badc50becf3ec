// Package imagefile decodes still images from disk into rain bitmaps.
// PNG, JPEG, GIF, BMP and WebP are supported.
package imagefile

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/vovakirdan/tui-rain/internal/rain"
)

// Load reads and decodes the image at path.
func Load(path string) (*rain.Bitmap, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("imagefile: failed to open %s: %w", path, err)
	}
	defer f.Close()

	bm, format, err := Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("imagefile: %s: %w", path, err)
	}
	return bm, format, nil
}

// Decode decodes an image stream and returns the bitmap and the format name
// reported by the decoder ("png", "jpeg", "gif", "bmp", "webp").
func Decode(r io.Reader) (*rain.Bitmap, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return rain.FromImage(img), format, nil
}

// DecodeBytes is Decode over an in-memory buffer.
func DecodeBytes(data []byte) (*rain.Bitmap, string, error) {
	return Decode(bytes.NewReader(data))
}
