package imagefile

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/vovakirdan/tui-rain/internal/rain"
)

func testImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if x >= 2 {
				img.Set(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				img.Set(x, y, color.NRGBA{A: 255})
			}
		}
	}
	return img
}

func checkBitmap(t *testing.T, bm *rain.Bitmap) {
	t.Helper()
	if bm.Width != 4 || bm.Height != 2 {
		t.Fatalf("bitmap = %dx%d, expected 4x2", bm.Width, bm.Height)
	}
	m := rain.BrightnessMap(bm, 2, 1)
	if m[0] != 0 || m[1] != 255 {
		t.Errorf("brightness map = %v, expected [0 255]", m)
	}
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}

	bm, format, err := DecodeBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeBytes() failed: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, expected png", format)
	}
	checkBitmap(t, bm)
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}

	bm, format, err := DecodeBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeBytes() failed: %v", err)
	}
	if format != "bmp" {
		t.Errorf("format = %q, expected bmp", format)
	}
	checkBitmap(t, bm)
}

func TestLoadFromDisk(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "face.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	bm, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	checkBitmap(t, bm)
}

func TestLoadErrors(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("missing file should fail")
	}
	if _, _, err := DecodeBytes([]byte("not an image")); err == nil {
		t.Error("garbage should fail to decode")
	}
}
