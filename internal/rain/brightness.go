package rain

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/vovakirdan/tui-rain/internal/core"
)

// PixelFormat identifies how a Bitmap's bytes encode one pixel.
type PixelFormat int

const (
	// FormatRGB565 is 16-bit packed RGB, little-endian.
	FormatRGB565 PixelFormat = iota + 1
	// FormatARGB8888 is 32-bit ARGB with straight alpha, stored as a
	// little-endian uint32 (bytes B, G, R, A).
	FormatARGB8888
)

// String returns the format name.
func (f PixelFormat) String() string {
	switch f {
	case FormatRGB565:
		return "RGB565"
	case FormatARGB8888:
		return "ARGB8888"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// BytesPerPixel returns the pixel size, or 0 for unknown formats.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatRGB565:
		return 2
	case FormatARGB8888:
		return 4
	default:
		return 0
	}
}

// Bitmap is a raw still image supplied as a reveal target.
type Bitmap struct {
	Width  int
	Height int
	Format PixelFormat
	Stride int // bytes per row; 0 means Width*BytesPerPixel
	Data   []byte
}

// FromImage converts any image.Image into an ARGB8888 bitmap.
func FromImage(img image.Image) *Bitmap {
	b := img.Bounds()
	bm := &Bitmap{
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: FormatARGB8888,
		Data:   make([]byte, b.Dx()*b.Dy()*4),
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			bm.Data[i+0] = c.B
			bm.Data[i+1] = c.G
			bm.Data[i+2] = c.R
			bm.Data[i+3] = c.A
			i += 4
		}
	}
	return bm
}

func (bm *Bitmap) stride() int {
	if bm.Stride > 0 {
		return bm.Stride
	}
	return bm.Width * bm.Format.BytesPerPixel()
}

// luma approximates ITU-R BT.601 with integer weights.
func luma(r, g, b uint32) uint8 {
	return uint8((r*77 + g*151 + b*28) >> 8)
}

// PixelBrightness returns the brightness of one pixel in 0..255. Unknown
// formats and out-of-range reads yield 0.
func (bm *Bitmap) PixelBrightness(x, y int) uint8 {
	if x < 0 || y < 0 || x >= bm.Width || y >= bm.Height {
		return 0
	}
	bpp := bm.Format.BytesPerPixel()
	if bpp == 0 {
		return 0
	}
	off := y*bm.stride() + x*bpp
	if off < 0 || off+bpp > len(bm.Data) {
		return 0
	}
	px := bm.Data[off : off+bpp]
	switch bm.Format {
	case FormatRGB565:
		v := uint32(binary.LittleEndian.Uint16(px))
		r5 := (v >> 11) & 0x1F
		g6 := (v >> 5) & 0x3F
		b5 := v & 0x1F
		return luma(r5<<3|r5>>2, g6<<2|g6>>4, b5<<3|b5>>2)
	case FormatARGB8888:
		b, g, r, a := uint32(px[0]), uint32(px[1]), uint32(px[2]), uint32(px[3])
		return uint8(uint32(luma(r, g, b)) * a / 255)
	}
	return 0
}

// BrightnessMap box-averages bm down to one brightness byte per grid cell,
// row-major. A nil bitmap yields nil; a zero-sized one yields all zeros.
func BrightnessMap(bm *Bitmap, cols, rows int) []uint8 {
	if bm == nil || cols <= 0 || rows <= 0 {
		return nil
	}
	out := make([]uint8, cols*rows)
	if bm.Width <= 0 || bm.Height <= 0 {
		return out
	}
	sx := float64(bm.Width) / float64(cols)
	sy := float64(bm.Height) / float64(rows)
	for r := 0; r < rows; r++ {
		y0, y1 := span(r, sy, bm.Height)
		for c := 0; c < cols; c++ {
			x0, x1 := span(c, sx, bm.Width)
			var sum, n int
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					sum += int(bm.PixelBrightness(x, y))
					n++
				}
			}
			if n > 0 {
				out[r*cols+c] = uint8(sum / n)
			}
		}
	}
	return out
}

// span returns the source range [lo, hi) covered by destination index i.
// Ranges are at least one pixel wide so upscaling picks the nearest pixel.
func span(i int, scale float64, limit int) (int, int) {
	lo := int(float64(i) * scale)
	hi := int(float64(i+1) * scale)
	lo = core.Clamp(lo, 0, limit-1)
	if hi <= lo {
		hi = lo + 1
	}
	return lo, core.Clamp(hi, lo+1, limit)
}

// brightnessRamp maps brightness to a character, darkest first.
const brightnessRamp = " .:-=+*#%@"

// WriteBrightnessMap prints a brightness map as ASCII art, one line per row.
func WriteBrightnessMap(w io.Writer, m []uint8, cols int) error {
	if cols <= 0 || len(m) == 0 {
		_, err := io.WriteString(w, "(no brightness map)\n")
		return err
	}
	var sb strings.Builder
	for i, b := range m {
		sb.WriteByte(brightnessRamp[int(b)*(len(brightnessRamp)-1)/255])
		if (i+1)%cols == 0 {
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
