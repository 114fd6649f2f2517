package models

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/luccafm1/c3d-go/pkg/math3d"
)

// Texture is an RGB float[0,1] pixel buffer, immutable after load. A nil
// *Texture is the "null sentinel" §4.2 describes for a missing image;
// Sample on a nil (or empty) Texture returns white (mirrors the original's
// texsample, which special-cased a NULL data pointer the same way).
type Texture struct {
	Width, Height int
	Pixels        []math3d.Vec3 // row-major, length Width*Height
}

// NewTexture allocates a blank (black) texture of the given size.
func NewTexture(width, height int) *Texture {
	return &Texture{Width: width, Height: height, Pixels: make([]math3d.Vec3, width*height)}
}

// NewCheckerTexture synthesizes a two-color checkerboard, used as the
// fallback diffuse texture when a mesh folder has neither an explicit
// `map_Kd` nor a loose bitmap (§4.2).
func NewCheckerTexture(width, height, checkSize int, a, b math3d.Vec3) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			cell := (x/checkSize + y/checkSize) % 2
			c := a
			if cell == 1 {
				c = b
			}
			tex.Pixels[y*width+x] = c
		}
	}
	return tex
}

// NewSolidTexture synthesizes a uniform-color texture, used by the
// `colorize` behavior (§4.8).
func NewSolidTexture(size int, c math3d.Vec3) *Texture {
	return NewCheckerTexture(size, size, size, c, c)
}

// LoadTextureFile decodes a PNG/JPEG file from disk into a Texture.
func LoadTextureFile(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	return FromImage(img), nil
}

// FromImage converts a decoded image.Image into a Texture.
func FromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	tex := NewTexture(w, h)
	for y := range h {
		for x := range w {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			tex.Pixels[y*w+x] = math3d.V3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}
	return tex
}

// Sample reads the texture at normalized UV coordinates, wrapping with
// clamp-to-edge and flipping V per §4.6's `ty = (1-v)*(H-1)` rule.
func (t *Texture) Sample(u, v float64) math3d.Vec3 {
	if t == nil || len(t.Pixels) == 0 {
		return math3d.V3(1, 1, 1)
	}
	if u < 0 {
		u = 0
	} else if u > 1 {
		u = 1
	}
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}

	tx := int(u * float64(t.Width-1))
	ty := int((1 - v) * float64(t.Height-1))
	return t.Pixels[ty*t.Width+tx]
}
