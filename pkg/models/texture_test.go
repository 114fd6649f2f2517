package models

import (
	"testing"

	"github.com/luccafm1/c3d-go/pkg/math3d"
)

func TestNilTextureSamplesWhite(t *testing.T) {
	var tex *Texture
	c := tex.Sample(0.5, 0.5)
	if c != math3d.V3(1, 1, 1) {
		t.Errorf("nil texture sample = %v, want white", c)
	}
}

func TestCheckerTextureAlternates(t *testing.T) {
	a := math3d.V3(1, 0, 1)
	b := math3d.V3(0, 0, 0)
	tex := NewCheckerTexture(4, 4, 1, a, b)

	if tex.Pixels[0] != a {
		t.Errorf("pixel (0,0) = %v, want %v", tex.Pixels[0], a)
	}
	if tex.Pixels[1] != b {
		t.Errorf("pixel (1,0) = %v, want %v", tex.Pixels[1], b)
	}
}

func TestTextureSampleVFlip(t *testing.T) {
	tex := NewTexture(2, 2)
	// Row 0 (top, v=1 in UV-space after flip) is red; row 1 (bottom, v=0) is blue.
	top := math3d.V3(1, 0, 0)
	bottom := math3d.V3(0, 0, 1)
	tex.Pixels[0*2+0] = top
	tex.Pixels[0*2+1] = top
	tex.Pixels[1*2+0] = bottom
	tex.Pixels[1*2+1] = bottom

	// v=1 should sample ty = (1-1)*(2-1) = 0 -> top row.
	if got := tex.Sample(0, 1); got != top {
		t.Errorf("Sample(_, 1) = %v, want top row color %v", got, top)
	}
	// v=0 should sample ty = (1-0)*(2-1) = 1 -> bottom row.
	if got := tex.Sample(0, 0); got != bottom {
		t.Errorf("Sample(_, 0) = %v, want bottom row color %v", got, bottom)
	}
}

func TestTextureSampleClampsOutOfRangeUV(t *testing.T) {
	tex := NewCheckerTexture(2, 2, 1, math3d.V3(1, 1, 1), math3d.V3(0, 0, 0))
	// Out-of-[0,1] UVs must clamp, not wrap or panic.
	_ = tex.Sample(-5, 5)
	_ = tex.Sample(5, -5)
}

func TestNewSolidTexture(t *testing.T) {
	c := math3d.V3(0.2, 0.4, 0.6)
	tex := NewSolidTexture(8, c)
	for _, p := range tex.Pixels {
		if p != c {
			t.Fatalf("solid texture pixel = %v, want uniform %v", p, c)
		}
	}
}
