package loaders

import (
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/photonlab/go-optical-bench/pkg/core"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = uint8(255 * x / max(w-1, 1))
			img.Pix[i+1] = uint8(255 * y / max(h-1, 1))
			img.Pix[i+2] = 128
			img.Pix[i+3] = 255
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create temp png: %v", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("encode temp png: %v", err)
	}
	return path
}

func TestLoadImage(t *testing.T) {
	path := writeTestPNG(t, 4, 3)

	data, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if data.Width != 4 || data.Height != 3 {
		t.Fatalf("size = %dx%d, expected 4x3", data.Width, data.Height)
	}

	// Top-left pixel: R=0, G=0, B=128/255
	c := data.At(0, 0)
	if math.Abs(c.X) > 0.01 || math.Abs(c.Y) > 0.01 || math.Abs(c.Z-128.0/255.0) > 0.01 {
		t.Errorf("pixel (0,0) = %v, expected (0, 0, ~0.5)", c)
	}
}

func TestLoadImageMissingFile(t *testing.T) {
	if _, err := LoadImage("does-not-exist.png"); err == nil {
		t.Errorf("expected error for a missing file")
	}
}

func TestDownsample(t *testing.T) {
	data := &ImageData{
		Width:  2,
		Height: 2,
		Pixels: []core.Vec3{
			core.NewVec3(1, 0, 0), core.NewVec3(1, 0, 0),
			core.NewVec3(1, 0, 0), core.NewVec3(1, 0, 0),
		},
	}

	reduced, err := data.Downsample(8, 8)
	if err != nil {
		t.Fatalf("Downsample: %v", err)
	}
	if reduced.Width != 8 || reduced.Height != 8 {
		t.Fatalf("size = %dx%d, expected 8x8", reduced.Width, reduced.Height)
	}

	// A uniform red image stays uniform red at any size
	for i, p := range reduced.Pixels {
		if math.Abs(p.X-1) > 0.01 || p.Y > 0.01 || p.Z > 0.01 {
			t.Errorf("pixel %d = %v, expected red", i, p)
		}
	}
}

func TestDownsampleValidation(t *testing.T) {
	data := &ImageData{Width: 1, Height: 1, Pixels: []core.Vec3{{}}}
	if _, err := data.Downsample(0, 4); err == nil {
		t.Errorf("expected error for zero target width")
	}
	if _, err := data.Downsample(4, -1); err == nil {
		t.Errorf("expected error for negative target height")
	}
}

func TestObjectSamples(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	green := core.NewVec3(0, 1, 0)
	blue := core.NewVec3(0, 0, 1)
	white := core.NewVec3(1, 1, 1)
	data := &ImageData{
		Width:  2,
		Height: 2,
		Pixels: []core.Vec3{red, green, blue, white},
	}

	samples := data.ObjectSamples(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), 2)
	if len(samples) != 4 {
		t.Fatalf("samples = %d, expected 4", len(samples))
	}

	// For a +X normal the plane basis is right=(0,0,-1), up=(0,1,0);
	// image row 0 maps to the top of the plane.
	if s := samples[0]; s.Color != red {
		t.Errorf("sample 0 color = %v, expected red", s.Color)
	}
	if s := samples[0]; math.Abs(s.Point.Y-0.5) > 1e-9 || math.Abs(s.Point.Z-0.5) > 1e-9 {
		t.Errorf("sample 0 at %v, expected top-left (0, 0.5, 0.5)", s.Point)
	}
	if s := samples[3]; s.Color != white {
		t.Errorf("sample 3 color = %v, expected white", s.Color)
	}
	if s := samples[3]; math.Abs(s.Point.Y+0.5) > 1e-9 || math.Abs(s.Point.Z+0.5) > 1e-9 {
		t.Errorf("sample 3 at %v, expected bottom-right (0, -0.5, -0.5)", s.Point)
	}

	// All samples sit on the object plane
	for i, s := range samples {
		if math.Abs(s.Point.X) > 1e-9 {
			t.Errorf("sample %d off the plane: %v", i, s.Point)
		}
	}
}
