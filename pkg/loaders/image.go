package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/photonlab/go-optical-bench/pkg/core"
	"github.com/photonlab/go-optical-bench/pkg/tracer"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage loads a PNG or JPEG image and converts it to Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Auto-detects PNG/JPEG from the file header
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return fromImage(img), nil
}

// fromImage converts a decoded image to a Vec3 color array.
func fromImage(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// At returns the color at pixel (x, y).
func (d *ImageData) At(x, y int) core.Vec3 {
	return d.Pixels[y*d.Width+x]
}

// Downsample rescales the image to width x height with bilinear
// filtering. Imaging benches trace a handful of rays per object pixel,
// so the object image is reduced to a sparse grid first.
func (d *ImageData) Downsample(width, height int) (*ImageData, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("downsample: target size must be positive, got %dx%d", width, height)
	}

	src := image.NewRGBA(image.Rect(0, 0, d.Width, d.Height))
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			c := d.At(x, y).Clamp(0, 1)
			i := src.PixOffset(x, y)
			src.Pix[i+0] = uint8(255 * c.X)
			src.Pix[i+1] = uint8(255 * c.Y)
			src.Pix[i+2] = uint8(255 * c.Z)
			src.Pix[i+3] = 255
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	return fromImage(dst), nil
}

// ObjectSamples places the image on an object plane as a grid of colored
// sample points for an imaging trace. The plane is centered at center
// with the given normal; width is the physical width of the placed
// image, height follows the aspect ratio. The image's y axis maps to
// the plane's Up axis top-down.
func (d *ImageData) ObjectSamples(center, normal core.Vec3, width float64) []tracer.ObjectSample {
	right, up := core.OrthonormalBasis(normal.Normalize())
	height := width * float64(d.Height) / float64(d.Width)

	samples := make([]tracer.ObjectSample, 0, d.Width*d.Height)
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			u := (float64(x)+0.5)/float64(d.Width)*width - width/2
			v := height/2 - (float64(y)+0.5)/float64(d.Height)*height
			samples = append(samples, tracer.ObjectSample{
				Point: center.Add(right.Multiply(u)).Add(up.Multiply(v)),
				Color: d.At(x, y),
			})
		}
	}

	return samples
}
