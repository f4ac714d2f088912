package sensor

import (
	"image"
	"image/color"

	"github.com/photonlab/go-optical-bench/pkg/core"
)

// Mode selects how accumulated intensities become pixels.
type Mode int

const (
	// ModeGrayscale averages the filtered grid's three channels.
	ModeGrayscale Mode = iota
	// ModeBayer outputs one filtered channel per pixel following the
	// repeating 2x2 pattern G R / B G.
	ModeBayer
	// ModeDemosaiced outputs full RGB from the true-color grid.
	ModeDemosaiced
)

// ParseMode maps a mode name to its Mode, defaulting to demosaiced.
func ParseMode(name string) Mode {
	switch name {
	case "grayscale":
		return ModeGrayscale
	case "bayer":
		return ModeBayer
	default:
		return ModeDemosaiced
	}
}

// Image converts the accumulated grids into a final pixel image. Each
// grid is normalized by its own running maximum; a zero maximum (no
// hits) renders black. Scaling every accumulated intensity by a positive
// constant therefore leaves the output unchanged.
func (a *Accumulator) Image(mode Mode) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, a.gridSize, a.gridSize))

	for py := 0; py < a.gridSize; py++ {
		for px := 0; px < a.gridSize; px++ {
			var c color.RGBA
			switch mode {
			case ModeGrayscale:
				c = a.grayscalePixel(px, py)
			case ModeBayer:
				c = a.bayerPixel(px, py)
			default:
				c = a.demosaicedPixel(px, py)
			}
			img.SetRGBA(px, py, c)
		}
	}

	return img
}

// normalized scales one cell's channels by the grid maximum into [0,1].
func normalized(grid []core.Vec3, i int, gridMax float64) core.Vec3 {
	if gridMax == 0 {
		return core.Vec3{}
	}
	return grid[i].Multiply(1 / gridMax).Clamp(0, 1)
}

func (a *Accumulator) demosaicedPixel(px, py int) color.RGBA {
	rgb := normalized(a.trueColor, py*a.gridSize+px, a.maxTrue)
	return color.RGBA{
		R: uint8(255 * rgb.X),
		G: uint8(255 * rgb.Y),
		B: uint8(255 * rgb.Z),
		A: 255,
	}
}

func (a *Accumulator) grayscalePixel(px, py int) color.RGBA {
	rgb := normalized(a.filtered, py*a.gridSize+px, a.maxFiltered)
	gray := uint8(255 * (rgb.X + rgb.Y + rgb.Z) / 3)
	return color.RGBA{R: gray, G: gray, B: gray, A: 255}
}

// bayerPixel keeps only the channel the pixel's filter admits:
// even row: G R G R ...; odd row: B G B G ...
func (a *Accumulator) bayerPixel(px, py int) color.RGBA {
	rgb := normalized(a.filtered, py*a.gridSize+px, a.maxFiltered)
	c := color.RGBA{A: 255}
	switch {
	case py%2 == 0 && px%2 == 0:
		c.G = uint8(255 * rgb.Y)
	case py%2 == 0:
		c.R = uint8(255 * rgb.X)
	case px%2 == 0:
		c.B = uint8(255 * rgb.Z)
	default:
		c.G = uint8(255 * rgb.Y)
	}
	return c
}
