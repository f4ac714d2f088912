package elements

import (
	"fmt"
	"math"

	"github.com/photonlab/go-optical-bench/pkg/core"
)

// Detector absorbs every forward-traveling ray that reaches its plane
// and projects the absorption point onto a square pixel grid. The
// conversion of absorbed rays into an image belongs to the sensor
// accumulator; the detector only owns the geometry.
type Detector struct {
	Frame    Frame
	Size     float64 // physical side length of the sensor square
	GridSize int     // pixels per side
}

// NewDetector creates a detector at position facing normal.
func NewDetector(position, normal core.Vec3, size float64, gridSize int) (*Detector, error) {
	if size <= 0 {
		return nil, fmt.Errorf("detector: size must be positive, got %g", size)
	}
	if gridSize <= 0 {
		return nil, fmt.Errorf("detector: grid size must be positive, got %d", gridSize)
	}
	return &Detector{
		Frame:    NewFrame(position, normal),
		Size:     size,
		GridSize: gridSize,
	}, nil
}

// Name implements Element
func (d *Detector) Name() string { return "detector" }

// Interact implements Element
func (d *Detector) Interact(ray, _ core.Ray) Outcome {
	hit, ok := d.Frame.Intersect(ray)
	if !ok {
		return Miss()
	}
	return Absorb(hit, ray)
}

// PixelAt projects a point on the detector plane to integer pixel
// coordinates. Results may fall outside [0, GridSize); the accumulator
// discards those.
func (d *Detector) PixelAt(point core.Vec3) (px, py int) {
	u, v := d.Frame.LocalOffsets(point)
	scale := float64(d.GridSize) / d.Size
	px = int(math.Floor((u + d.Size/2) * scale))
	py = int(math.Floor((v + d.Size/2) * scale))
	return px, py
}
