package elements

import (
	"fmt"
	"math"

	"github.com/photonlab/go-optical-bench/pkg/core"
)

// FlatMirror reflects rays that hit its rectangular face.
type FlatMirror struct {
	Frame  Frame
	Width  float64 // extent along the frame's Right axis
	Height float64 // extent along the frame's Up axis
}

// NewFlatMirror creates a rectangular mirror at position facing normal.
func NewFlatMirror(position, normal core.Vec3, width, height float64) (*FlatMirror, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("flat mirror: dimensions must be positive, got %gx%g", width, height)
	}
	return &FlatMirror{
		Frame:  NewFrame(position, normal),
		Width:  width,
		Height: height,
	}, nil
}

// Name implements Element
func (m *FlatMirror) Name() string { return "flat-mirror" }

// Interact implements Element
func (m *FlatMirror) Interact(ray, _ core.Ray) Outcome {
	hit, ok := m.Frame.Intersect(ray)
	if !ok {
		return Miss()
	}

	u, v := m.Frame.LocalOffsets(hit)
	if math.Abs(u) > m.Width/2 || math.Abs(v) > m.Height/2 {
		return Miss()
	}

	return Redirect(ray.Derive(hit, ray.Direction.Reflect(m.Frame.Normal)))
}
