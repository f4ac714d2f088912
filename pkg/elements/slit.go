package elements

import (
	"fmt"
	"math"

	"github.com/photonlab/go-optical-bench/pkg/core"
)

// Slit is an opaque plate with a rectangular opening. Rays through the
// opening pass undeviated, rays onto the plate are absorbed, rays past
// the plate's outer edge miss entirely.
//
// Boundary convention: the open region is inclusive — a ray exactly on
// the opening's edge passes through. The plate's outer bound is likewise
// inclusive for absorption.
type Slit struct {
	Frame       Frame
	OpenWidth   float64
	OpenHeight  float64
	PlateWidth  float64
	PlateHeight float64
}

// NewSlit creates a slit at position facing normal.
func NewSlit(position, normal core.Vec3, openWidth, openHeight, plateWidth, plateHeight float64) (*Slit, error) {
	if openWidth <= 0 || openHeight <= 0 {
		return nil, fmt.Errorf("slit: opening must be positive, got %gx%g", openWidth, openHeight)
	}
	if plateWidth < openWidth || plateHeight < openHeight {
		return nil, fmt.Errorf("slit: plate %gx%g smaller than opening %gx%g",
			plateWidth, plateHeight, openWidth, openHeight)
	}
	return &Slit{
		Frame:       NewFrame(position, normal),
		OpenWidth:   openWidth,
		OpenHeight:  openHeight,
		PlateWidth:  plateWidth,
		PlateHeight: plateHeight,
	}, nil
}

// Name implements Element
func (s *Slit) Name() string { return "slit" }

// Interact implements Element
func (s *Slit) Interact(ray, _ core.Ray) Outcome {
	hit, ok := s.Frame.Intersect(ray)
	if !ok {
		return Miss()
	}

	u, v := s.Frame.LocalOffsets(hit)
	if math.Abs(u) <= s.OpenWidth/2 && math.Abs(v) <= s.OpenHeight/2 {
		return Redirect(ray.Derive(hit, ray.Direction))
	}
	if math.Abs(u) <= s.PlateWidth/2 && math.Abs(v) <= s.PlateHeight/2 {
		return Absorb(hit, ray)
	}
	return Miss()
}
