package elements

import (
	"fmt"

	"github.com/photonlab/go-optical-bench/pkg/core"
)

// Aperture is an opaque circular plate with a circular opening, the
// round analogue of Slit. The open-region boundary is inclusive.
type Aperture struct {
	Frame       Frame
	Radius      float64 // radius of the opening
	PlateRadius float64 // outer radius of the opaque plate
}

// NewAperture creates an aperture at position facing normal.
func NewAperture(position, normal core.Vec3, radius, plateRadius float64) (*Aperture, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("aperture: opening radius must be positive, got %g", radius)
	}
	if plateRadius < radius {
		return nil, fmt.Errorf("aperture: plate radius %g smaller than opening %g", plateRadius, radius)
	}
	return &Aperture{
		Frame:       NewFrame(position, normal),
		Radius:      radius,
		PlateRadius: plateRadius,
	}, nil
}

// Name implements Element
func (a *Aperture) Name() string { return "aperture" }

// Interact implements Element
func (a *Aperture) Interact(ray, _ core.Ray) Outcome {
	hit, ok := a.Frame.Intersect(ray)
	if !ok {
		return Miss()
	}

	u, v := a.Frame.LocalOffsets(hit)
	r2 := u*u + v*v
	if r2 <= a.Radius*a.Radius {
		return Redirect(ray.Derive(hit, ray.Direction))
	}
	if r2 <= a.PlateRadius*a.PlateRadius {
		return Absorb(hit, ray)
	}
	return Miss()
}
