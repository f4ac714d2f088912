package elements

import (
	"fmt"
	"math"

	"github.com/photonlab/go-optical-bench/pkg/core"
)

// SphericalMirror focuses like a concave/convex mirror under the
// paraxial approximation: the intersection test uses the mirror's
// tangent plane (the curvature is not geometrically modeled), and the
// reflected direction receives a paraxial correction proportional to the
// transverse displacement over the focal length f = -R/2.
type SphericalMirror struct {
	Frame  Frame
	Radius float64 // radius of curvature; negative for a concave mirror facing +Normal
	Width  float64
	Height float64
}

// NewSphericalMirror creates a spherical mirror at position facing
// normal with the given radius of curvature.
func NewSphericalMirror(position, normal core.Vec3, radius, width, height float64) (*SphericalMirror, error) {
	if radius == 0 {
		return nil, fmt.Errorf("spherical mirror: radius of curvature must be non-zero")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("spherical mirror: dimensions must be positive, got %gx%g", width, height)
	}
	return &SphericalMirror{
		Frame:  NewFrame(position, normal),
		Radius: radius,
		Width:  width,
		Height: height,
	}, nil
}

// FocalLength returns the paraxial focal length -R/2.
func (m *SphericalMirror) FocalLength() float64 {
	return -m.Radius / 2
}

// Name implements Element
func (m *SphericalMirror) Name() string { return "spherical-mirror" }

// Interact implements Element
func (m *SphericalMirror) Interact(ray, _ core.Ray) Outcome {
	hit, ok := m.Frame.Intersect(ray)
	if !ok {
		return Miss()
	}

	u, v := m.Frame.LocalOffsets(hit)
	if math.Abs(u) > m.Width/2 || math.Abs(v) > m.Height/2 {
		return Miss()
	}

	f := m.FocalLength()
	newDir := ray.Direction.Reflect(m.Frame.Normal).
		Subtract(m.Frame.Right.Multiply(u / f)).
		Subtract(m.Frame.Up.Multiply(v / f))

	return Redirect(ray.Derive(hit, newDir))
}
