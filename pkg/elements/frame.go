package elements

import (
	"math"

	"github.com/photonlab/go-optical-bench/pkg/core"
)

// Rays closer to parallel than this never intersect an element plane.
const parallelEpsilon = 1e-9

// Frame is the local coordinate system of an element: a position, the
// plane normal (which doubles as the optical axis for transmissive
// elements), and two transverse basis vectors.
type Frame struct {
	Position core.Vec3
	Normal   core.Vec3
	Right    core.Vec3
	Up       core.Vec3
}

// NewFrame creates a frame at a position with the given plane normal.
// The transverse basis is derived from the normal.
func NewFrame(position, normal core.Vec3) Frame {
	n := normal.Normalize()
	right, up := core.OrthonormalBasis(n)
	return Frame{Position: position, Normal: n, Right: right, Up: up}
}

// Intersect finds the forward intersection of a ray with the frame's
// transverse plane. Returns the hit point and false when the ray is
// parallel to the plane or the intersection lies behind the ray origin.
func (f Frame) Intersect(ray core.Ray) (core.Vec3, bool) {
	denom := ray.Direction.Dot(f.Normal)
	if math.Abs(denom) < parallelEpsilon {
		return core.Vec3{}, false
	}

	t := f.Position.Subtract(ray.Origin).Dot(f.Normal) / denom
	if t < parallelEpsilon {
		return core.Vec3{}, false
	}

	return ray.At(t), true
}

// LocalOffsets expresses a point's transverse displacement from the
// frame origin in (right, up) coordinates.
func (f Frame) LocalOffsets(point core.Vec3) (u, v float64) {
	rel := point.Subtract(f.Position)
	return rel.Dot(f.Right), rel.Dot(f.Up)
}

// AxialDistance returns the signed distance from a point to the frame's
// plane, measured along the normal.
func (f Frame) AxialDistance(point core.Vec3) float64 {
	return f.Position.Subtract(point).Dot(f.Normal)
}
