package core

import "math"

// Bounds is the axis-aligned box containing the optical bench. The
// tracer terminates any path whose ray leaves it.
type Bounds struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewBounds creates bounds from min and max corners
func NewBounds(min, max Vec3) Bounds {
	return Bounds{Min: min, Max: max}
}

// NewBoundsFromPoints creates bounds containing all given points
func NewBoundsFromPoints(points ...Vec3) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return Bounds{Min: min, Max: max}
}

// Contains reports whether a point lies inside the bounds (inclusive).
func (b Bounds) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Center returns the center point of the bounds
func (b Bounds) Center() Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// Size returns the extent of the bounds along each axis
func (b Bounds) Size() Vec3 {
	return b.Max.Subtract(b.Min)
}

// Expand returns bounds grown by the given amount in all directions
func (b Bounds) Expand(amount float64) Bounds {
	expansion := NewVec3(amount, amount, amount)
	return Bounds{
		Min: b.Min.Subtract(expansion),
		Max: b.Max.Add(expansion),
	}
}
