package tracer

import "github.com/photonlab/go-optical-bench/pkg/core"

// ActivePath is the unit of propagation state: the ray as it currently
// travels, the original seed ray of its lineage, and the points visited
// so far (for visualization only). A path is created from a seed ray,
// forked when an element splits it, and terminated at a detector,
// an opaque plate, or the bench boundary.
type ActivePath struct {
	Ray        core.Ray
	Seed       core.Ray
	Points     []core.Vec3
	Terminated bool
	HasSplit   bool // set once anything in this lineage split; display-only
}

// newActivePath starts a path from a seed ray.
func newActivePath(seed core.Ray) *ActivePath {
	return &ActivePath{
		Ray:    seed,
		Seed:   seed,
		Points: []core.Vec3{seed.Origin},
	}
}

// advance replaces the path's ray and appends the new origin to the
// polyline.
func (p *ActivePath) advance(ray core.Ray) {
	p.Ray = ray
	p.Points = append(p.Points, ray.Origin)
}

// fork creates a child path for one split ray, sharing the seed and the
// polyline-so-far.
func (p *ActivePath) fork(child core.Ray) *ActivePath {
	points := make([]core.Vec3, len(p.Points), len(p.Points)+1)
	copy(points, p.Points)
	points = append(points, child.Origin)

	return &ActivePath{
		Ray:      child,
		Seed:     p.Seed,
		Points:   points,
		HasSplit: true,
	}
}

// terminate marks the path finished at a final point.
func (p *ActivePath) terminate(point core.Vec3) {
	p.Points = append(p.Points, point)
	p.Terminated = true
}

// displayColor picks the color a polyline is drawn with: the ray's
// resolved color if it has one, otherwise the color of its wavelength.
func (p *ActivePath) displayColor() core.Vec3 {
	if p.Ray.Color != nil {
		return *p.Ray.Color
	}
	return core.WavelengthToRGB(p.Ray.Wavelength)
}
