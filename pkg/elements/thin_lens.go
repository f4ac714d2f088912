package elements

import (
	"fmt"
	"math"

	"github.com/photonlab/go-optical-bench/pkg/core"
)

// Denominators smaller than this trigger the degenerate-imaging fallback
// instead of producing infinite conjugate distances.
const conjugateEpsilon = 1e-9

// ThinLens bends rays under the thin-lens/paraxial approximation. The
// lens occupies the disc of radius Aperture in its transverse plane.
//
// Two interaction modes:
//   - paraxial-angle mode (default): each transverse direction component
//     is reduced by h/f, where h is the ray height at the lens plane.
//     A collimated beam converges to a point at distance f.
//   - imaging mode (Imaging=true): the seed ray's origin is treated as a
//     resolved object point; the ray is redirected from the lens plane
//     toward the conjugate image point given by the Gaussian lens
//     equation and magnification -si/so.
//
// Imaging mode is an explicit configuration, never inferred from the
// ray's geometry.
type ThinLens struct {
	Frame       Frame
	FocalLength float64
	Aperture    float64 // radius of the clear disc
	Imaging     bool
}

// NewThinLens creates a lens centered at position with its optical axis
// along axis. Fails on zero focal length or a non-positive aperture.
func NewThinLens(position, axis core.Vec3, focalLength, aperture float64) (*ThinLens, error) {
	if focalLength == 0 {
		return nil, fmt.Errorf("thin lens: focal length must be non-zero")
	}
	if aperture <= 0 {
		return nil, fmt.Errorf("thin lens: aperture must be positive, got %g", aperture)
	}
	return &ThinLens{
		Frame:       NewFrame(position, axis),
		FocalLength: focalLength,
		Aperture:    aperture,
	}, nil
}

// Name implements Element
func (l *ThinLens) Name() string { return "thin-lens" }

// Interact implements Element
func (l *ThinLens) Interact(ray, seed core.Ray) Outcome {
	hit, ok := l.Frame.Intersect(ray)
	if !ok {
		return Miss()
	}

	u, v := l.Frame.LocalOffsets(hit)
	if u*u+v*v > l.Aperture*l.Aperture {
		return Miss()
	}

	if l.Imaging {
		return l.imageObject(ray, seed, hit)
	}

	// Paraxial deflection: d' = d - h/f on each transverse axis
	newDir := ray.Direction.
		Subtract(l.Frame.Right.Multiply(u / l.FocalLength)).
		Subtract(l.Frame.Up.Multiply(v / l.FocalLength))

	return Redirect(ray.Derive(hit, newDir))
}

// imageObject redirects the ray toward the conjugate image of the seed
// ray's object-space origin.
func (l *ThinLens) imageObject(ray, seed core.Ray, hit core.Vec3) Outcome {
	objectDist := l.Frame.AxialDistance(seed.Origin)

	// Object on the lens plane or exactly at the focal plane has no
	// finite conjugate; fall back to the undeviated ray through the
	// lens center.
	if math.Abs(objectDist) < conjugateEpsilon ||
		math.Abs(objectDist-l.FocalLength) < conjugateEpsilon {
		dir := l.Frame.Position.Subtract(seed.Origin)
		return Redirect(ray.Derive(hit, dir))
	}

	imageDist := objectDist * l.FocalLength / (objectDist - l.FocalLength)
	magnification := -imageDist / objectDist

	ou, ov := l.Frame.LocalOffsets(seed.Origin)
	imagePoint := l.Frame.Position.
		Add(l.Frame.Normal.Multiply(imageDist)).
		Add(l.Frame.Right.Multiply(ou * magnification)).
		Add(l.Frame.Up.Multiply(ov * magnification))

	return Redirect(ray.Derive(hit, imagePoint.Subtract(hit)))
}
