package tracer

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/photonlab/go-optical-bench/pkg/core"
)

// CollimationQuality measures how parallel a bundle of emergent rays is:
// the variance of their angles to the given axis, in radians squared.
// Zero means perfectly collimated. Returns NaN for fewer than two rays.
func CollimationQuality(rays []core.Ray, axis core.Vec3) float64 {
	if len(rays) < 2 {
		return math.NaN()
	}

	unit := axis.Normalize()
	angles := make([]float64, len(rays))
	for i, r := range rays {
		cos := r.Direction.Dot(unit)
		angles[i] = math.Acos(max(-1, min(1, cos)))
	}

	return stat.Variance(angles, nil)
}

// CircleOfConfusion returns the blur-disc radius on a detector at
// detectorDist behind a lens of the given focal length and aperture
// radius, for an object at objectDist. An object at the focal plane
// images at infinity and returns +Inf.
func CircleOfConfusion(focalLength, objectDist, detectorDist, apertureRadius float64) float64 {
	if math.Abs(objectDist-focalLength) < 1e-12 || objectDist == 0 {
		return math.Inf(1)
	}

	imageDist := objectDist * focalLength / (objectDist - focalLength)
	if imageDist == 0 {
		return math.Inf(1)
	}

	// Similar triangles between the aperture and the defocused spot
	return math.Abs(apertureRadius * (detectorDist - imageDist) / imageDist)
}
