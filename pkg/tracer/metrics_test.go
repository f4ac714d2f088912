package tracer

import (
	"math"
	"testing"

	"github.com/photonlab/go-optical-bench/pkg/core"
)

func TestCollimationQuality(t *testing.T) {
	axis := core.NewVec3(1, 0, 0)

	parallel := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)),
		core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0)),
		core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(1, 0, 0)),
	}
	if q := CollimationQuality(parallel, axis); math.Abs(q) > 1e-12 {
		t.Errorf("perfectly collimated bundle: quality = %v, expected 0", q)
	}

	// Angles 0 and 0.1 rad: sample variance = 0.005
	spread := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)),
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(math.Cos(0.1), math.Sin(0.1), 0)),
	}
	if q := CollimationQuality(spread, axis); math.Abs(q-0.005) > 1e-9 {
		t.Errorf("two-ray bundle: quality = %v, expected 0.005", q)
	}
}

func TestCollimationQualityDegenerate(t *testing.T) {
	axis := core.NewVec3(1, 0, 0)

	if q := CollimationQuality(nil, axis); !math.IsNaN(q) {
		t.Errorf("quality of empty bundle = %v, expected NaN", q)
	}
	one := []core.Ray{core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))}
	if q := CollimationQuality(one, axis); !math.IsNaN(q) {
		t.Errorf("quality of single ray = %v, expected NaN", q)
	}
}

func TestCircleOfConfusion(t *testing.T) {
	tests := []struct {
		name         string
		focalLength  float64
		objectDist   float64
		detectorDist float64
		aperture     float64
		expected     float64
	}{
		{
			// so=4, f=2 images at si=4: detector in focus
			name:        "in focus",
			focalLength: 2, objectDist: 4, detectorDist: 4, aperture: 1,
			expected: 0,
		},
		{
			// one unit past the image plane: blur = a*(5-4)/4
			name:        "defocused",
			focalLength: 2, objectDist: 4, detectorDist: 5, aperture: 1,
			expected: 0.25,
		},
		{
			name:        "in front of the image plane",
			focalLength: 2, objectDist: 4, detectorDist: 3, aperture: 2,
			expected: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CircleOfConfusion(tt.focalLength, tt.objectDist, tt.detectorDist, tt.aperture)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("CircleOfConfusion() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCircleOfConfusionDegenerate(t *testing.T) {
	if got := CircleOfConfusion(2, 2, 4, 1); !math.IsInf(got, 1) {
		t.Errorf("object at the focal plane: got %v, expected +Inf", got)
	}
	if got := CircleOfConfusion(2, 0, 4, 1); !math.IsInf(got, 1) {
		t.Errorf("object on the lens plane: got %v, expected +Inf", got)
	}
}
