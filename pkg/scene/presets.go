package scene

import (
	"fmt"

	"github.com/photonlab/go-optical-bench/pkg/core"
	"github.com/photonlab/go-optical-bench/pkg/elements"
	"github.com/photonlab/go-optical-bench/pkg/loaders"
	"github.com/photonlab/go-optical-bench/pkg/tracer"
)

// Benches propagate along +X unless an element folds the beam.

// NewSpectrometerBench builds the classic slit spectrometer: a white
// line source through a slit onto a transmissive grating, orders
// landing on a detector.
func NewSpectrometerBench(gridSize int) (*Bench, error) {
	slit, err := elements.NewSlit(core.NewVec3(2, 0, 0), core.NewVec3(1, 0, 0), 1.2, 1.2, 6, 6)
	if err != nil {
		return nil, err
	}
	grating, err := elements.NewTransmissiveGrating(core.NewVec3(4, 0, 0), core.NewVec3(1, 0, 0),
		600, 4, 4, elements.GroovesVertical)
	if err != nil {
		return nil, err
	}
	detector, err := elements.NewDetector(core.NewVec3(10, 0, 0), core.NewVec3(-1, 0, 0), 8, gridSize)
	if err != nil {
		return nil, err
	}

	return &Bench{
		Name:     "spectrometer",
		Elements: []elements.Element{slit, grating, detector},
		Detector: detector,
		Source: tracer.PatternConfig{
			Kind:      tracer.PatternLine,
			Count:     5,
			Origin:    core.NewVec3(0, 0, 0),
			Direction: core.NewVec3(1, 0, 0),
			Size:      0.5,
			White:     true,
		},
		Trace: tracer.DefaultTraceConfig(),
	}, nil
}

// NewFoldedSpectrometerBench folds the beam with a reflective grating
// at 45 degrees; orders land on a detector above the grating.
func NewFoldedSpectrometerBench(gridSize int) (*Bench, error) {
	grating, err := elements.NewReflectiveGrating(core.NewVec3(6, 0, 0), core.NewVec3(-1, 1, 0),
		600, 4, 4, elements.GroovesVertical)
	if err != nil {
		return nil, err
	}
	detector, err := elements.NewDetector(core.NewVec3(6, 5, 0), core.NewVec3(0, -1, 0), 8, gridSize)
	if err != nil {
		return nil, err
	}

	return &Bench{
		Name:     "folded-spectrometer",
		Elements: []elements.Element{grating, detector},
		Detector: detector,
		Source: tracer.PatternConfig{
			Kind:      tracer.PatternLine,
			Count:     5,
			Origin:    core.NewVec3(0, 0, 0),
			Direction: core.NewVec3(1, 0, 0),
			Size:      0.4,
			White:     true,
		},
		Trace: tracer.DefaultTraceConfig(),
	}, nil
}

// NewMirrorFocusBench folds a collimated beam off a 45-degree flat
// mirror onto a spherical mirror, which focuses it onto the detector.
func NewMirrorFocusBench(gridSize int) (*Bench, error) {
	fold, err := elements.NewFlatMirror(core.NewVec3(4, 0, 0), core.NewVec3(-1, 1, 0), 4, 4)
	if err != nil {
		return nil, err
	}
	// f = -R/2 = 4: focus lands 4 units below the mirror
	focusing, err := elements.NewSphericalMirror(core.NewVec3(4, 6, 0), core.NewVec3(0, -1, 0), -8, 4, 4)
	if err != nil {
		return nil, err
	}
	detector, err := elements.NewDetector(core.NewVec3(4, 2, 0), core.NewVec3(0, 1, 0), 4, gridSize)
	if err != nil {
		return nil, err
	}

	return &Bench{
		Name:     "mirror-focus",
		Elements: []elements.Element{fold, focusing, detector},
		Detector: detector,
		Source: tracer.PatternConfig{
			Kind:      tracer.PatternLine,
			Count:     7,
			Origin:    core.NewVec3(0, 0, 0),
			Direction: core.NewVec3(1, 0, 0),
			Size:      1.0,
		},
		Trace: tracer.DefaultTraceConfig(),
	}, nil
}

// NewApertureBench sends a randomly sampled disc beam through a
// circular aperture: the detector shows the clipped beam footprint.
func NewApertureBench(gridSize int) (*Bench, error) {
	aperture, err := elements.NewAperture(core.NewVec3(3, 0, 0), core.NewVec3(1, 0, 0), 0.8, 4)
	if err != nil {
		return nil, err
	}
	detector, err := elements.NewDetector(core.NewVec3(6, 0, 0), core.NewVec3(-1, 0, 0), 4, gridSize)
	if err != nil {
		return nil, err
	}

	return &Bench{
		Name:     "aperture",
		Elements: []elements.Element{aperture, detector},
		Detector: detector,
		Source: tracer.PatternConfig{
			Kind:       tracer.PatternDisc,
			Count:      400,
			Origin:     core.NewVec3(0, 0, 0),
			Direction:  core.NewVec3(1, 0, 0),
			Size:       1.5,
			Wavelength: 620,
		},
		Trace: tracer.DefaultTraceConfig(),
	}, nil
}

// NewCollimatorBench is a two-lens beam expander: lens two sits at the
// focal point of lens one, so a collimated beam emerges collimated and
// magnified. No detector; the collimation diagnostic runs on the
// emergent rays.
func NewCollimatorBench() (*Bench, error) {
	lens1, err := elements.NewThinLens(core.NewVec3(2, 0, 0), core.NewVec3(1, 0, 0), 2, 2)
	if err != nil {
		return nil, err
	}
	lens2, err := elements.NewThinLens(core.NewVec3(8, 0, 0), core.NewVec3(1, 0, 0), 4, 4)
	if err != nil {
		return nil, err
	}

	cfg := tracer.DefaultTraceConfig()
	cfg.TailLength = 6

	return &Bench{
		Name:     "collimator",
		Elements: []elements.Element{lens1, lens2},
		Source: tracer.PatternConfig{
			Kind:      tracer.PatternLine,
			Count:     9,
			Origin:    core.NewVec3(0, 0, 0),
			Direction: core.NewVec3(1, 0, 0),
			Size:      0.8,
		},
		Trace: cfg,
	}, nil
}

// Camera bench geometry: the object plane sits at the origin, the lens
// images it onto the detector at the conjugate distance.
const (
	cameraObjectWidth  = 2.0
	cameraObjectDist   = 4.0
	cameraFocalLength  = 1.6
	cameraAperture     = 0.6
	cameraObjectPixels = 16
)

// NewCameraBench loads an object image and builds the imaging setup.
func NewCameraBench(imagePath string, gridSize int) (*Bench, error) {
	data, err := loaders.LoadImage(imagePath)
	if err != nil {
		return nil, fmt.Errorf("camera bench: %w", err)
	}
	return NewCameraBenchFromImage(data, gridSize)
}

// NewCameraBenchFromImage builds the imaging setup from already-loaded
// image data: every object pixel becomes a small cone of colored rays
// through the lens, focused onto the detector.
func NewCameraBenchFromImage(data *loaders.ImageData, gridSize int) (*Bench, error) {
	reduced, err := data.Downsample(cameraObjectPixels, cameraObjectPixels)
	if err != nil {
		return nil, fmt.Errorf("camera bench: %w", err)
	}

	lensCenter := core.NewVec3(cameraObjectDist, 0, 0)
	lens, err := elements.NewThinLens(lensCenter, core.NewVec3(1, 0, 0), cameraFocalLength, cameraAperture)
	if err != nil {
		return nil, err
	}
	lens.Imaging = true

	stop, err := elements.NewAperture(core.NewVec3(cameraObjectDist-0.2, 0, 0), core.NewVec3(1, 0, 0),
		cameraAperture+0.05, 3)
	if err != nil {
		return nil, err
	}

	// Gaussian conjugate: 1/so + 1/si = 1/f
	imageDist := cameraObjectDist * cameraFocalLength / (cameraObjectDist - cameraFocalLength)
	magnification := imageDist / cameraObjectDist
	detector, err := elements.NewDetector(
		core.NewVec3(cameraObjectDist+imageDist, 0, 0), core.NewVec3(-1, 0, 0),
		cameraObjectWidth*magnification*1.2, gridSize)
	if err != nil {
		return nil, err
	}

	return &Bench{
		Name:     "camera",
		Elements: []elements.Element{stop, lens, detector},
		Detector: detector,
		Source: tracer.PatternConfig{
			Kind:           tracer.PatternObjectGrid,
			Origin:         core.NewVec3(0, 0, 0),
			Direction:      core.NewVec3(1, 0, 0),
			Samples:        reduced.ObjectSamples(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), cameraObjectWidth),
			LensCenter:     lensCenter,
			ApertureRadius: cameraAperture,
		},
		Trace: tracer.DefaultTraceConfig(),
	}, nil
}
