package scene

import (
	"fmt"
	"sort"
)

// Info describes one bench preset for CLIs and the web API.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	NeedsImage  bool   `json:"needsImage"`
	HasDetector bool   `json:"hasDetector"`
}

// Options configures bench construction.
type Options struct {
	GridSize  int    // detector pixels per side
	ImagePath string // object image, camera bench only
}

// DefaultGridSize is used when Options.GridSize is zero.
const DefaultGridSize = 64

var benchInfos = []Info{
	{ID: "spectrometer", Name: "Slit Spectrometer", Description: "White line source, slit, transmissive grating", HasDetector: true},
	{ID: "folded-spectrometer", Name: "Folded Spectrometer", Description: "Reflective grating at 45 degrees", HasDetector: true},
	{ID: "mirror-focus", Name: "Mirror Focus", Description: "Flat fold mirror into a focusing spherical mirror", HasDetector: true},
	{ID: "aperture", Name: "Aperture Clip", Description: "Random disc beam clipped by a circular aperture", HasDetector: true},
	{ID: "collimator", Name: "Two-Lens Collimator", Description: "Beam expander; reports collimation quality"},
	{ID: "camera", Name: "Camera", Description: "Images an object picture through a thin lens", NeedsImage: true, HasDetector: true},
}

// List returns all bench presets sorted by ID.
func List() []Info {
	infos := make([]Info, len(benchInfos))
	copy(infos, benchInfos)
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// New constructs a bench preset by ID.
func New(id string, opts Options) (*Bench, error) {
	gridSize := opts.GridSize
	if gridSize == 0 {
		gridSize = DefaultGridSize
	}

	switch id {
	case "spectrometer":
		return NewSpectrometerBench(gridSize)
	case "folded-spectrometer":
		return NewFoldedSpectrometerBench(gridSize)
	case "mirror-focus":
		return NewMirrorFocusBench(gridSize)
	case "aperture":
		return NewApertureBench(gridSize)
	case "collimator":
		return NewCollimatorBench()
	case "camera":
		if opts.ImagePath == "" {
			return nil, fmt.Errorf("bench camera: an object image is required (-image)")
		}
		return NewCameraBench(opts.ImagePath, gridSize)
	default:
		return nil, fmt.Errorf("unknown bench: %s", id)
	}
}
