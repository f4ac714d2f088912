package tracer

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/photonlab/go-optical-bench/pkg/core"
)

// PatternKind selects the shape of the seed ray population.
type PatternKind int

const (
	PatternLine PatternKind = iota
	PatternRing
	PatternCross
	PatternDisc
	PatternHeart
	PatternStar
	PatternSmile
	PatternObjectGrid
)

// Representative wavelengths emitted per seat in white mode.
var whiteWavelengths = []float64{420, 470, 520, 570, 620, 670}

// ObjectSample is one resolved point on the object plane for imaging
// setups: a position and the color the external image loader sampled
// there.
type ObjectSample struct {
	Point core.Vec3
	Color core.Vec3
}

// PatternConfig describes a seed ray source. Generation is stateless
// given the configuration; only the disc pattern draws random numbers,
// from Src (unseeded by default — disc output is statistical, not
// reproducible, unless the caller seeds it).
type PatternConfig struct {
	Kind       PatternKind
	Count      int
	Origin     core.Vec3
	Direction  core.Vec3
	Size       float64 // beam half-extent or radius
	Wavelength float64 // ignored in white mode; 0 means the default 532
	White      bool    // one ray per representative wavelength per seat

	// Imaging (PatternObjectGrid only): each object sample becomes a
	// chief ray toward the lens center plus four marginal rays toward
	// the aperture extremes, tagged with the sample's color.
	Samples        []ObjectSample
	LensCenter     core.Vec3
	ApertureRadius float64

	Src rand.Source
}

// GeneratePattern produces the seed ray population for one trace.
func GeneratePattern(cfg PatternConfig) ([]core.Ray, error) {
	if cfg.Kind == PatternObjectGrid {
		return generateObjectGrid(cfg)
	}

	if cfg.Count <= 0 {
		return nil, fmt.Errorf("pattern: count must be positive, got %d", cfg.Count)
	}
	if cfg.Direction.LengthSquared() == 0 {
		return nil, fmt.Errorf("pattern: direction must be non-zero")
	}

	dir := cfg.Direction.Normalize()
	right, up := core.OrthonormalBasis(dir)

	var offsets [][2]float64
	switch cfg.Kind {
	case PatternLine:
		offsets = lineOffsets(cfg.Count, cfg.Size)
	case PatternRing:
		offsets = ringOffsets(cfg.Count, cfg.Size)
	case PatternCross:
		offsets = crossOffsets(cfg.Count, cfg.Size)
	case PatternDisc:
		offsets = discOffsets(cfg.Count, cfg.Size, cfg.Src)
	case PatternHeart:
		offsets = silhouetteOffsets(cfg.Count, cfg.Size, heartPoint)
	case PatternStar:
		offsets = silhouetteOffsets(cfg.Count, cfg.Size, starPoint)
	case PatternSmile:
		offsets = smileOffsets(cfg.Count, cfg.Size)
	default:
		return nil, fmt.Errorf("pattern: unknown kind %d", cfg.Kind)
	}

	wavelengths := []float64{cfg.Wavelength}
	if cfg.White {
		wavelengths = whiteWavelengths
	} else if cfg.Wavelength == 0 {
		wavelengths = []float64{core.DefaultWavelength}
	}

	rays := make([]core.Ray, 0, len(offsets)*len(wavelengths))
	for _, o := range offsets {
		origin := cfg.Origin.
			Add(right.Multiply(o[0])).
			Add(up.Multiply(o[1]))
		for _, nm := range wavelengths {
			rays = append(rays, core.NewSpectralRay(origin, dir, nm))
		}
	}

	return rays, nil
}

// lineOffsets spaces seats evenly along the up axis.
func lineOffsets(count int, size float64) [][2]float64 {
	offsets := make([][2]float64, count)
	for i := range offsets {
		offsets[i] = [2]float64{0, spread(i, count, size)}
	}
	return offsets
}

// ringOffsets spaces seats angularly at a fixed radius.
func ringOffsets(count int, radius float64) [][2]float64 {
	offsets := make([][2]float64, count)
	for i := range offsets {
		a := 2 * math.Pi * float64(i) / float64(count)
		offsets[i] = [2]float64{radius * math.Cos(a), radius * math.Sin(a)}
	}
	return offsets
}

// crossOffsets combines two perpendicular linear arrays.
func crossOffsets(count int, size float64) [][2]float64 {
	horizontal := (count + 1) / 2
	vertical := count - horizontal

	offsets := make([][2]float64, 0, count)
	for i := 0; i < horizontal; i++ {
		offsets = append(offsets, [2]float64{spread(i, horizontal, size), 0})
	}
	for i := 0; i < vertical; i++ {
		offsets = append(offsets, [2]float64{0, spread(i, vertical, size)})
	}
	return offsets
}

// discOffsets samples the disc uniformly: r = R*sqrt(u), theta = 2*pi*u.
func discOffsets(count int, radius float64, src rand.Source) [][2]float64 {
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	uniform := distuv.Uniform{Min: 0, Max: 1, Src: src}

	offsets := make([][2]float64, count)
	for i := range offsets {
		r := radius * math.Sqrt(uniform.Rand())
		theta := 2 * math.Pi * uniform.Rand()
		offsets[i] = [2]float64{r * math.Cos(theta), r * math.Sin(theta)}
	}
	return offsets
}

// silhouetteOffsets samples a closed parametric curve at even parameter
// steps.
func silhouetteOffsets(count int, size float64, curve func(t float64) (x, y float64)) [][2]float64 {
	offsets := make([][2]float64, count)
	for i := range offsets {
		t := 2 * math.Pi * float64(i) / float64(count)
		x, y := curve(t)
		offsets[i] = [2]float64{x * size, y * size}
	}
	return offsets
}

// heartPoint evaluates the classic heart curve, scaled to roughly unit
// extent.
func heartPoint(t float64) (x, y float64) {
	x = 16 * math.Pow(math.Sin(t), 3) / 17
	y = (13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)) / 17
	return x, y
}

// starPoint evaluates a five-pointed star outline of roughly unit extent.
func starPoint(t float64) (x, y float64) {
	r := 0.55 + 0.45*math.Cos(5*t)
	return r * math.Cos(t), r * math.Sin(t)
}

// smileOffsets assembles a face silhouette: outline, mouth arc, two eyes.
func smileOffsets(count int, size float64) [][2]float64 {
	faceCount := count * 6 / 10
	mouthCount := count * 25 / 100
	eyeCount := count - faceCount - mouthCount

	offsets := make([][2]float64, 0, count)
	for i := 0; i < faceCount; i++ {
		a := 2 * math.Pi * float64(i) / float64(faceCount)
		offsets = append(offsets, [2]float64{size * math.Cos(a), size * math.Sin(a)})
	}
	// Mouth: lower arc from -150 to -30 degrees
	for i := 0; i < mouthCount; i++ {
		a := -5*math.Pi/6 + 2*math.Pi/3*float64(i)/float64(max(mouthCount-1, 1))
		offsets = append(offsets, [2]float64{0.6 * size * math.Cos(a), 0.6 * size * math.Sin(a)})
	}
	// Eyes: two short horizontal dashes
	for i := 0; i < eyeCount; i++ {
		side := -1.0
		if i%2 == 1 {
			side = 1.0
		}
		wiggle := 0.1 * size * float64(i/2) / float64(max(eyeCount/2, 1))
		offsets = append(offsets, [2]float64{side*0.35*size + wiggle, 0.35 * size})
	}
	return offsets
}

// generateObjectGrid expands each object sample into a small cone of
// colored rays aimed at the lens: one chief ray through the lens center
// and four marginal rays toward the aperture extremes.
func generateObjectGrid(cfg PatternConfig) ([]core.Ray, error) {
	if len(cfg.Samples) == 0 {
		return nil, fmt.Errorf("pattern: object grid needs at least one sample")
	}
	if cfg.ApertureRadius <= 0 {
		return nil, fmt.Errorf("pattern: aperture radius must be positive, got %g", cfg.ApertureRadius)
	}

	axis := cfg.LensCenter.Subtract(cfg.Origin)
	if axis.LengthSquared() == 0 {
		axis = cfg.Direction
	}
	right, up := core.OrthonormalBasis(axis.Normalize())

	targets := []core.Vec3{
		cfg.LensCenter,
		cfg.LensCenter.Add(right.Multiply(cfg.ApertureRadius)),
		cfg.LensCenter.Subtract(right.Multiply(cfg.ApertureRadius)),
		cfg.LensCenter.Add(up.Multiply(cfg.ApertureRadius)),
		cfg.LensCenter.Subtract(up.Multiply(cfg.ApertureRadius)),
	}

	rays := make([]core.Ray, 0, len(cfg.Samples)*len(targets))
	for _, sample := range cfg.Samples {
		for _, target := range targets {
			dir := target.Subtract(sample.Point)
			if dir.LengthSquared() == 0 {
				continue
			}
			rays = append(rays, core.NewColoredRay(sample.Point, dir, sample.Color))
		}
	}

	return rays, nil
}

// spread places index i of n evenly across [-size, size].
func spread(i, n int, size float64) float64 {
	if n == 1 {
		return 0
	}
	return -size + 2*size*float64(i)/float64(n-1)
}
