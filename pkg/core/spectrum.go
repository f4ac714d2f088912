package core

import "math"

// Visible spectrum limits in nanometers. Wavelengths outside map to black.
const (
	SpectrumMin = 380.0
	SpectrumMax = 780.0
)

// WavelengthToRGB maps a wavelength in nanometers to an RGB color in
// [0,1] using a piecewise-linear hue ramp over six bands, scaled by an
// intensity factor that tapers linearly at the violet and deep-red
// extremes. This is the "true color" of the light for visualization and
// demosaiced sensor output; the physical sensor response is modeled
// separately by FilterResponse.
func WavelengthToRGB(nm float64) Vec3 {
	if nm < SpectrumMin || nm > SpectrumMax {
		return Vec3{}
	}

	var r, g, b float64
	switch {
	case nm < 440:
		r = -(nm - 440) / (440 - 380)
		b = 1.0
	case nm < 490:
		g = (nm - 440) / (490 - 440)
		b = 1.0
	case nm < 510:
		g = 1.0
		b = -(nm - 510) / (510 - 490)
	case nm < 580:
		r = (nm - 510) / (580 - 510)
		g = 1.0
	case nm < 645:
		r = 1.0
		g = -(nm - 645) / (645 - 580)
	default:
		r = 1.0
	}

	// Intensity falloff outside the 420-701 plateau
	intensity := 1.0
	switch {
	case nm < 420:
		intensity = 0.3 + 0.7*(nm-380)/(420-380)
	case nm > 701:
		intensity = 0.3 + 0.7*(780-nm)/(780-701)
	}

	return NewVec3(r, g, b).Multiply(intensity)
}

// Channel identifies one color filter of the sensor's Bayer array.
type Channel int

const (
	ChannelRed Channel = iota
	ChannelGreen
	ChannelBlue
)

// Gaussian sensitivity curves for the emulated color-filter array.
var filterPeaks = [3]float64{600, 540, 450}

const filterWidth = 50.0

// FilterResponse returns the sensitivity of one sensor channel to a
// wavelength: exp(-(nm-peak)^2 / (2*width^2)). Unrelated to
// WavelengthToRGB, which models perceived color rather than a physical
// filter.
func FilterResponse(nm float64, channel Channel) float64 {
	d := nm - filterPeaks[channel]
	return math.Exp(-(d * d) / (2 * filterWidth * filterWidth))
}

// FilterRGB returns the per-channel filter responses as one vector.
func FilterRGB(nm float64) Vec3 {
	return NewVec3(
		FilterResponse(nm, ChannelRed),
		FilterResponse(nm, ChannelGreen),
		FilterResponse(nm, ChannelBlue),
	)
}
