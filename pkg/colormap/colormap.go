// Package colormap provides the color tables the viewer frontend knows
// about and the name bridge between viewer colormap names and the resolved
// names used by the export path. This is deliberately not a general
// colormap library: it carries exactly the maps the viewer offers.
package colormap

import (
	"image/color"
	"math"
	"strings"
)

// reversedSuffix is the trailing marker on a resolved name that selects the
// reversed variant of a map.
const reversedSuffix = "_r"

// Map interpolates colors over normalized values in [0,1].
type Map struct {
	Name string

	// NoColor is returned for NaN input, marking missing data.
	NoColor color.RGBA

	// Colors are evenly spaced interpolation anchors.
	Colors []color.RGBA
}

// At returns the color for a normalized value. Input outside [0,1] clamps
// to the endpoints; NaN returns NoColor.
func (m *Map) At(t float64) color.RGBA {
	if math.IsNaN(t) {
		return m.NoColor
	}
	n := len(m.Colors)
	if t <= 0 {
		return m.Colors[0]
	}
	if t >= 1 {
		return m.Colors[n-1]
	}
	pos := t * float64(n-1)
	i := int(pos)
	if i >= n-1 {
		return m.Colors[n-1]
	}
	return blend(m.Colors[i], m.Colors[i+1], pos-float64(i))
}

// Reversed returns a copy of the map with the anchor order flipped and the
// reversal marker toggled on the name.
func (m *Map) Reversed() *Map {
	rev := &Map{
		Name:    ToggleReversed(m.Name),
		NoColor: m.NoColor,
		Colors:  make([]color.RGBA, len(m.Colors)),
	}
	for i, c := range m.Colors {
		rev.Colors[len(m.Colors)-1-i] = c
	}
	return rev
}

func blend(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + t*(float64(y)-float64(x)) + 0.5)
	}
	return color.RGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: 255,
	}
}

// viewerNames maps the viewer frontend's colormap names to resolved export
// names. The diverging maps resolve to their reversed variants to match the
// frontend's orientation.
var viewerNames = map[string]string{
	"Gray":      "gray",
	"Grayscale": "gray",
	"Inferno":   "inferno",
	"Magma":     "magma",
	"RdBu":      "RdBu_r",
	"RdYlBu":    "RdYlBu_r",
}

// Resolve maps a viewer colormap name to the export name, applying the
// reversed flag by toggling the trailing reversal marker. Unknown viewer
// names fall back to grayscale.
func Resolve(viewerName string, reversed bool) string {
	name, ok := viewerNames[viewerName]
	if !ok {
		name = "gray"
	}
	if reversed {
		name = ToggleReversed(name)
	}
	return name
}

// ToggleReversed appends the reversal marker if absent and strips it if
// present.
func ToggleReversed(name string) string {
	if strings.HasSuffix(name, reversedSuffix) {
		return strings.TrimSuffix(name, reversedSuffix)
	}
	return name + reversedSuffix
}

// Get looks up a resolved colormap name, including reversed variants
// ("gray_r"). The second return reports whether the name was known.
func Get(name string) (*Map, bool) {
	if base, ok := baseMaps[name]; ok {
		return base, true
	}
	if strings.HasSuffix(name, reversedSuffix) {
		if base, ok := baseMaps[strings.TrimSuffix(name, reversedSuffix)]; ok {
			return base.Reversed(), true
		}
	}
	return baseMaps["gray"], false
}

// Anchor tables sampled from the matplotlib maps of the same names.
var baseMaps = map[string]*Map{
	"gray": {
		Name: "gray",
		Colors: []color.RGBA{
			{0, 0, 0, 255},
			{255, 255, 255, 255},
		},
	},
	"inferno": {
		Name: "inferno",
		Colors: []color.RGBA{
			{0, 0, 4, 255},
			{19, 11, 52, 255},
			{57, 9, 99, 255},
			{95, 19, 110, 255},
			{133, 33, 107, 255},
			{169, 46, 94, 255},
			{203, 65, 73, 255},
			{230, 93, 47, 255},
			{247, 131, 17, 255},
			{252, 174, 19, 255},
			{245, 219, 76, 255},
			{252, 254, 164, 255},
		},
	},
	"magma": {
		Name: "magma",
		Colors: []color.RGBA{
			{0, 0, 4, 255},
			{24, 15, 61, 255},
			{68, 15, 118, 255},
			{114, 31, 129, 255},
			{158, 47, 127, 255},
			{205, 64, 113, 255},
			{241, 96, 93, 255},
			{253, 150, 104, 255},
			{254, 202, 141, 255},
			{252, 253, 191, 255},
		},
	},
	"RdBu": {
		Name: "RdBu",
		Colors: []color.RGBA{
			{103, 0, 31, 255},
			{178, 24, 43, 255},
			{214, 96, 77, 255},
			{244, 165, 130, 255},
			{253, 219, 199, 255},
			{247, 247, 247, 255},
			{209, 229, 240, 255},
			{146, 197, 222, 255},
			{67, 147, 195, 255},
			{33, 102, 172, 255},
			{5, 48, 97, 255},
		},
	},
	"RdYlBu": {
		Name: "RdYlBu",
		Colors: []color.RGBA{
			{165, 0, 38, 255},
			{215, 48, 39, 255},
			{244, 109, 67, 255},
			{253, 174, 97, 255},
			{254, 224, 144, 255},
			{255, 255, 191, 255},
			{224, 243, 248, 255},
			{171, 217, 233, 255},
			{116, 173, 209, 255},
			{69, 117, 180, 255},
			{49, 54, 149, 255},
		},
	},
}
