package cfa

import "github.com/cocosip/go-image-io/layout"

// Tile is a 2x2 block of color indices, row-major. Index values follow the
// raw decoder convention: 0=R, 1=G (on red rows), 2=B, 3=G (on blue rows).
type Tile [2][2]int

// Color indices as reported by a raw sensor driver.
const (
	ColorR  = 0
	ColorG1 = 1
	ColorB  = 2
	ColorG2 = 3
)

// canonical is the single table mapping Bayer pixel types to their tiles.
// Both lookup directions go through it.
var canonical = []struct {
	pixelType layout.PixelType
	tile      Tile
}{
	{layout.BayerRGGB, Tile{{0, 1}, {3, 2}}},
	{layout.BayerBGGR, Tile{{2, 3}, {1, 0}}},
	{layout.BayerGRBG, Tile{{1, 0}, {2, 3}}},
	{layout.BayerGBRG, Tile{{3, 2}, {0, 1}}},
}

// PatternOf returns the canonical tile for a Bayer pixel type.
func PatternOf(pt layout.PixelType) (Tile, bool) {
	for _, c := range canonical {
		if c.pixelType == pt {
			return c.tile, true
		}
	}
	return Tile{}, false
}

// PixelTypeOf returns the Bayer pixel type whose canonical tile equals t.
func PixelTypeOf(t Tile) (layout.PixelType, bool) {
	for _, c := range canonical {
		if c.tile == t {
			return c.pixelType, true
		}
	}
	return layout.Custom, false
}

// Matrix returns the tile as a [][]int.
func (t Tile) Matrix() [][]int {
	return [][]int{{t[0][0], t[0][1]}, {t[1][0], t[1][1]}}
}

// hintFamilies maps driver color-order labels to the Bayer variants they are
// compatible with. Generic labels such as "RGBG" only say the sensor is a
// Bayer RGB sensor, so every variant is consistent with them.
var hintFamilies = map[string][]layout.PixelType{
	"RGGB": {layout.BayerRGGB},
	"BGGR": {layout.BayerBGGR},
	"GRBG": {layout.BayerGRBG},
	"GBRG": {layout.BayerGBRG},
	"RGBG": {layout.BayerRGGB, layout.BayerBGGR, layout.BayerGRBG, layout.BayerGBRG},
}

// hintConsistent reports whether a driver label agrees with the detected type.
// Empty and unrecognized labels make no checkable claim and are consistent
// with any type. A Bayer label is consistent only with its own family.
func hintConsistent(hint string, pt layout.PixelType) bool {
	family, ok := hintFamilies[hint]
	if !ok {
		return true
	}
	for _, f := range family {
		if f == pt {
			return true
		}
	}
	return false
}
