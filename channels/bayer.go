package channels

import "github.com/cocosip/go-image-io/layout"

// bayerQuadrants assigns channel names to the four 2x2 positions, in the
// order (even row, even col), (even row, odd col), (odd row, even col),
// (odd row, odd col).
var bayerQuadrants = map[layout.PixelType][4]string{
	layout.BayerRGGB: {R, Gr, Gb, B},
	layout.BayerBGGR: {B, Gb, Gr, R},
	layout.BayerGRBG: {Gr, R, B, Gb},
	layout.BayerGBRG: {Gb, B, R, Gr},
}

func splitBayer[T layout.Sample](buf []T, g geometry) Set[T] {
	names := bayerQuadrants[g.pixelType]
	hw, hh := g.width/2, g.height/2

	var planes [4]*layout.Plane[T]
	for q := range planes {
		planes[q] = layout.NewPlane[T](hw, hh)
	}
	for y := 0; y < g.height; y++ {
		row := buf[y*g.width : (y+1)*g.width]
		even, odd := planes[(y&1)*2].Row(y/2), planes[(y&1)*2+1].Row(y/2)
		for x := 0; x < hw; x++ {
			even[x] = row[2*x]
			odd[x] = row[2*x+1]
		}
	}

	out := make(Set[T], 4)
	for q, name := range names {
		out[name] = planes[q]
	}
	return out
}

func mergeBayer[T layout.Sample](ch Set[T], g geometry) []T {
	names := bayerQuadrants[g.pixelType]
	hw := g.width / 2
	out := make([]T, g.width*g.height)

	for y := 0; y < g.height; y++ {
		row := out[y*g.width : (y+1)*g.width]
		even := ch[names[(y&1)*2]].Row(y / 2)
		odd := ch[names[(y&1)*2+1]].Row(y / 2)
		for x := 0; x < hw; x++ {
			row[2*x] = even[x]
			row[2*x+1] = odd[x]
		}
	}
	return out
}
