package channels

import "github.com/cocosip/go-image-io/layout"

func colorNames(pt layout.PixelType) []string {
	if pt == layout.RGBA {
		return []string{R, G, B, A}
	}
	return []string{R, G, B}
}

// splitColor slices RGB/RGBA along the innermost axis (interleaved, copies)
// or the outermost axis (planar, views).
func splitColor[T layout.Sample](buf []T, g geometry) Set[T] {
	names := colorNames(g.pixelType)
	n := g.width * g.height
	out := make(Set[T], len(names))

	if g.imageLayout == layout.Planar {
		for c, name := range names {
			out[name] = view(buf[c*n:], g.width, g.height)
		}
		return out
	}

	nc := len(names)
	for c, name := range names {
		p := layout.NewPlane[T](g.width, g.height)
		for i := 0; i < n; i++ {
			p.Pix[i] = buf[i*nc+c]
		}
		out[name] = p
	}
	return out
}

func mergeColor[T layout.Sample](ch Set[T], g geometry, names []string) []T {
	n := g.width * g.height
	nc := len(names)
	out := make([]T, n*nc)

	for c, name := range names {
		p := ch[name]
		if g.imageLayout == layout.Planar {
			copyPlane(out[c*n:], g.width, p)
			continue
		}
		for y := 0; y < g.height; y++ {
			row := p.Row(y)
			base := y * g.width * nc
			for x, v := range row {
				out[base+x*nc+c] = v
			}
		}
	}
	return out
}
