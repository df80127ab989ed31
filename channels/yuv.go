package channels

import "github.com/cocosip/go-image-io/layout"

// splitYUV handles 4:2:0 streams. The luma plane is followed either by two
// contiguous chroma planes (Yuv420: u then v) or by interleaved u,v pairs
// (Nv12).
func splitYUV[T layout.Sample](buf []T, g geometry) Set[T] {
	lumaSize := g.width * g.height
	cw, chh := g.width/2, g.height/2
	chromaSize := cw * chh
	chroma := buf[lumaSize:]

	out := Set[T]{Y: view(buf, g.width, g.height)}
	if g.imageLayout == layout.Yuv420 {
		out[U] = view(chroma, cw, chh)
		out[V] = view(chroma[chromaSize:], cw, chh)
		return out
	}

	u := layout.NewPlane[T](cw, chh)
	v := layout.NewPlane[T](cw, chh)
	for i := 0; i < chromaSize; i++ {
		u.Pix[i] = chroma[2*i]
		v.Pix[i] = chroma[2*i+1]
	}
	out[U] = u
	out[V] = v
	return out
}

func mergeYUV[T layout.Sample](ch Set[T], g geometry) []T {
	lumaSize := g.width * g.height
	cw, chh := g.width/2, g.height/2
	out := make([]T, g.samples())

	copyPlane(out, g.width, ch[Y])
	chroma := out[lumaSize:]
	if g.imageLayout == layout.Yuv420 {
		copyPlane(chroma, cw, ch[U])
		copyPlane(chroma[cw*chh:], cw, ch[V])
		return out
	}

	u, v := ch[U], ch[V]
	for y := 0; y < chh; y++ {
		urow, vrow := u.Row(y), v.Row(y)
		base := 2 * y * cw
		for x := 0; x < cw; x++ {
			chroma[base+2*x] = urow[x]
			chroma[base+2*x+1] = vrow[x]
		}
	}
	return out
}
