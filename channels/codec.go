// Package channels splits image buffers into named single-plane channels and
// merges them back. Split followed by Merge with the same descriptor
// reproduces the input exactly.
package channels

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/cocosip/go-image-io/layout"
)

// Channel names.
const (
	R  = "r"
	G  = "g"
	B  = "b"
	A  = "a"
	Gr = "gr"
	Gb = "gb"
	Y  = "y"
	U  = "u"
	V  = "v"
)

// Set maps channel names to planes. It is created per call and owned by the
// caller.
type Set[T layout.Sample] map[string]*layout.Plane[T]

// Names returns the channel names of a pixel type in canonical order.
func Names(pt layout.PixelType) ([]string, error) {
	switch {
	case pt.IsBayer():
		return []string{R, Gr, Gb, B}, nil
	case pt == layout.RGB:
		return []string{R, G, B}, nil
	case pt == layout.RGBA:
		return []string{R, G, B, A}, nil
	case pt == layout.YUV:
		return []string{Y, U, V}, nil
	case pt == layout.Grayscale:
		return []string{Y}, nil
	}
	return nil, fmt.Errorf("%w: %s", layout.ErrUnsupportedPixelType, pt)
}

// Keys returns the channel names present in s, sorted.
func (s Set[T]) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// geometry is the validated view of a descriptor used by split and merge.
type geometry struct {
	width, height int
	pixelType     layout.PixelType
	imageLayout   layout.ImageLayout
}

// samples is the buffer length the geometry implies.
func (g geometry) samples() int {
	n := g.width * g.height
	switch g.pixelType {
	case layout.RGB:
		return n * 3
	case layout.RGBA:
		return n * 4
	case layout.YUV:
		return n + 2*(g.width/2)*(g.height/2)
	}
	return n
}

// inspect performs every precondition check once, before any work is done.
func inspect[T layout.Sample](d *layout.Descriptor) (geometry, error) {
	if d == nil {
		return geometry{}, layout.ErrMissingMetadata
	}
	if !d.SampleRepresentation.Valid() {
		return geometry{}, fmt.Errorf("%w: %s", layout.ErrUnsupportedPixelRepresentation, d.SampleRepresentation)
	}
	if want := layout.RepresentationOf[T](); d.SampleRepresentation != want {
		return geometry{}, fmt.Errorf("%w: descriptor declares %s, buffer holds %s",
			layout.ErrUnsupportedPixelRepresentation, d.SampleRepresentation, want)
	}
	return describe(d)
}

// SampleCount returns the buffer length, in samples, that d describes.
func SampleCount(d *layout.Descriptor) (int, error) {
	if d == nil {
		return 0, layout.ErrMissingMetadata
	}
	g, err := describe(d)
	if err != nil {
		return 0, err
	}
	return g.samples(), nil
}

// describe resolves the size of d and checks the pixel type and layout pair.
func describe(d *layout.Descriptor) (geometry, error) {
	w, h, err := d.Dimensions()
	if err != nil {
		return geometry{}, err
	}
	// Four samples per pixel is the widest layout.
	if w <= 0 || h <= 0 || w > math.MaxInt/4/h {
		return geometry{}, fmt.Errorf("%w: %dx%d overflows the addressable buffer", ErrBufferSize, uint(w), uint(h))
	}

	g := geometry{width: w, height: h, pixelType: d.PixelType, imageLayout: d.ImageLayout}
	switch {
	case g.pixelType.IsBayer():
		if g.imageLayout != layout.Planar {
			return geometry{}, unsupportedLayout(g)
		}
	case g.pixelType == layout.RGB, g.pixelType == layout.RGBA:
		if g.imageLayout != layout.Interleaved && g.imageLayout != layout.Planar {
			return geometry{}, unsupportedLayout(g)
		}
	case g.pixelType == layout.YUV:
		if g.imageLayout != layout.Yuv420 && g.imageLayout != layout.Nv12 {
			return geometry{}, unsupportedLayout(g)
		}
	case g.pixelType == layout.Grayscale:
		if g.imageLayout != layout.Interleaved && g.imageLayout != layout.Planar {
			return geometry{}, unsupportedLayout(g)
		}
	default:
		return geometry{}, fmt.Errorf("%w: %s", layout.ErrUnsupportedPixelType, g.pixelType)
	}

	if g.pixelType.NeedsEvenDimensions() && (w%2 != 0 || h%2 != 0) {
		return geometry{}, fmt.Errorf("%w: %s is %dx%d", layout.ErrOddDimensions, g.pixelType, w, h)
	}
	return g, nil
}

func unsupportedLayout(g geometry) error {
	return fmt.Errorf("%w: %s with %s", layout.ErrUnsupportedImageLayout, g.pixelType, g.imageLayout)
}

// Split decomposes buf into named channels according to d. Planes that are a
// pure reshape of buf (luma, planar color, 4:2:0 chroma) are views that alias
// buf; the rest are fresh copies. buf must not be modified while views
// derived from it are in use.
func Split[T layout.Sample](buf []T, d *layout.Descriptor) (Set[T], error) {
	g, err := inspect[T](d)
	if err != nil {
		return nil, err
	}
	if want := g.samples(); len(buf) != want {
		return nil, fmt.Errorf("%w: %s needs %d samples, got %d", ErrBufferSize, d, want, len(buf))
	}

	switch {
	case g.pixelType.IsBayer():
		return splitBayer(buf, g), nil
	case g.pixelType == layout.RGB, g.pixelType == layout.RGBA:
		return splitColor(buf, g), nil
	case g.pixelType == layout.YUV:
		return splitYUV(buf, g), nil
	default:
		return Set[T]{Y: view(buf, g.width, g.height)}, nil
	}
}

// Merge reassembles channels into a single freshly allocated buffer laid out
// as d describes.
func Merge[T layout.Sample](ch Set[T], d *layout.Descriptor) ([]T, error) {
	g, err := inspect[T](d)
	if err != nil {
		return nil, err
	}
	names, err := Names(g.pixelType)
	if err != nil {
		return nil, err
	}
	if err := checkChannelSet(ch, names); err != nil {
		return nil, err
	}
	for _, name := range names {
		w, h := g.planeSize(name)
		p := ch[name]
		if p == nil || p.Width != w || p.Height != h || p.Stride < p.Width {
			return nil, fmt.Errorf("%w: %q must be %dx%d", ErrPlaneShape, name, w, h)
		}
		if h > 0 && len(p.Pix) < (h-1)*p.Stride+w {
			return nil, fmt.Errorf("%w: %q holds %d samples", ErrPlaneShape, name, len(p.Pix))
		}
	}

	switch {
	case g.pixelType.IsBayer():
		return mergeBayer(ch, g), nil
	case g.pixelType == layout.RGB, g.pixelType == layout.RGBA:
		return mergeColor(ch, g, names), nil
	case g.pixelType == layout.YUV:
		return mergeYUV(ch, g), nil
	default:
		out := make([]T, g.samples())
		copyPlane(out, g.width, ch[Y])
		return out, nil
	}
}

// planeSize returns the width and height of a named channel.
func (g geometry) planeSize(name string) (int, int) {
	switch {
	case g.pixelType.IsBayer(), g.pixelType == layout.YUV && name != Y:
		return g.width / 2, g.height / 2
	}
	return g.width, g.height
}

func checkChannelSet[T layout.Sample](ch Set[T], names []string) error {
	var missing, extra []string
	for _, n := range names {
		if _, ok := ch[n]; !ok {
			missing = append(missing, n)
		}
	}
	for _, k := range ch.Keys() {
		if !slices.Contains(names, k) {
			extra = append(extra, k)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing "+strings.Join(missing, ","))
	}
	if len(extra) > 0 {
		parts = append(parts, "unexpected "+strings.Join(extra, ","))
	}
	return fmt.Errorf("%w: want {%s}, %s", ErrChannelSetMismatch, strings.Join(names, ","), strings.Join(parts, "; "))
}

// view wraps a contiguous region of buf as a plane without copying.
func view[T layout.Sample](buf []T, width, height int) *layout.Plane[T] {
	return &layout.Plane[T]{
		Width:  width,
		Height: height,
		Stride: width,
		Pix:    buf[:width*height:width*height],
	}
}

// copyPlane writes p row by row into dst, whose rows are dstStride apart.
func copyPlane[T layout.Sample](dst []T, dstStride int, p *layout.Plane[T]) {
	for y := 0; y < p.Height; y++ {
		copy(dst[y*dstStride:y*dstStride+p.Width], p.Row(y))
	}
}
