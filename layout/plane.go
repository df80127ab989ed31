package layout

import "fmt"

// Sample is the set of element types a buffer may hold.
type Sample interface {
	uint8 | uint16 | float32 | float64
}

// RepresentationOf returns the representation matching the element type T.
func RepresentationOf[T Sample]() SampleRepresentation {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return U8
	case uint16:
		return U16
	case float32:
		return F32
	case float64:
		return F64
	}
	return RepresentationUnknown
}

// Plane is a single-plane 2-D array of samples stored row-major. A plane
// created by slicing another buffer is a view: Pix aliases the source and
// Stride may exceed Width.
type Plane[T Sample] struct {
	Width  int
	Height int
	Stride int
	Pix    []T
}

// NewPlane allocates a zeroed width x height plane.
func NewPlane[T Sample](width, height int) *Plane[T] {
	return &Plane[T]{
		Width:  width,
		Height: height,
		Stride: width,
		Pix:    make([]T, width*height),
	}
}

// PlaneOf wraps pix as a width x height plane without copying.
func PlaneOf[T Sample](pix []T, width, height int) (*Plane[T], error) {
	if width < 0 || height < 0 || len(pix) < width*height {
		return nil, fmt.Errorf("plane %dx%d needs %d samples, got %d", width, height, width*height, len(pix))
	}
	return &Plane[T]{Width: width, Height: height, Stride: width, Pix: pix[:width*height]}, nil
}

// At returns the sample at row y, column x.
func (p *Plane[T]) At(y, x int) T {
	return p.Pix[y*p.Stride+x]
}

// Set stores v at row y, column x.
func (p *Plane[T]) Set(y, x int, v T) {
	p.Pix[y*p.Stride+x] = v
}

// Row returns row y as a slice of length Width.
func (p *Plane[T]) Row(y int) []T {
	off := y * p.Stride
	return p.Pix[off : off+p.Width]
}

// Shape returns (height, width), matching the (rows, cols) convention.
func (p *Plane[T]) Shape() (int, int) {
	return p.Height, p.Width
}

// Contiguous reports whether rows are packed without padding.
func (p *Plane[T]) Contiguous() bool {
	return p.Stride == p.Width
}

// Clone returns a packed copy that does not alias p.
func (p *Plane[T]) Clone() *Plane[T] {
	c := NewPlane[T](p.Width, p.Height)
	for y := 0; y < p.Height; y++ {
		copy(c.Row(y), p.Row(y))
	}
	return c
}

// Equal reports whether p and q have the same shape and samples.
func (p *Plane[T]) Equal(q *Plane[T]) bool {
	if p == nil || q == nil {
		return p == q
	}
	if p.Width != q.Width || p.Height != q.Height {
		return false
	}
	for y := 0; y < p.Height; y++ {
		a, b := p.Row(y), q.Row(y)
		for x := range a {
			if a[x] != b[x] {
				return false
			}
		}
	}
	return true
}

// Rows returns the plane as a freshly allocated [][]T.
func (p *Plane[T]) Rows() [][]T {
	out := make([][]T, p.Height)
	for y := range out {
		out[y] = append([]T(nil), p.Row(y)...)
	}
	return out
}
