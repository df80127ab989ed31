// Package layout describes the geometry and pixel arrangement of an image
// buffer produced by a decode backend.
package layout

import "fmt"

// Exif holds the EXIF fields a backend may fill alongside the descriptor.
// Only ImageWidth and ImageHeight are consulted by the channel codec, as a
// fallback when the descriptor has no native size.
type Exif struct {
	ImageWidth       *uint
	ImageHeight      *uint
	Orientation      int
	Make             string
	Model            string
	ISOSpeed         int
	ExposureTime     float64
	FNumber          float64
	FocalLength      float64
	DateTimeOriginal string
	ImageDescription string
}

// Descriptor is the PixelLayoutDescriptor of a decoded buffer. It is built
// once by the backend and treated as read-only afterwards.
type Descriptor struct {
	Width                *uint
	Height               *uint
	PixelType            PixelType
	ImageLayout          ImageLayout
	SampleRepresentation SampleRepresentation

	// PixelPrecision is the number of significant bits per sample (e.g. 12
	// for a 12-bit sensor stored as U16). Zero means "full width".
	PixelPrecision uint8

	Exif *Exif

	Calibration  *Calibration
	WhiteBalance *WhiteBalance
	Shooting     *ShootingParams

	// RawPattern is the CFA sample matrix kept from pattern detection.
	RawPattern [][]int
}

// Uint returns a pointer to v. It is a convenience for filling optional
// descriptor fields.
func Uint(v uint) *uint {
	return &v
}

// New returns a descriptor with the given native size.
func New(width, height uint, pt PixelType, il ImageLayout, rep SampleRepresentation) *Descriptor {
	return &Descriptor{
		Width:                Uint(width),
		Height:               Uint(height),
		PixelType:            pt,
		ImageLayout:          il,
		SampleRepresentation: rep,
	}
}

// WithSize sets the native width and height and returns d for chaining.
func (d *Descriptor) WithSize(width, height uint) *Descriptor {
	d.Width = Uint(width)
	d.Height = Uint(height)
	return d
}

// Clone returns a deep copy of d.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	c := *d
	if d.Width != nil {
		c.Width = Uint(*d.Width)
	}
	if d.Height != nil {
		c.Height = Uint(*d.Height)
	}
	if d.Exif != nil {
		e := *d.Exif
		if d.Exif.ImageWidth != nil {
			e.ImageWidth = Uint(*d.Exif.ImageWidth)
		}
		if d.Exif.ImageHeight != nil {
			e.ImageHeight = Uint(*d.Exif.ImageHeight)
		}
		c.Exif = &e
	}
	c.Calibration = d.Calibration.clone()
	c.Shooting = d.Shooting.clone()
	if d.WhiteBalance != nil {
		wb := *d.WhiteBalance
		c.WhiteBalance = &wb
	}
	if d.RawPattern != nil {
		c.RawPattern = make([][]int, len(d.RawPattern))
		for i, row := range d.RawPattern {
			c.RawPattern[i] = append([]int(nil), row...)
		}
	}
	return &c
}

// Dimensions resolves the image width and height. The descriptor's own size
// wins; the EXIF size is used only when the native one is absent. A size is
// absent when either component is nil or zero.
func (d *Descriptor) Dimensions() (width, height int, err error) {
	if d == nil {
		return 0, 0, ErrMissingMetadata
	}
	if present(d.Width) && present(d.Height) {
		return int(*d.Width), int(*d.Height), nil
	}
	if d.Exif != nil && present(d.Exif.ImageWidth) && present(d.Exif.ImageHeight) {
		return int(*d.Exif.ImageWidth), int(*d.Exif.ImageHeight), nil
	}
	return 0, 0, ErrMissingDimensions
}

func present(v *uint) bool {
	return v != nil && *v > 0
}

// NeedsEvenDimensions reports whether the pixel type requires even width and
// height: Bayer mosaics split into 2x2 quadrants and YUV 4:2:0 halves chroma.
func (t PixelType) NeedsEvenDimensions() bool {
	return t.IsBayer() || t == YUV
}

// Validate checks the descriptor once, up front. It resolves dimensions,
// verifies the sample representation and the even-size invariant.
func Validate(d *Descriptor) error {
	if d == nil {
		return ErrMissingMetadata
	}
	return d.Validate()
}

// Validate implements the same checks as the package-level Validate.
func (d *Descriptor) Validate() error {
	if d == nil {
		return ErrMissingMetadata
	}
	if !d.SampleRepresentation.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedPixelRepresentation, d.SampleRepresentation)
	}
	w, h, err := d.Dimensions()
	if err != nil {
		return err
	}
	if d.PixelType.NeedsEvenDimensions() && (w%2 != 0 || h%2 != 0) {
		return fmt.Errorf("%w: %s is %dx%d", ErrOddDimensions, d.PixelType, w, h)
	}
	return nil
}

func (d *Descriptor) String() string {
	if d == nil {
		return "<nil descriptor>"
	}
	w, h, err := d.Dimensions()
	size := fmt.Sprintf("%dx%d", w, h)
	if err != nil {
		size = "?x?"
	}
	return fmt.Sprintf("%s %s %s %s", size, d.PixelType, d.ImageLayout, d.SampleRepresentation)
}
