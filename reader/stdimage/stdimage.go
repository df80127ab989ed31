// Package stdimage decodes PNG, JPEG, TIFF and BMP files into interleaved
// 8- or 16-bit buffers.
package stdimage

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder

	"github.com/cocosip/go-image-io/layout"
	"github.com/cocosip/go-image-io/reader"
)

var _ reader.Reader = (*Reader)(nil)

// Reader decodes the still-image formats known to the image package
type Reader struct {
	exts reader.ExtensionSet
}

// New creates a standard image reader
func New() *Reader {
	return &Reader{
		exts: reader.NewExtensionSet(".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp"),
	}
}

func init() {
	reader.Register(New(), reader.PriorityStandard)
}

// Name returns the reader name
func (r *Reader) Name() string {
	return "standard"
}

// CanRead reports whether path has a supported extension
func (r *Reader) CanRead(path string) bool {
	return r.exts.Match(path)
}

// Read decodes the file at path
func (r *Reader) Read(path string, _ *reader.ReadParameters) (*reader.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode decodes an image stream in any registered format
func Decode(rd io.Reader) (*reader.Image, error) {
	img, _, err := image.Decode(rd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", reader.ErrUnsupportedFile, err)
	}
	return FromImage(img), nil
}

// FromImage copies img into an interleaved buffer. Gray images become
// Grayscale; others become RGB, or RGBA when img is not opaque. 16-bit
// color models yield U16 samples; everything else yields U8.
func FromImage(img image.Image) *reader.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	d := layout.New(uint(w), uint(h), layout.RGB, layout.Interleaved, layout.U8)
	d.Exif = &layout.Exif{ImageWidth: layout.Uint(uint(w)), ImageHeight: layout.Uint(uint(h)), Orientation: 1}

	switch src := img.(type) {
	case *image.Gray:
		pix := make([]uint8, 0, w*h)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := src.PixOffset(b.Min.X, y)
			pix = append(pix, src.Pix[off:off+w]...)
		}
		d.PixelType = layout.Grayscale
		d.PixelPrecision = 8
		return reader.NewImage(pix, d)
	case *image.Gray16:
		pix := make([]uint16, 0, w*h)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				pix = append(pix, src.Gray16At(x, y).Y)
			}
		}
		d.PixelType = layout.Grayscale
		d.PixelPrecision = 16
		return reader.NewImage(pix, d)
	}

	n := 3
	if !opaque(img) {
		d.PixelType = layout.RGBA
		n = 4
	}

	if wide(img.ColorModel()) {
		pix := make([]uint16, 0, w*h*n)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
				pix = append(pix, c.R, c.G, c.B)
				if n == 4 {
					pix = append(pix, c.A)
				}
			}
		}
		d.PixelPrecision = 16
		return reader.NewImage(pix, d)
	}

	pix := make([]uint8, 0, w*h*n)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pix = append(pix, c.R, c.G, c.B)
			if n == 4 {
				pix = append(pix, c.A)
			}
		}
	}
	d.PixelPrecision = 8
	return reader.NewImage(pix, d)
}

func wide(m color.Model) bool {
	return m == color.RGBA64Model || m == color.NRGBA64Model || m == color.Gray16Model || m == color.Alpha16Model
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}
