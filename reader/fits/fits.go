// Package fits reads the primary image of a FITS file. Single-plane images
// are Grayscale unless the header names a Bayer pattern, in which case the
// pattern is verified with cfa.Detect. A cube whose third axis is 3 is read
// as planar RGB; any other cube is treated as a stack of frames.
package fits

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/astrogo/fitsio"

	"github.com/cocosip/go-image-io/cfa"
	"github.com/cocosip/go-image-io/layout"
	"github.com/cocosip/go-image-io/reader"
)

var _ reader.Reader = (*Reader)(nil)

var signature = []byte("SIMPLE  =")

// Reader decodes FITS images. It is also the fallback of the default
// registry: any file nothing else claims is tried as FITS.
type Reader struct {
	exts reader.ExtensionSet
}

// New creates a FITS reader
func New() *Reader {
	return &Reader{exts: reader.NewExtensionSet(".fits", ".fit", ".fts")}
}

func init() {
	r := New()
	reader.Register(r, reader.PrioritySensor)
	reader.SetFallback(r)
}

// Name returns the reader name
func (r *Reader) Name() string {
	return "fits"
}

// CanRead accepts FITS extensions, or any file that starts with the FITS
// primary header signature.
func (r *Reader) CanRead(path string) bool {
	if r.exts.Match(path) {
		return true
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	head := make([]byte, len(signature))
	if _, err := f.Read(head); err != nil {
		return false
	}
	return bytes.Equal(head, signature)
}

// Read decodes the primary HDU of the file at path
func (r *Reader) Read(path string, params *reader.ReadParameters) (*reader.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ff, err := fitsio.Open(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", reader.ErrUnsupportedFile, err)
	}
	defer ff.Close()

	hdu, ok := ff.HDU(0).(fitsio.Image)
	if !ok {
		return nil, ErrNoImage
	}
	frame := 0
	if params != nil {
		frame = params.Frame
	}
	return decode(hdu, frame)
}

func decode(img fitsio.Image, frame int) (*reader.Image, error) {
	h := img.Header()
	axes := h.Axes()
	if len(axes) < 2 || len(axes) > 3 {
		return nil, fmt.Errorf("%w: NAXIS=%d", ErrUnsupportedAxes, len(axes))
	}
	for i, n := range axes {
		if n <= 0 {
			return nil, fmt.Errorf("%w: NAXIS%d=%d", ErrUnsupportedAxes, i+1, n)
		}
	}
	width, height := axes[0], axes[1]
	depth := 1
	if len(axes) == 3 {
		depth = axes[2]
	}

	d := layout.New(uint(width), uint(height), layout.Grayscale, layout.Interleaved, layout.RepresentationUnknown)
	d.Exif = exifFromHeader(h, width, height)
	d.Calibration = calibrationFromHeader(h)
	d.Shooting = shootingFromHeader(h)

	planeSize := width * height
	start, count := 0, planeSize
	switch {
	case depth == 3:
		d.PixelType = layout.RGB
		d.ImageLayout = layout.Planar
		count = 3 * planeSize
	case frame < 0 || frame >= depth:
		return nil, fmt.Errorf("%w: %d of %d", ErrFrameOutOfRange, frame, depth)
	default:
		start = frame * planeSize
		if err := applyBayer(h, d); err != nil {
			return nil, err
		}
	}

	total := 1
	for _, n := range axes {
		total *= n
	}
	out, err := samples(img, h.Bitpix(), cardFloat(h, "BZERO", 0), cardFloat(h, "BSCALE", 1), d, total, start, count)
	if err != nil {
		return nil, err
	}
	if err := out.Descriptor.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// applyBayer marks d as a Bayer mosaic when the header carries BAYERPAT.
// XBAYROFF and YBAYROFF shift the pattern origin.
func applyBayer(h *fitsio.Header, d *layout.Descriptor) error {
	pat := cardString(h, "BAYERPAT")
	if pat == "" {
		return nil
	}
	pt, err := layout.ParsePixelType("BAYER_" + pat)
	if err != nil || !pt.IsBayer() {
		return fmt.Errorf("%w: BAYERPAT %q", cfa.ErrUnsupportedCFA, pat)
	}
	colorAt, err := cfa.TileIndexer(pt, cardInt(h, "XBAYROFF", 0), cardInt(h, "YBAYROFF", 0))
	if err != nil {
		return err
	}
	res, err := cfa.Detect(colorAt, 4, pat)
	if err != nil {
		return err
	}
	res.Apply(d)
	d.ImageLayout = layout.Planar
	return nil
}

// samples reads the raw HDU values and maps them onto a sample type:
// unsigned 8 and 16 bit data stay integral, anything scaled or signed is
// converted to physical values (BZERO + BSCALE*v) as floats.
// fitsio fills the slice in place, so it must be sized to the whole HDU.
func samples(img fitsio.Image, bitpix int, bzero, bscale float64, d *layout.Descriptor, total, start, count int) (*reader.Image, error) {
	switch bitpix {
	case 8:
		raw := make([]uint8, total)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		raw, err := window(raw, start, count)
		if err != nil {
			return nil, err
		}
		if bzero == 0 && bscale == 1 {
			d.PixelPrecision = 8
			return reader.NewImage(append([]uint8(nil), raw...), d), nil
		}
		return reader.NewImage(physical[uint8, float32](raw, bzero, bscale), d), nil
	case 16:
		raw := make([]int16, total)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		raw, err := window(raw, start, count)
		if err != nil {
			return nil, err
		}
		if bzero == 32768 && bscale == 1 {
			pix := make([]uint16, len(raw))
			for i, v := range raw {
				pix[i] = uint16(int32(v) + 32768)
			}
			d.PixelPrecision = 16
			return reader.NewImage(pix, d), nil
		}
		return reader.NewImage(physical[int16, float32](raw, bzero, bscale), d), nil
	case 32:
		raw := make([]int32, total)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		raw, err := window(raw, start, count)
		if err != nil {
			return nil, err
		}
		return reader.NewImage(physical[int32, float64](raw, bzero, bscale), d), nil
	case -32:
		raw := make([]float32, total)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		raw, err := window(raw, start, count)
		if err != nil {
			return nil, err
		}
		return reader.NewImage(physical[float32, float32](raw, bzero, bscale), d), nil
	case -64:
		raw := make([]float64, total)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		raw, err := window(raw, start, count)
		if err != nil {
			return nil, err
		}
		return reader.NewImage(physical[float64, float64](raw, bzero, bscale), d), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitpix, bitpix)
}

func window[T any](raw []T, start, count int) ([]T, error) {
	if start+count > len(raw) {
		return nil, fmt.Errorf("%w: data has %d values, need %d", reader.ErrUnsupportedFile, len(raw), start+count)
	}
	return raw[start : start+count], nil
}

func physical[S int16 | int32 | uint8 | float32 | float64, D float32 | float64](raw []S, bzero, bscale float64) []D {
	out := make([]D, len(raw))
	for i, v := range raw {
		out[i] = D(bzero + bscale*float64(v))
	}
	return out
}
