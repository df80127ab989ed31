// Package dicomframe bridges native DICOM pixel data and layout descriptors,
// so DICOM frames can be split into channels and merged buffers appended
// back as frames.
package dicomframe

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"

	"github.com/cocosip/go-image-io/channels"
	"github.com/cocosip/go-image-io/layout"
	"github.com/cocosip/go-image-io/reader"
)

// Descriptor maps DICOM frame info onto a layout descriptor. The sample
// representation is U8 or U16 for unsigned data and F32 for signed data.
func Descriptor(fi *imagetypes.FrameInfo) (*layout.Descriptor, error) {
	if fi == nil {
		return nil, layout.ErrMissingMetadata
	}
	d := &layout.Descriptor{
		PixelPrecision: uint8(fi.BitsStored),
		Exif:           &layout.Exif{Orientation: 1},
	}
	d.WithSize(uint(fi.Width), uint(fi.Height))

	pi := strings.ToUpper(strings.TrimSpace(string(fi.PhotometricInterpretation)))
	switch {
	case (pi == "MONOCHROME1" || pi == "MONOCHROME2") && fi.SamplesPerPixel == 1:
		d.PixelType = layout.Grayscale
		d.ImageLayout = layout.Interleaved
	case pi == "RGB" && fi.SamplesPerPixel == 3:
		d.PixelType = layout.RGB
		d.ImageLayout = layout.Interleaved
		if fi.PlanarConfiguration == 1 {
			d.ImageLayout = layout.Planar
		}
	default:
		return nil, fmt.Errorf("%w: %q with %d samples per pixel", ErrUnsupportedPhotometric, pi, fi.SamplesPerPixel)
	}

	signed := fi.PixelRepresentation == 1
	switch {
	case fi.BitsAllocated != 8 && fi.BitsAllocated != 16:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBits, fi.BitsAllocated)
	case signed:
		d.SampleRepresentation = layout.F32
	case fi.BitsAllocated == 8:
		d.SampleRepresentation = layout.U8
	default:
		d.SampleRepresentation = layout.U16
	}
	return d, nil
}

// FromPixelData decodes frame index of native pixel data
func FromPixelData(pd imagetypes.PixelData, frame int) (*reader.Image, error) {
	if pd.IsEncapsulated() {
		return nil, ErrEncapsulated
	}
	if frame < 0 || frame >= pd.FrameCount() {
		return nil, fmt.Errorf("%w: %d of %d", ErrFrameOutOfRange, frame, pd.FrameCount())
	}
	fi := pd.GetFrameInfo()
	d, err := Descriptor(fi)
	if err != nil {
		return nil, err
	}
	data, err := pd.GetFrame(frame)
	if err != nil {
		return nil, err
	}
	n, err := channels.SampleCount(d)
	if err != nil {
		return nil, err
	}
	bytesPer := int(fi.BitsAllocated) / 8
	if len(data) < n*bytesPer {
		return nil, fmt.Errorf("%w: frame %d has %d bytes, need %d", ErrFrameSize, frame, len(data), n*bytesPer)
	}

	signed := fi.PixelRepresentation == 1
	switch {
	case bytesPer == 1 && signed:
		pix := make([]float32, n)
		for i := range pix {
			pix[i] = float32(int8(data[i]))
		}
		return reader.NewImage(pix, d), nil
	case bytesPer == 1:
		return reader.NewImage(append([]uint8(nil), data[:n]...), d), nil
	case signed:
		pix := make([]float32, n)
		for i := range pix {
			pix[i] = float32(int16(binary.LittleEndian.Uint16(data[2*i:])))
		}
		return reader.NewImage(pix, d), nil
	default:
		pix := make([]uint16, n)
		for i := range pix {
			pix[i] = binary.LittleEndian.Uint16(data[2*i:])
		}
		return reader.NewImage(pix, d), nil
	}
}

// FrameInfo describes d as DICOM frame info. Only unsigned Grayscale and
// RGB buffers have a native DICOM form.
func FrameInfo(d *layout.Descriptor) (*imagetypes.FrameInfo, error) {
	if err := layout.Validate(d); err != nil {
		return nil, err
	}
	w, h, _ := d.Dimensions()
	if w > math.MaxUint16 || h > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, w, h)
	}

	fi := &imagetypes.FrameInfo{
		Width:  uint16(w),
		Height: uint16(h),
	}
	switch d.SampleRepresentation {
	case layout.U8:
		fi.BitsAllocated = 8
	case layout.U16:
		fi.BitsAllocated = 16
	default:
		return nil, fmt.Errorf("%w: %s", layout.ErrUnsupportedPixelRepresentation, d.SampleRepresentation)
	}
	fi.BitsStored = fi.BitsAllocated
	if d.PixelPrecision > 0 && uint16(d.PixelPrecision) < fi.BitsAllocated {
		fi.BitsStored = uint16(d.PixelPrecision)
	}
	fi.HighBit = fi.BitsStored - 1

	switch {
	case d.PixelType == layout.Grayscale:
		fi.SamplesPerPixel = 1
		fi.PhotometricInterpretation = "MONOCHROME2"
	case d.PixelType == layout.RGB && d.ImageLayout == layout.Interleaved:
		fi.SamplesPerPixel = 3
		fi.PhotometricInterpretation = "RGB"
	case d.PixelType == layout.RGB && d.ImageLayout == layout.Planar:
		fi.SamplesPerPixel = 3
		fi.PlanarConfiguration = 1
		fi.PhotometricInterpretation = "RGB"
	default:
		return nil, fmt.Errorf("%w: %s has no DICOM photometric interpretation", ErrUnsupportedPhotometric, d.PixelType)
	}
	return fi, nil
}

// AppendFrame encodes buf as a native little-endian frame and appends it
// to pd.
func AppendFrame[T uint8 | uint16](pd imagetypes.PixelData, buf []T) error {
	if pd.IsEncapsulated() {
		return ErrEncapsulated
	}
	switch b := any(buf).(type) {
	case []uint8:
		return pd.AddFrame(append([]byte(nil), b...))
	case []uint16:
		out := make([]byte, 2*len(b))
		for i, v := range b {
			binary.LittleEndian.PutUint16(out[2*i:], v)
		}
		return pd.AddFrame(out)
	}
	return nil
}
