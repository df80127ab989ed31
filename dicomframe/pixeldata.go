package dicomframe

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"

	"github.com/cocosip/go-image-io/layout"
	"github.com/cocosip/go-image-io/reader"
)

var _ imagetypes.PixelData = (*PixelData)(nil)

// PixelData holds native frames that all share one frame info. Every frame
// must be exactly Width*Height*SamplesPerPixel samples of BitsAllocated bits.
type PixelData struct {
	info   *imagetypes.FrameInfo
	size   int
	frames [][]byte
}

// NewPixelData creates an empty frame sequence for info
func NewPixelData(info *imagetypes.FrameInfo) *PixelData {
	return &PixelData{info: info, size: frameBytes(info)}
}

// Encode starts a single-frame sequence from a decoded image. Only unsigned
// 8 and 16 bit Grayscale and RGB images have a native form.
func Encode(img *reader.Image) (*PixelData, error) {
	if img == nil {
		return nil, layout.ErrMissingMetadata
	}
	info, err := FrameInfo(img.Descriptor)
	if err != nil {
		return nil, err
	}
	pd := NewPixelData(info)
	if err := pd.Append(img); err != nil {
		return nil, err
	}
	return pd, nil
}

// Append adds img as the next frame. Its descriptor must map onto the same
// frame info as the sequence.
func (p *PixelData) Append(img *reader.Image) error {
	if img == nil {
		return layout.ErrMissingMetadata
	}
	info, err := FrameInfo(img.Descriptor)
	if err != nil {
		return err
	}
	if !sameFrame(p.info, info) {
		return fmt.Errorf("%w: %dx%d %s does not match %dx%d %s",
			ErrFrameMismatch, info.Width, info.Height, info.PhotometricInterpretation,
			p.info.Width, p.info.Height, p.info.PhotometricInterpretation)
	}
	switch pix := img.Pix.(type) {
	case []uint8:
		return AppendFrame(p, pix)
	case []uint16:
		return AppendFrame(p, pix)
	}
	return fmt.Errorf("%w: frame buffer is %T", ErrUnsupportedBits, img.Pix)
}

// Image decodes frame i back into a buffer and descriptor.
func (p *PixelData) Image(i int) (*reader.Image, error) {
	return FromPixelData(p, i)
}

// GetFrame returns the raw bytes of frame i (0-based)
func (p *PixelData) GetFrame(i int) ([]byte, error) {
	if i < 0 || i >= len(p.frames) {
		return nil, fmt.Errorf("%w: %d of %d", ErrFrameOutOfRange, i, len(p.frames))
	}
	return p.frames[i], nil
}

// AddFrame appends raw frame bytes. The length must match the frame info.
func (p *PixelData) AddFrame(data []byte) error {
	if p.size > 0 && len(data) != p.size {
		return fmt.Errorf("%w: frame has %d bytes, want %d", ErrFrameSize, len(data), p.size)
	}
	p.frames = append(p.frames, data)
	return nil
}

func (p *PixelData) FrameCount() int { return len(p.frames) }

func (p *PixelData) GetFrameInfo() *imagetypes.FrameInfo { return p.info }

// IsEncapsulated is false: frames are stored uncompressed.
func (p *PixelData) IsEncapsulated() bool { return false }

// frameBytes is the native frame length info implies, or 0 when info does
// not describe one.
func frameBytes(info *imagetypes.FrameInfo) int {
	if info == nil || info.BitsAllocated%8 != 0 {
		return 0
	}
	spp := int(info.SamplesPerPixel)
	if spp == 0 {
		spp = 1
	}
	return int(info.Width) * int(info.Height) * spp * int(info.BitsAllocated) / 8
}

func sameFrame(a, b *imagetypes.FrameInfo) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Width == b.Width && a.Height == b.Height &&
		a.BitsAllocated == b.BitsAllocated && a.BitsStored == b.BitsStored &&
		a.SamplesPerPixel == b.SamplesPerPixel &&
		a.PlanarConfiguration == b.PlanarConfiguration &&
		a.PhotometricInterpretation == b.PhotometricInterpretation
}
