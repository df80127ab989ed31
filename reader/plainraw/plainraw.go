// Package plainraw reads headerless sample dumps (sensor mosaics, YUV and
// NV12 frames, grayscale planes) described by a JSON or YAML sidecar.
// Payloads ending in ".zst" are zstd-compressed.
package plainraw

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/cocosip/go-image-io/channels"
	"github.com/cocosip/go-image-io/layout"
	"github.com/cocosip/go-image-io/reader"
)

var (
	// ErrSidecar is returned when a sidecar cannot be parsed
	ErrSidecar = errors.New("plainraw: invalid sidecar")

	// ErrPayloadSize is returned when the payload length disagrees with the sidecar
	ErrPayloadSize = errors.New("plainraw: payload size mismatch")
)

const zstdSuffix = ".zst"

var _ reader.Reader = (*Reader)(nil)

// Reader decodes sidecar-described payloads
type Reader struct {
	exts reader.ExtensionSet
}

// New creates a plain raw reader
func New() *Reader {
	return &Reader{exts: reader.NewExtensionSet(".raw", ".cfa", ".yuv", ".nv12", ".gray")}
}

func init() {
	reader.Register(New(), reader.PriorityPlainRaw)
}

// Name returns the reader name
func (r *Reader) Name() string {
	return "plainraw"
}

// CanRead reports whether path is a payload extension, optionally followed
// by ".zst".
func (r *Reader) CanRead(path string) bool {
	return r.exts.Match(payloadName(path))
}

// Read loads the sidecar, then decodes the payload in params.ByteOrder
func (r *Reader) Read(path string, params *reader.ReadParameters) (*reader.Image, error) {
	explicit := ""
	var order binary.ByteOrder = binary.LittleEndian
	if params != nil {
		explicit = params.MetadataPath
		if params.ByteOrder != nil {
			order = params.ByteOrder
		}
	}
	meta, err := findSidecar(path, explicit)
	if err != nil {
		return nil, err
	}
	sc, err := LoadSidecar(meta, defaultsFor(strings.ToLower(filepath.Ext(payloadName(path)))))
	if err != nil {
		return nil, err
	}
	d, err := sc.Descriptor()
	if err != nil {
		return nil, err
	}
	n, err := channels.SampleCount(d)
	if err != nil {
		return nil, err
	}

	data, err := readPayload(path)
	if err != nil {
		return nil, err
	}
	if want := n * d.SampleRepresentation.BytesPerSample(); len(data) != want {
		return nil, fmt.Errorf("%w: %s needs %d bytes, file has %d", ErrPayloadSize, d, want, len(data))
	}
	return Decode(data, d, order)
}

// Decode interprets bytes as samples of d.SampleRepresentation. A nil order
// means little-endian.
func Decode(data []byte, d *layout.Descriptor, order binary.ByteOrder) (*reader.Image, error) {
	if order == nil {
		order = binary.LittleEndian
	}
	switch d.SampleRepresentation {
	case layout.U8:
		return reader.NewImage(append([]uint8(nil), data...), d), nil
	case layout.U16:
		pix := make([]uint16, len(data)/2)
		for i := range pix {
			pix[i] = order.Uint16(data[2*i:])
		}
		return reader.NewImage(pix, d), nil
	case layout.F32:
		pix := make([]float32, len(data)/4)
		for i := range pix {
			pix[i] = math.Float32frombits(order.Uint32(data[4*i:]))
		}
		return reader.NewImage(pix, d), nil
	case layout.F64:
		pix := make([]float64, len(data)/8)
		for i := range pix {
			pix[i] = math.Float64frombits(order.Uint64(data[8*i:]))
		}
		return reader.NewImage(pix, d), nil
	}
	return nil, fmt.Errorf("%w: %s", layout.ErrUnsupportedPixelRepresentation, d.SampleRepresentation)
}

func readPayload(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !strings.EqualFold(filepath.Ext(path), zstdSuffix) {
		return io.ReadAll(f)
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

// payloadName strips a trailing ".zst" from path.
func payloadName(path string) string {
	if strings.EqualFold(filepath.Ext(path), zstdSuffix) {
		return path[:len(path)-len(zstdSuffix)]
	}
	return path
}
