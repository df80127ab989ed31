package reader

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cocosip/go-dicom/pkg/imaging/codec"
)

// Ensure ReadParameters implements codec.Parameters
var _ codec.Parameters = (*ReadParameters)(nil)

// ReadParameters carries per-read options to a backend.
type ReadParameters struct {
	// MetadataPath points at a sidecar metadata file. When empty, backends
	// that need one look for "<image>.json" then "<image>.yaml" next to the
	// image.
	MetadataPath string

	// Frame selects a frame of a multi-frame file (0-based).
	Frame int

	// ByteOrder of headerless multi-byte payloads. Default little-endian.
	ByteOrder binary.ByteOrder

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

// NewReadParameters creates a new ReadParameters with default values
func NewReadParameters() *ReadParameters {
	return &ReadParameters{
		ByteOrder: binary.LittleEndian,
		params:    make(map[string]interface{}),
	}
}

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *ReadParameters) GetParameter(name string) interface{} {
	switch name {
	case "metadata_path":
		return p.MetadataPath
	case "frame":
		return p.Frame
	case "byte_order":
		return p.ByteOrder
	default:
		return p.params[name]
	}
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *ReadParameters) SetParameter(name string, value interface{}) {
	switch name {
	case "metadata_path":
		if v, ok := value.(string); ok {
			p.MetadataPath = v
		}
	case "frame":
		if v, ok := value.(int); ok {
			p.Frame = v
		}
	case "byte_order":
		switch v := value.(type) {
		case binary.ByteOrder:
			p.ByteOrder = v
		case string:
			if strings.EqualFold(v, "big") {
				p.ByteOrder = binary.BigEndian
			} else {
				p.ByteOrder = binary.LittleEndian
			}
		}
	default:
		if p.params == nil {
			p.params = make(map[string]interface{})
		}
		p.params[name] = value
	}
}

// Validate checks the parameters and resets out-of-range values
func (p *ReadParameters) Validate() error {
	if p.Frame < 0 {
		p.Frame = 0
	}
	if p.ByteOrder == nil {
		p.ByteOrder = binary.LittleEndian
	}
	return nil
}

// WithMetadataPath sets the sidecar path and returns the parameters for chaining
func (p *ReadParameters) WithMetadataPath(path string) *ReadParameters {
	p.MetadataPath = path
	return p
}

// WithFrame sets the frame index and returns the parameters for chaining
func (p *ReadParameters) WithFrame(frame int) *ReadParameters {
	p.Frame = frame
	return p
}

// WithByteOrder sets the payload byte order and returns the parameters for chaining
func (p *ReadParameters) WithByteOrder(order binary.ByteOrder) *ReadParameters {
	p.ByteOrder = order
	return p
}

// resolve returns a validated copy of p, or defaults when p is nil. The
// caller's parameters are left untouched.
func resolve(p *ReadParameters) (*ReadParameters, error) {
	if p == nil {
		return NewReadParameters(), nil
	}
	q := *p
	q.params = make(map[string]interface{}, len(p.params))
	for k, v := range p.params {
		q.params[k] = v
	}
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("invalid read parameters: %w", err)
	}
	return &q, nil
}
