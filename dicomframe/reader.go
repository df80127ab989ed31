package dicomframe

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/cocosip/go-dicom/pkg/dicom/parser"
	"github.com/cocosip/go-dicom/pkg/imaging"

	"github.com/cocosip/go-image-io/reader"
)

var _ reader.Reader = (*Reader)(nil)

const preambleSize = 128

var magic = []byte("DICM")

// Reader decodes native (uncompressed) DICOM files
type Reader struct {
	exts reader.ExtensionSet
}

// NewReader creates a DICOM file reader
func NewReader() *Reader {
	return &Reader{exts: reader.NewExtensionSet(".dcm", ".dicom")}
}

func init() {
	reader.Register(NewReader(), reader.PriorityStandard)
}

// Name returns the reader name
func (r *Reader) Name() string {
	return "dicom"
}

// CanRead accepts DICOM extensions or a Part 10 preamble followed by "DICM"
func (r *Reader) CanRead(path string) bool {
	if r.exts.Match(path) {
		return true
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	head := make([]byte, preambleSize+len(magic))
	if _, err := io.ReadFull(f, head); err != nil {
		return false
	}
	return bytes.Equal(head[preambleSize:], magic)
}

// Read parses the file and decodes frame params.Frame
func (r *Reader) Read(path string, params *reader.ReadParameters) (*reader.Image, error) {
	res, err := parser.ParseFile(path, parser.WithReadOption(parser.ReadAll))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", reader.ErrUnsupportedFile, err)
	}
	pd, err := imaging.CreatePixelData(res.Dataset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", reader.ErrUnsupportedFile, err)
	}
	frame := 0
	if params != nil {
		frame = params.Frame
	}
	return FromPixelData(pd, frame)
}
