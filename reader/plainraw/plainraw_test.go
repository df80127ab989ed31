package plainraw

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zstd"

	"github.com/cocosip/go-image-io/channels"
	"github.com/cocosip/go-image-io/layout"
	"github.com/cocosip/go-image-io/reader"
)

func le16(vals []uint16) []byte {
	out := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint16(out[2*i:], v)
	}
	return out
}

func write(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error: %v", path, err)
	}
}

const bayerJSON = `{
  "fileInfo": {
    "width": 4,
    "height": 4,
    "pixelType": "BAYER_RGGB",
    "imageLayout": "PLANAR",
    "pixelPrecision": 12,
    "pixelRepresentation": "UINT16"
  },
  "exifMetadata": {
    "make": "Acme",
    "isoSpeed": 400,
    "exposureTime": 0.01
  }
}`

func sensorValues() []uint16 {
	vals := make([]uint16, 16)
	for i := range vals {
		vals[i] = uint16(100 * (i + 1))
	}
	return vals
}

func TestReadBayerJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.raw")
	write(t, path, le16(sensorValues()))
	write(t, filepath.Join(dir, "frame.json"), []byte(bayerJSON))

	img, err := New().Read(path, nil)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	d := img.Descriptor
	if d.PixelType != layout.BayerRGGB || d.PixelPrecision != 12 || d.SampleRepresentation != layout.U16 {
		t.Errorf("descriptor = %v precision %d", d, d.PixelPrecision)
	}
	if d.Exif.Make != "Acme" || d.Exif.ISOSpeed != 400 || d.Exif.Orientation != 1 {
		t.Errorf("Exif = %+v", d.Exif)
	}

	buf, _ := img.Uint16()
	ch, err := channels.Split(buf, d)
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}
	if diff := cmp.Diff([][]uint16{{100, 300}, {900, 1100}}, ch[channels.R].Rows()); diff != "" {
		t.Errorf("r mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]uint16{{600, 800}, {1400, 1600}}, ch[channels.B].Rows()); diff != "" {
		t.Errorf("b mismatch (-want +got):\n%s", diff)
	}
}

func TestReadYUVYAMLDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.yuv")
	data := make([]byte, 6*4+2*3*2)
	for i := range data {
		data[i] = byte(i)
	}
	write(t, path, data)
	write(t, path+".yaml", []byte("fileInfo:\n  width: 6\n  height: 4\n"))

	img, err := New().Read(path, nil)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	d := img.Descriptor
	if d.PixelType != layout.YUV || d.ImageLayout != layout.Yuv420 || d.SampleRepresentation != layout.U8 {
		t.Fatalf("descriptor = %v, want YUV Yuv420 U8", d)
	}
	buf, _ := img.Uint8()
	ch, err := channels.Split(buf, d)
	if err != nil {
		t.Fatalf("Split() error: %v", err)
	}
	if h, w := ch[channels.U].Shape(); h != 2 || w != 3 {
		t.Errorf("u shape = (%d,%d), want (2,3)", h, w)
	}
	if diff := cmp.Diff([][]uint8{{30, 31, 32}, {33, 34, 35}}, ch[channels.V].Rows()); diff != "" {
		t.Errorf("v mismatch (-want +got):\n%s", diff)
	}
}

func TestReadZstd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.raw.zst")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatalf("zstd.NewWriter() error: %v", err)
	}
	if _, err := enc.Write(le16(sensorValues())); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	f.Close()
	write(t, filepath.Join(dir, "frame.json"), []byte(bayerJSON))

	if !New().CanRead(path) {
		t.Fatalf("CanRead(%q) = false", path)
	}
	img, err := reader.Read(path, nil)
	if err != nil {
		t.Fatalf("reader.Read() error: %v", err)
	}
	buf, _ := img.Uint16()
	if diff := cmp.Diff(sensorValues(), buf); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestReadExplicitSidecarAndExifSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.gray")
	write(t, path, []byte{1, 2, 3, 4, 5, 6})
	meta := filepath.Join(dir, "meta", "dump-info.yml")
	if err := os.MkdirAll(filepath.Dir(meta), 0o755); err != nil {
		t.Fatal(err)
	}
	write(t, meta, []byte(`
fileInfo:
  pixelRepresentation: UINT8
exifMetadata:
  imageWidth: 3
  imageHeight: 2
  orientation: 6
`))

	img, err := New().Read(path, reader.NewReadParameters().WithMetadataPath(meta))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	d := img.Descriptor
	if d.Width != nil {
		t.Errorf("Width = %d, want absent", *d.Width)
	}
	w, h, err := d.Dimensions()
	if err != nil || w != 3 || h != 2 {
		t.Errorf("Dimensions() = %d, %d, %v", w, h, err)
	}
	if d.PixelType != layout.Grayscale || d.Exif.Orientation != 6 {
		t.Errorf("descriptor = %v orientation %d", d, d.Exif.Orientation)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		sidecar string
		want    error
	}{
		{"no sidecar", le16(sensorValues()), "", layout.ErrMissingMetadata},
		{"short payload", le16(sensorValues()[:15]), bayerJSON, ErrPayloadSize},
		{"bad pixel type", le16(sensorValues()), `{"fileInfo":{"width":4,"height":4,"pixelType":"BAYER_XYZW"}}`, layout.ErrUnsupportedPixelType},
		{"bad representation", le16(sensorValues()), `{"fileInfo":{"width":4,"height":4,"pixelType":"BAYER_RGGB","pixelRepresentation":"INT4"}}`, layout.ErrUnsupportedPixelRepresentation},
		{"odd size", le16(sensorValues()[:12]), `{"fileInfo":{"width":3,"height":4,"pixelType":"BAYER_RGGB"}}`, layout.ErrOddDimensions},
		{"no size", le16(sensorValues()), `{"fileInfo":{"pixelType":"BAYER_RGGB"}}`, layout.ErrMissingDimensions},
		{"broken json", le16(sensorValues()), `{"fileInfo":`, ErrSidecar},
		{"white balance triple", le16(sensorValues()), `{"fileInfo":{"width":4,"height":4,"pixelType":"BAYER_RGGB"},"cameraControls":{"whiteBalance":[2,1,1.5]}}`, ErrSidecar},
		{"color matrix 2x3", le16(sensorValues()), `{"fileInfo":{"width":4,"height":4,"pixelType":"BAYER_RGGB"},"calibrationData":{"colorMatrix":[[1,0,0],[0,1,0]]}}`, ErrSidecar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "frame.cfa")
			write(t, path, tt.payload)
			if tt.sidecar != "" {
				write(t, filepath.Join(dir, "frame.json"), []byte(tt.sidecar))
			}
			_, err := New().Read(path, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("Read() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadCalibrationYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.raw")
	write(t, path, le16(sensorValues()))
	write(t, filepath.Join(dir, "frame.yaml"), []byte(`
fileInfo:
  width: 4
  height: 4
  pixelType: BAYER_GRBG
calibrationData:
  blackLevel: 64
  whiteLevel: 4095
  colorMatrix:
    - [1.6, -0.4, -0.2]
    - [-0.2, 1.5, -0.3]
    - [0.0, -0.6, 1.6]
  colorMatrixTarget: SRGB
cameraControls:
  whiteBalance: [2.05, 1.58]
shootingParams:
  aperture: 1.8
  exposureTime: 0.02
  sensitivity: 200
  totalGain: 2
  ispGain: 1
`))

	img, err := New().Read(path, nil)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	d := img.Descriptor
	wantCal := &layout.Calibration{
		BlackLevel:        layout.Float(64),
		WhiteLevel:        layout.Float(4095),
		ColorMatrix:       &[3][3]float64{{1.6, -0.4, -0.2}, {-0.2, 1.5, -0.3}, {0, -0.6, 1.6}},
		ColorMatrixTarget: "SRGB",
	}
	if diff := cmp.Diff(wantCal, d.Calibration); diff != "" {
		t.Errorf("Calibration mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(&layout.WhiteBalance{GainR: 2.05, GainB: 1.58}, d.WhiteBalance); diff != "" {
		t.Errorf("WhiteBalance mismatch (-want +got):\n%s", diff)
	}
	wantShoot := &layout.ShootingParams{
		Aperture:     layout.Float(1.8),
		ExposureTime: layout.Float(0.02),
		Sensitivity:  layout.Float(200),
		TotalGain:    layout.Float(2),
		ISPGain:      layout.Float(1),
	}
	if diff := cmp.Diff(wantShoot, d.Shooting); diff != "" {
		t.Errorf("Shooting mismatch (-want +got):\n%s", diff)
	}
}

func TestReadWithoutCalibration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.raw")
	write(t, path, le16(sensorValues()))
	write(t, filepath.Join(dir, "frame.json"), []byte(bayerJSON))

	img, err := New().Read(path, nil)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	d := img.Descriptor
	if d.Calibration != nil || d.WhiteBalance != nil || d.Shooting != nil {
		t.Errorf("metadata without sidecar sections: cal=%+v wb=%+v shoot=%+v", d.Calibration, d.WhiteBalance, d.Shooting)
	}
}

func TestDecodeFloat(t *testing.T) {
	vals := []float32{0.25, -1, 3.5, 1e6}
	data := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(data[4*i:], math.Float32bits(v))
	}
	d := layout.New(2, 2, layout.Grayscale, layout.Planar, layout.F32)
	img, err := Decode(data, d, nil)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	got, err := img.Float32()
	if err != nil {
		t.Fatalf("Float32() error: %v", err)
	}
	if diff := cmp.Diff(vals, got); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestReadBigEndian(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.raw")
	vals := sensorValues()
	data := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint16(data[2*i:], v)
	}
	write(t, path, data)
	write(t, filepath.Join(dir, "frame.json"), []byte(bayerJSON))

	img, err := New().Read(path, reader.NewReadParameters().WithByteOrder(binary.BigEndian))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	got, _ := img.Uint16()
	if diff := cmp.Diff(vals, got); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestCanRead(t *testing.T) {
	r := New()
	tests := []struct {
		path string
		want bool
	}{
		{"a.raw", true},
		{"a.CFA", true},
		{"a.yuv", true},
		{"a.nv12.zst", true},
		{"a.gray", true},
		{"a.png", false},
		{"a.zst", false},
		{"a.fits", false},
	}
	for _, tt := range tests {
		if got := r.CanRead(tt.path); got != tt.want {
			t.Errorf("CanRead(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
