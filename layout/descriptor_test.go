package layout

import (
	"errors"
	"testing"
)

func TestDimensions(t *testing.T) {
	tests := []struct {
		name    string
		desc    *Descriptor
		wantW   int
		wantH   int
		wantErr error
	}{
		{
			name:  "native size",
			desc:  New(6, 4, YUV, Yuv420, U8),
			wantW: 6,
			wantH: 4,
		},
		{
			name: "native size wins over exif",
			desc: &Descriptor{
				Width:  Uint(8),
				Height: Uint(2),
				Exif:   &Exif{ImageWidth: Uint(100), ImageHeight: Uint(50)},
			},
			wantW: 8,
			wantH: 2,
		},
		{
			name:  "exif fallback",
			desc:  &Descriptor{Exif: &Exif{ImageWidth: Uint(10), ImageHeight: Uint(12)}},
			wantW: 10,
			wantH: 12,
		},
		{
			name:  "zero native width uses exif",
			desc:  &Descriptor{Width: Uint(0), Height: Uint(4), Exif: &Exif{ImageWidth: Uint(2), ImageHeight: Uint(2)}},
			wantW: 2,
			wantH: 2,
		},
		{
			name:    "half exif is missing",
			desc:    &Descriptor{Exif: &Exif{ImageWidth: Uint(10)}},
			wantErr: ErrMissingDimensions,
		},
		{
			name:    "nothing",
			desc:    &Descriptor{},
			wantErr: ErrMissingDimensions,
		},
		{
			name:    "nil descriptor",
			desc:    nil,
			wantErr: ErrMissingMetadata,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := tt.desc.Dimensions()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Dimensions() error = %v, want %v", err, tt.wantErr)
				}
				if w != 0 || h != 0 {
					t.Errorf("Dimensions() = %d,%d on error, want 0,0", w, h)
				}
				return
			}
			if err != nil {
				t.Fatalf("Dimensions() unexpected error: %v", err)
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Dimensions() = %d,%d, want %d,%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		desc    *Descriptor
		wantErr error
	}{
		{"valid bayer", New(4, 4, BayerRGGB, Planar, U16), nil},
		{"valid odd rgb", New(3, 5, RGB, Interleaved, U8), nil},
		{"odd bayer width", New(5, 4, BayerGRBG, Planar, U16), ErrOddDimensions},
		{"odd yuv height", New(4, 3, YUV, Nv12, U8), ErrOddDimensions},
		{"bad representation", New(4, 4, RGB, Planar, RepresentationUnknown), ErrUnsupportedPixelRepresentation},
		{"no size", &Descriptor{PixelType: RGB, SampleRepresentation: U8}, ErrMissingDimensions},
		{"nil", nil, ErrMissingMetadata},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.desc)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	d := New(4, 4, BayerRGGB, Planar, U16)
	d.Exif = &Exif{ImageWidth: Uint(4), ImageHeight: Uint(4), Make: "acme"}
	d.RawPattern = [][]int{{0, 1}, {3, 2}}

	c := d.Clone()
	*c.Width = 8
	*c.Exif.ImageWidth = 8
	c.RawPattern[0][0] = 9

	if *d.Width != 4 {
		t.Errorf("original Width = %d after clone mutation, want 4", *d.Width)
	}
	if *d.Exif.ImageWidth != 4 {
		t.Errorf("original Exif.ImageWidth = %d after clone mutation, want 4", *d.Exif.ImageWidth)
	}
	if d.RawPattern[0][0] != 0 {
		t.Errorf("original RawPattern[0][0] = %d after clone mutation, want 0", d.RawPattern[0][0])
	}
}

func TestCloneCopiesCalibration(t *testing.T) {
	d := New(4, 4, BayerRGGB, Planar, U16)
	d.Calibration = &Calibration{
		BlackLevel:  Float(64),
		WhiteLevel:  Float(1023),
		ColorMatrix: &[3][3]float64{{1.5, -0.3, -0.2}, {-0.2, 1.4, -0.2}, {0, -0.5, 1.5}},
	}
	d.WhiteBalance = &WhiteBalance{GainR: 2.1, GainB: 1.6}
	d.Shooting = &ShootingParams{ExposureTime: Float(0.01), ISPGain: Float(1)}

	c := d.Clone()
	*c.Calibration.BlackLevel = 0
	c.Calibration.ColorMatrix[0][0] = 9
	c.WhiteBalance.GainR = 1
	*c.Shooting.ExposureTime = 1

	if *d.Calibration.BlackLevel != 64 || d.Calibration.ColorMatrix[0][0] != 1.5 {
		t.Errorf("original calibration changed: black=%v matrix[0][0]=%v",
			*d.Calibration.BlackLevel, d.Calibration.ColorMatrix[0][0])
	}
	if d.WhiteBalance.GainR != 2.1 {
		t.Errorf("original GainR = %v, want 2.1", d.WhiteBalance.GainR)
	}
	if *d.Shooting.ExposureTime != 0.01 {
		t.Errorf("original ExposureTime = %v, want 0.01", *d.Shooting.ExposureTime)
	}
	if c.Shooting.Aperture != nil || c.Shooting.ISPGain == nil || *c.Shooting.ISPGain != 1 {
		t.Errorf("clone shooting = %+v", c.Shooting)
	}

	bare := New(2, 2, Grayscale, Planar, U8).Clone()
	if bare.Calibration != nil || bare.WhiteBalance != nil || bare.Shooting != nil {
		t.Errorf("clone of bare descriptor gained metadata: %+v", bare)
	}
}

func TestParseNames(t *testing.T) {
	pixelTypes := map[string]PixelType{
		"BAYER_RGGB": BayerRGGB,
		"BayerGBRG":  BayerGBRG,
		"rgba":       RGBA,
		"GRAYSCALE":  Grayscale,
		"YUV":        YUV,
	}
	for in, want := range pixelTypes {
		got, err := ParsePixelType(in)
		if err != nil || got != want {
			t.Errorf("ParsePixelType(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParsePixelType("QUADBAYER_RGGB"); !errors.Is(err, ErrUnsupportedPixelType) {
		t.Errorf("ParsePixelType(QUADBAYER_RGGB) error = %v, want %v", err, ErrUnsupportedPixelType)
	}

	layouts := map[string]ImageLayout{
		"PLANAR":      Planar,
		"interleaved": Interleaved,
		"YUV_420":     Yuv420,
		"NV12":        Nv12,
	}
	for in, want := range layouts {
		got, err := ParseImageLayout(in)
		if err != nil || got != want {
			t.Errorf("ParseImageLayout(%q) = %v, %v, want %v", in, got, err, want)
		}
	}

	reps := map[string]SampleRepresentation{
		"UINT8":  U8,
		"UINT16": U16,
		"FLOAT":  F32,
		"f64":    F64,
	}
	for in, want := range reps {
		got, err := ParseSampleRepresentation(in)
		if err != nil || got != want {
			t.Errorf("ParseSampleRepresentation(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseSampleRepresentation("INT32"); !errors.Is(err, ErrUnsupportedPixelRepresentation) {
		t.Errorf("ParseSampleRepresentation(INT32) error = %v, want %v", err, ErrUnsupportedPixelRepresentation)
	}
}

func TestRepresentationOf(t *testing.T) {
	if got := RepresentationOf[uint8](); got != U8 {
		t.Errorf("RepresentationOf[uint8]() = %v, want U8", got)
	}
	if got := RepresentationOf[uint16](); got != U16 {
		t.Errorf("RepresentationOf[uint16]() = %v, want U16", got)
	}
	if got := RepresentationOf[float32](); got != F32 {
		t.Errorf("RepresentationOf[float32]() = %v, want F32", got)
	}
	if got := RepresentationOf[float64](); got != F64 {
		t.Errorf("RepresentationOf[float64]() = %v, want F64", got)
	}
}

func TestPlaneView(t *testing.T) {
	// 3 rows of 4 samples; take the right 2 columns as a strided view.
	src := []uint16{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
	}
	view := &Plane[uint16]{Width: 2, Height: 3, Stride: 4, Pix: src[2:]}

	if got := view.At(1, 1); got != 8 {
		t.Errorf("At(1,1) = %d, want 8", got)
	}
	if view.Contiguous() {
		t.Error("strided view reported contiguous")
	}

	packed := view.Clone()
	want, _ := PlaneOf([]uint16{3, 4, 7, 8, 11, 12}, 2, 3)
	if !packed.Equal(want) {
		t.Errorf("Clone() = %v, want %v", packed.Rows(), want.Rows())
	}

	view.Set(0, 0, 99)
	if src[2] != 99 {
		t.Errorf("Set through view did not reach source, src[2] = %d", src[2])
	}
	if packed.At(0, 0) != 3 {
		t.Errorf("clone aliases source, At(0,0) = %d", packed.At(0, 0))
	}
}

func TestPlaneOfShortBuffer(t *testing.T) {
	if _, err := PlaneOf(make([]uint8, 5), 2, 3); err == nil {
		t.Error("PlaneOf with short buffer expected error, got nil")
	}
}
