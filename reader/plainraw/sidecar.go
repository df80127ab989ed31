package plainraw

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"

	"github.com/cocosip/go-image-io/layout"
)

// FileInfo is the "fileInfo" section of a sidecar.
type FileInfo struct {
	Width               uint   `koanf:"width"`
	Height              uint   `koanf:"height"`
	PixelType           string `koanf:"pixelType"`
	ImageLayout         string `koanf:"imageLayout"`
	PixelPrecision      uint8  `koanf:"pixelPrecision"`
	PixelRepresentation string `koanf:"pixelRepresentation"`
}

// ExifMetadata is the "exifMetadata" section of a sidecar.
type ExifMetadata struct {
	ImageWidth       uint    `koanf:"imageWidth"`
	ImageHeight      uint    `koanf:"imageHeight"`
	Orientation      int     `koanf:"orientation"`
	Make             string  `koanf:"make"`
	Model            string  `koanf:"model"`
	ISOSpeed         int     `koanf:"isoSpeed"`
	ExposureTime     float64 `koanf:"exposureTime"`
	FNumber          float64 `koanf:"fNumber"`
	FocalLength      float64 `koanf:"focalLength"`
	DateTimeOriginal string  `koanf:"dateTimeOriginal"`
	ImageDescription string  `koanf:"imageDescription"`
}

// CalibrationData is the "calibrationData" section of a sidecar.
type CalibrationData struct {
	BlackLevel        *float64    `koanf:"blackLevel"`
	WhiteLevel        *float64    `koanf:"whiteLevel"`
	ColorMatrix       [][]float64 `koanf:"colorMatrix"`
	ColorMatrixTarget string      `koanf:"colorMatrixTarget"`
}

// CameraControls is the "cameraControls" section of a sidecar. WhiteBalance
// is the pair [gainR, gainB].
type CameraControls struct {
	WhiteBalance []float64 `koanf:"whiteBalance"`
}

// ShootingParams is the "shootingParams" section of a sidecar.
type ShootingParams struct {
	Aperture     *float64 `koanf:"aperture"`
	ExposureTime *float64 `koanf:"exposureTime"`
	Sensitivity  *float64 `koanf:"sensitivity"`
	TotalGain    *float64 `koanf:"totalGain"`
	SensorGain   *float64 `koanf:"sensorGain"`
	ISPGain      *float64 `koanf:"ispGain"`
}

// Sidecar describes a headerless payload.
type Sidecar struct {
	FileInfo        FileInfo        `koanf:"fileInfo"`
	ExifMetadata    ExifMetadata    `koanf:"exifMetadata"`
	CalibrationData CalibrationData `koanf:"calibrationData"`
	CameraControls  CameraControls  `koanf:"cameraControls"`
	ShootingParams  ShootingParams  `koanf:"shootingParams"`
}

// defaultsFor returns the sidecar values implied by a payload extension.
// The sidecar file overrides every one of them.
func defaultsFor(ext string) Sidecar {
	s := Sidecar{
		FileInfo:     FileInfo{PixelRepresentation: "UINT16", ImageLayout: "PLANAR"},
		ExifMetadata: ExifMetadata{Orientation: 1},
	}
	switch ext {
	case ".yuv":
		s.FileInfo = FileInfo{PixelType: "YUV", ImageLayout: "YUV_420", PixelRepresentation: "UINT8"}
	case ".nv12":
		s.FileInfo = FileInfo{PixelType: "YUV", ImageLayout: "NV12", PixelRepresentation: "UINT8"}
	case ".gray":
		s.FileInfo.PixelType = "GRAYSCALE"
	}
	return s
}

// LoadSidecar reads a JSON or YAML sidecar on top of defaults.
func LoadSidecar(path string, defaults Sidecar) (Sidecar, error) {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		parser = json.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		return Sidecar{}, fmt.Errorf("%w: sidecar %s is neither JSON nor YAML", ErrSidecar, path)
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return Sidecar{}, fmt.Errorf("%w: defaults: %v", ErrSidecar, err)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return Sidecar{}, fmt.Errorf("%w: %v", ErrSidecar, err)
	}

	var s Sidecar
	if err := k.Unmarshal("", &s); err != nil {
		return Sidecar{}, fmt.Errorf("%w: %v", ErrSidecar, err)
	}
	return s, nil
}

// findSidecar returns the explicit path when set, else the first existing
// JSON or YAML file named after the payload, the payload without ".zst", or
// the payload stem.
func findSidecar(payload, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	name := payloadName(payload)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	for _, base := range []string{payload, name, stem} {
		for _, ext := range []string{".json", ".yaml", ".yml"} {
			if _, err := os.Stat(base + ext); err == nil {
				return base + ext, nil
			}
		}
	}
	return "", fmt.Errorf("%w: no sidecar for %s", layout.ErrMissingMetadata, payload)
}

// Descriptor converts the sidecar into a layout descriptor.
func (s Sidecar) Descriptor() (*layout.Descriptor, error) {
	fi := s.FileInfo
	pt, err := layout.ParsePixelType(fi.PixelType)
	if err != nil {
		return nil, err
	}
	il, err := layout.ParseImageLayout(fi.ImageLayout)
	if err != nil {
		return nil, err
	}
	rep, err := layout.ParseSampleRepresentation(fi.PixelRepresentation)
	if err != nil {
		return nil, err
	}

	d := &layout.Descriptor{
		PixelType:            pt,
		ImageLayout:          il,
		SampleRepresentation: rep,
		PixelPrecision:       fi.PixelPrecision,
	}
	if fi.Width > 0 && fi.Height > 0 {
		d.WithSize(fi.Width, fi.Height)
	}

	ex := s.ExifMetadata
	d.Exif = &layout.Exif{
		Orientation:      ex.Orientation,
		Make:             ex.Make,
		Model:            ex.Model,
		ISOSpeed:         ex.ISOSpeed,
		ExposureTime:     ex.ExposureTime,
		FNumber:          ex.FNumber,
		FocalLength:      ex.FocalLength,
		DateTimeOriginal: ex.DateTimeOriginal,
		ImageDescription: ex.ImageDescription,
	}
	if ex.ImageWidth > 0 {
		d.Exif.ImageWidth = layout.Uint(ex.ImageWidth)
	}
	if ex.ImageHeight > 0 {
		d.Exif.ImageHeight = layout.Uint(ex.ImageHeight)
	}

	if d.Calibration, err = s.CalibrationData.calibration(); err != nil {
		return nil, err
	}
	switch wb := s.CameraControls.WhiteBalance; len(wb) {
	case 0:
	case 2:
		d.WhiteBalance = &layout.WhiteBalance{GainR: wb[0], GainB: wb[1]}
	default:
		return nil, fmt.Errorf("%w: whiteBalance has %d entries, want [gainR, gainB]", ErrSidecar, len(wb))
	}
	if sp := s.ShootingParams; sp != (ShootingParams{}) {
		d.Shooting = &layout.ShootingParams{
			Aperture:     sp.Aperture,
			ExposureTime: sp.ExposureTime,
			Sensitivity:  sp.Sensitivity,
			TotalGain:    sp.TotalGain,
			SensorGain:   sp.SensorGain,
			ISPGain:      sp.ISPGain,
		}
	}
	return d, nil
}

func (c CalibrationData) calibration() (*layout.Calibration, error) {
	if c.BlackLevel == nil && c.WhiteLevel == nil && len(c.ColorMatrix) == 0 && c.ColorMatrixTarget == "" {
		return nil, nil
	}
	cal := &layout.Calibration{
		BlackLevel:        c.BlackLevel,
		WhiteLevel:        c.WhiteLevel,
		ColorMatrixTarget: c.ColorMatrixTarget,
	}
	if len(c.ColorMatrix) == 0 {
		return cal, nil
	}
	if len(c.ColorMatrix) != 3 {
		return nil, fmt.Errorf("%w: colorMatrix has %d rows, want 3", ErrSidecar, len(c.ColorMatrix))
	}
	var m [3][3]float64
	for i, row := range c.ColorMatrix {
		if len(row) != 3 {
			return nil, fmt.Errorf("%w: colorMatrix row %d has %d entries, want 3", ErrSidecar, i, len(row))
		}
		copy(m[i][:], row)
	}
	cal.ColorMatrix = &m
	return cal, nil
}
