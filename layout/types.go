package layout

import (
	"fmt"
	"strings"
)

// PixelType identifies how the samples of a buffer map to colors.
type PixelType int

const (
	// PixelTypeUnknown is the zero value; descriptors carrying it are rejected.
	PixelTypeUnknown PixelType = iota
	BayerRGGB
	BayerBGGR
	BayerGRBG
	BayerGBRG
	RGB
	RGBA
	YUV
	Grayscale
	// Custom marks a mosaic that matched none of the canonical Bayer tiles
	// (X-Trans and other extended arrangements).
	Custom
)

var pixelTypeNames = map[PixelType]string{
	PixelTypeUnknown: "Unknown",
	BayerRGGB:        "BayerRGGB",
	BayerBGGR:        "BayerBGGR",
	BayerGRBG:        "BayerGRBG",
	BayerGBRG:        "BayerGBRG",
	RGB:              "RGB",
	RGBA:             "RGBA",
	YUV:              "YUV",
	Grayscale:        "Grayscale",
	Custom:           "Custom",
}

// Upper-snake aliases are the names used in sidecar metadata files.
var pixelTypeAliases = map[string]PixelType{
	"BAYER_RGGB": BayerRGGB,
	"BAYER_BGGR": BayerBGGR,
	"BAYER_GRBG": BayerGRBG,
	"BAYER_GBRG": BayerGBRG,
	"GRAYSCALE":  Grayscale,
	"CUSTOM":     Custom,
}

func (t PixelType) String() string {
	if s, ok := pixelTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("PixelType(%d)", int(t))
}

// IsBayer reports whether t is one of the four 2x2 Bayer variants.
func (t PixelType) IsBayer() bool {
	switch t {
	case BayerRGGB, BayerBGGR, BayerGRBG, BayerGBRG:
		return true
	}
	return false
}

// ParsePixelType parses either the Go name ("BayerRGGB") or the sidecar
// name ("BAYER_RGGB"). Matching is case-insensitive.
func ParsePixelType(s string) (PixelType, error) {
	key := strings.TrimSpace(s)
	if t, ok := pixelTypeAliases[strings.ToUpper(key)]; ok {
		return t, nil
	}
	for t, name := range pixelTypeNames {
		if t != PixelTypeUnknown && strings.EqualFold(name, key) {
			return t, nil
		}
	}
	return PixelTypeUnknown, fmt.Errorf("%w: %q", ErrUnsupportedPixelType, s)
}

// ImageLayout describes how channels are arranged in memory.
type ImageLayout int

const (
	LayoutUnknown ImageLayout = iota
	Interleaved
	Planar
	Yuv420
	Nv12
	LayoutCustom
)

var imageLayoutNames = map[ImageLayout]string{
	LayoutUnknown: "Unknown",
	Interleaved:   "Interleaved",
	Planar:        "Planar",
	Yuv420:        "Yuv420",
	Nv12:          "Nv12",
	LayoutCustom:  "Custom",
}

var imageLayoutAliases = map[string]ImageLayout{
	"YUV_420": Yuv420,
	"I420":    Yuv420,
}

func (l ImageLayout) String() string {
	if s, ok := imageLayoutNames[l]; ok {
		return s
	}
	return fmt.Sprintf("ImageLayout(%d)", int(l))
}

// ParseImageLayout parses "Planar", "PLANAR", "YUV_420", "NV12" and similar.
func ParseImageLayout(s string) (ImageLayout, error) {
	key := strings.TrimSpace(s)
	if l, ok := imageLayoutAliases[strings.ToUpper(key)]; ok {
		return l, nil
	}
	for l, name := range imageLayoutNames {
		if l != LayoutUnknown && strings.EqualFold(name, key) {
			return l, nil
		}
	}
	return LayoutUnknown, fmt.Errorf("%w: %q", ErrUnsupportedImageLayout, s)
}

// SampleRepresentation is the element type of a buffer.
type SampleRepresentation int

const (
	RepresentationUnknown SampleRepresentation = iota
	U8
	U16
	F32
	F64
)

var representationNames = map[SampleRepresentation]string{
	RepresentationUnknown: "Unknown",
	U8:                    "U8",
	U16:                   "U16",
	F32:                   "F32",
	F64:                   "F64",
}

var representationAliases = map[string]SampleRepresentation{
	"UINT8":  U8,
	"UINT16": U16,
	"FLOAT":  F32,
	"DOUBLE": F64,
}

func (r SampleRepresentation) String() string {
	if s, ok := representationNames[r]; ok {
		return s
	}
	return fmt.Sprintf("SampleRepresentation(%d)", int(r))
}

// BytesPerSample returns the storage size of one sample, or 0 if r is not
// a supported representation.
func (r SampleRepresentation) BytesPerSample() int {
	switch r {
	case U8:
		return 1
	case U16:
		return 2
	case F32:
		return 4
	case F64:
		return 8
	}
	return 0
}

// Valid reports whether r is one of U8, U16, F32 or F64.
func (r SampleRepresentation) Valid() bool {
	return r.BytesPerSample() != 0
}

// ParseSampleRepresentation accepts "U16", "UINT16", "FLOAT", "F64", ...
func ParseSampleRepresentation(s string) (SampleRepresentation, error) {
	key := strings.TrimSpace(s)
	if r, ok := representationAliases[strings.ToUpper(key)]; ok {
		return r, nil
	}
	for r, name := range representationNames {
		if r != RepresentationUnknown && strings.EqualFold(name, key) {
			return r, nil
		}
	}
	return RepresentationUnknown, fmt.Errorf("%w: %q", ErrUnsupportedPixelRepresentation, s)
}
