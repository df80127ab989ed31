package fits

import (
	"strings"

	"github.com/astrogo/fitsio"

	"github.com/cocosip/go-image-io/layout"
)

func cardFloat(h *fitsio.Header, name string, def float64) float64 {
	if v := cardNumber(h, name); v != nil {
		return *v
	}
	return def
}

// cardNumber returns the numeric value of a card, or nil when the card is
// absent or not a number.
func cardNumber(h *fitsio.Header, name string) *float64 {
	c := h.Get(name)
	if c == nil {
		return nil
	}
	switch v := c.Value.(type) {
	case int:
		return layout.Float(float64(v))
	case int64:
		return layout.Float(float64(v))
	case int32:
		return layout.Float(float64(v))
	case float64:
		return layout.Float(v)
	case float32:
		return layout.Float(float64(v))
	}
	return nil
}

func firstNumber(h *fitsio.Header, names ...string) *float64 {
	for _, name := range names {
		if v := cardNumber(h, name); v != nil {
			return v
		}
	}
	return nil
}

func cardInt(h *fitsio.Header, name string, def int) int {
	return int(cardFloat(h, name, float64(def)))
}

func cardString(h *fitsio.Header, name string) string {
	c := h.Get(name)
	if c == nil {
		return ""
	}
	if s, ok := c.Value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// exifFromHeader maps the acquisition keywords written by camera control
// software onto EXIF fields.
func exifFromHeader(h *fitsio.Header, width, height int) *layout.Exif {
	e := &layout.Exif{
		ImageWidth:       layout.Uint(uint(width)),
		ImageHeight:      layout.Uint(uint(height)),
		Orientation:      1,
		Make:             cardString(h, "TELESCOP"),
		Model:            cardString(h, "INSTRUME"),
		ISOSpeed:         cardInt(h, "GAIN", 0),
		ExposureTime:     cardFloat(h, "EXPTIME", cardFloat(h, "EXPOSURE", 0)),
		FocalLength:      cardFloat(h, "FOCALLEN", 0),
		DateTimeOriginal: cardString(h, "DATE-OBS"),
		ImageDescription: cardString(h, "OBJECT"),
	}
	if strings.EqualFold(cardString(h, "ROWORDER"), "BOTTOM-UP") {
		e.Orientation = 4
	}
	return e
}

// calibrationFromHeader reads the pedestal and saturation level. It returns
// nil when the header carries neither.
func calibrationFromHeader(h *fitsio.Header) *layout.Calibration {
	black := cardNumber(h, "PEDESTAL")
	white := firstNumber(h, "SATURATE", "DATAMAX")
	if black == nil && white == nil {
		return nil
	}
	return &layout.Calibration{BlackLevel: black, WhiteLevel: white}
}

// shootingFromHeader reads the capture settings. The aperture is the focal
// ratio FOCALLEN/APTDIA when both cards are present.
func shootingFromHeader(h *fitsio.Header) *layout.ShootingParams {
	sp := layout.ShootingParams{
		ExposureTime: firstNumber(h, "EXPTIME", "EXPOSURE"),
		Sensitivity:  cardNumber(h, "ISOSPEED"),
		SensorGain:   cardNumber(h, "GAIN"),
	}
	if f, d := cardNumber(h, "FOCALLEN"), cardNumber(h, "APTDIA"); f != nil && d != nil && *d > 0 {
		sp.Aperture = layout.Float(*f / *d)
	}
	if sp == (layout.ShootingParams{}) {
		return nil
	}
	return &sp
}
