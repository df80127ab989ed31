package layout

// Calibration is the sensor calibration a raw backend reports. Nil fields
// were not provided.
type Calibration struct {
	BlackLevel *float64
	WhiteLevel *float64

	// ColorMatrix maps white-balanced camera RGB to ColorMatrixTarget,
	// row-major.
	ColorMatrix       *[3][3]float64
	ColorMatrixTarget string
}

// WhiteBalance holds the red and blue scales relative to green.
type WhiteBalance struct {
	GainR float64
	GainB float64
}

// ShootingParams are the capture settings of the frame. Nil fields were not
// provided.
type ShootingParams struct {
	Aperture     *float64
	ExposureTime *float64
	Sensitivity  *float64
	TotalGain    *float64
	SensorGain   *float64
	ISPGain      *float64
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return Float(*v)
}

func (c *Calibration) clone() *Calibration {
	if c == nil {
		return nil
	}
	out := &Calibration{
		BlackLevel:        cloneFloat(c.BlackLevel),
		WhiteLevel:        cloneFloat(c.WhiteLevel),
		ColorMatrixTarget: c.ColorMatrixTarget,
	}
	if c.ColorMatrix != nil {
		m := *c.ColorMatrix
		out.ColorMatrix = &m
	}
	return out
}

func (s *ShootingParams) clone() *ShootingParams {
	if s == nil {
		return nil
	}
	return &ShootingParams{
		Aperture:     cloneFloat(s.Aperture),
		ExposureTime: cloneFloat(s.ExposureTime),
		Sensitivity:  cloneFloat(s.Sensitivity),
		TotalGain:    cloneFloat(s.TotalGain),
		SensorGain:   cloneFloat(s.SensorGain),
		ISPGain:      cloneFloat(s.ISPGain),
	}
}
