package metadata

// Fields is the transient result of one extraction pass. Partially populated
// is valid; nil means "this backend had no value". It is never persisted
// directly — the ingestion orchestrator denormalizes what it needs onto the
// asset row.
type Fields struct {
	Width  *int `json:"width,omitempty"`
	Height *int `json:"height,omitempty"`

	CameraMake  *string `json:"camera_make,omitempty"`
	CameraModel *string `json:"camera_model,omitempty"`
	LensModel   *string `json:"lens_model,omitempty"`

	ISO          *int     `json:"iso,omitempty"`
	ExposureTime *float64 `json:"exposure_time,omitempty"` // seconds, decoded from the rational
	ShutterSpeed *string  `json:"shutter_speed,omitempty"` // original "n/d" form for display
	Aperture     *float64 `json:"aperture,omitempty"`      // F-number
	FocalLength  *float64 `json:"focal_length,omitempty"`  // mm

	ExposureBias    *float64 `json:"exposure_bias,omitempty"`
	SubjectDistance *float64 `json:"subject_distance,omitempty"`
	DigitalZoom     *float64 `json:"digital_zoom,omitempty"`

	Orientation *int `json:"orientation,omitempty"` // EXIF code 1..8

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	TakenAt *int64 `json:"taken_at,omitempty"` // Unix timestamp

	Software  *string `json:"software,omitempty"`
	Artist    *string `json:"artist,omitempty"`
	Copyright *string `json:"copyright,omitempty"`

	SceneCaptureType *int `json:"scene_capture_type,omitempty"`
	MeteringMode     *int `json:"metering_mode,omitempty"`
	ExposureProgram  *int `json:"exposure_program,omitempty"`

	// Tags is the raw tagged-union view of the structured parse, keyed by
	// numeric tag id. Only the primary backend populates it. GPS tag ids
	// occupy a disjoint low range, so one map covers all three IFDs.
	Tags map[uint16]TagValue `json:"-"`
}

// OrientationCode returns the EXIF orientation, defaulting to 1 (no
// transform) when absent or out of the valid 1..8 range.
func (f *Fields) OrientationCode() int {
	if f == nil || f.Orientation == nil || *f.Orientation < 1 || *f.Orientation > 8 {
		return 1
	}
	return *f.Orientation
}

// fill copies every non-empty field of src into the nil slots of dst.
// Earlier backends always win; this is the "first non-empty wins" reducer.
func (f *Fields) fill(src *Fields) {
	if src == nil {
		return
	}
	if f.Width == nil {
		f.Width = src.Width
	}
	if f.Height == nil {
		f.Height = src.Height
	}
	if f.CameraMake == nil {
		f.CameraMake = src.CameraMake
	}
	if f.CameraModel == nil {
		f.CameraModel = src.CameraModel
	}
	if f.LensModel == nil {
		f.LensModel = src.LensModel
	}
	if f.ISO == nil {
		f.ISO = src.ISO
	}
	if f.ExposureTime == nil {
		f.ExposureTime = src.ExposureTime
	}
	if f.ShutterSpeed == nil {
		f.ShutterSpeed = src.ShutterSpeed
	}
	if f.Aperture == nil {
		f.Aperture = src.Aperture
	}
	if f.FocalLength == nil {
		f.FocalLength = src.FocalLength
	}
	if f.ExposureBias == nil {
		f.ExposureBias = src.ExposureBias
	}
	if f.SubjectDistance == nil {
		f.SubjectDistance = src.SubjectDistance
	}
	if f.DigitalZoom == nil {
		f.DigitalZoom = src.DigitalZoom
	}
	if f.Orientation == nil {
		f.Orientation = src.Orientation
	}
	if f.Latitude == nil {
		f.Latitude = src.Latitude
	}
	if f.Longitude == nil {
		f.Longitude = src.Longitude
	}
	if f.TakenAt == nil {
		f.TakenAt = src.TakenAt
	}
	if f.Software == nil {
		f.Software = src.Software
	}
	if f.Artist == nil {
		f.Artist = src.Artist
	}
	if f.Copyright == nil {
		f.Copyright = src.Copyright
	}
	if f.SceneCaptureType == nil {
		f.SceneCaptureType = src.SceneCaptureType
	}
	if f.MeteringMode == nil {
		f.MeteringMode = src.MeteringMode
	}
	if f.ExposureProgram == nil {
		f.ExposureProgram = src.ExposureProgram
	}
	if f.Tags == nil {
		f.Tags = src.Tags
	}
}
