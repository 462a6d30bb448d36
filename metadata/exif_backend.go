package metadata

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/rwcarlsen/goexif/tiff"
)

// register maker-note parsers once; several vendors hide lens data there
var mknoteOnce sync.Once

// ExifBackend is the primary extraction backend. It walks the IFD0, EXIF
// and GPS sub-trees of JPEG/TIFF containers and exposes every visited tag
// as a TagValue union before decoding the well-known fields.
type ExifBackend struct{}

func (ExifBackend) Name() string { return "exif" }

func (ExifBackend) Extract(path string) (*Fields, error) {
	mknoteOnce.Do(func() { exif.RegisterParsers(mknote.All...) })

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("exif: failed to open %s: %w", path, err)
	}
	defer file.Close()

	x, err := exif.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("exif: no decodable EXIF data in %s: %w", path, err)
	}

	collector := &tagCollector{tags: make(map[uint16]TagValue)}
	if walkErr := x.Walk(collector); walkErr != nil {
		return nil, fmt.Errorf("exif: tag walk failed for %s: %w", path, walkErr)
	}

	fields := &Fields{Tags: collector.tags}

	fields.CameraMake = getString(x, exif.Make)
	fields.CameraModel = getString(x, exif.Model)
	fields.LensModel = getString(x, exif.LensModel)
	fields.ISO = getInt(x, exif.ISOSpeedRatings)

	fields.Aperture = getRational(x, exif.FNumber)
	fields.FocalLength = getRational(x, exif.FocalLength)
	fields.ExposureBias = getRational(x, exif.ExposureBiasValue)
	fields.SubjectDistance = getRational(x, exif.SubjectDistance)
	fields.DigitalZoom = getRational(x, exif.DigitalZoomRatio)

	fields.ExposureTime, fields.ShutterSpeed = getExposureTime(x)

	fields.Orientation = getInt(x, exif.Orientation)

	fields.Latitude = gpsCoordinate(x, exif.GPSLatitude, exif.GPSLatitudeRef)
	fields.Longitude = gpsCoordinate(x, exif.GPSLongitude, exif.GPSLongitudeRef)

	fields.Software = getString(x, exif.Software)
	fields.Artist = getString(x, exif.Artist)
	fields.Copyright = getString(x, exif.Copyright)

	fields.SceneCaptureType = getInt(x, exif.SceneCaptureType)
	fields.MeteringMode = getInt(x, exif.MeteringMode)
	fields.ExposureProgram = getInt(x, exif.ExposureProgram)

	if dt, dtErr := x.DateTime(); dtErr == nil {
		ts := dt.Unix()
		fields.TakenAt = &ts
	}

	return fields, nil
}

// tagCollector builds the tagged-union view of the tag tree during a walk.
type tagCollector struct {
	tags map[uint16]TagValue
}

func (c *tagCollector) Walk(_ exif.FieldName, tag *tiff.Tag) error {
	c.tags[tag.Id] = toTagValue(tag)
	return nil
}

func toTagValue(tag *tiff.Tag) TagValue {
	switch tag.Format() {
	case tiff.StringVal:
		if s, err := tag.StringVal(); err == nil {
			return TagValue{Kind: KindString, Str: strings.TrimRight(s, "\x00")}
		}
	case tiff.IntVal:
		if v, err := tag.Int64(0); err == nil {
			return TagValue{Kind: KindInt, Int: v}
		}
	case tiff.RatVal:
		if num, den, err := tag.Rat2(0); err == nil {
			return TagValue{Kind: KindRational, Rat: Rational{Num: num, Den: den}}
		}
	}
	return TagValue{Kind: KindBytes, Bytes: tag.Val}
}

// helper to safely get and convert a rational tag (like FNumber)
func getRational(x *exif.Exif, name exif.FieldName) *float64 {
	tag, err := x.Get(name)
	if err != nil || tag == nil {
		return nil
	}
	num, den, err := tag.Rat2(0)
	if err != nil {
		// some writers store these as plain integers instead
		if valInt, errInt := tag.Int(0); errInt == nil {
			fVal := float64(valInt)
			return &fVal
		}
		return nil
	}
	return Rational{Num: num, Den: den}.Float()
}

// helper to safely get and convert an integer tag (like ISO)
func getInt(x *exif.Exif, name exif.FieldName) *int {
	tag, err := x.Get(name)
	if err != nil || tag == nil {
		return nil
	}
	val, err := tag.Int(0)
	if err != nil {
		return nil
	}
	return &val
}

// helper to safely get a string tag, trimming null terminators
func getString(x *exif.Exif, name exif.FieldName) *string {
	tag, err := x.Get(name)
	if err != nil || tag == nil {
		return nil
	}
	val, err := tag.StringVal()
	if err != nil {
		return nil
	}
	val = strings.TrimSpace(strings.TrimRight(val, "\x00"))
	if val == "" {
		return nil
	}
	return &val
}

// getExposureTime decodes the exposure rational to seconds and preserves
// the original "n/d" form for shutter-speed display.
func getExposureTime(x *exif.Exif) (*float64, *string) {
	tag, err := x.Get(exif.ExposureTime)
	if err != nil || tag == nil {
		return nil, nil
	}
	num, den, err := tag.Rat2(0)
	if err != nil {
		return nil, nil
	}
	rat := Rational{Num: num, Den: den}
	seconds := rat.Float()
	if seconds == nil {
		return nil, nil
	}
	display := fmt.Sprintf("%d/%d", num, den)
	return seconds, &display
}

// gpsCoordinate reads one sexagesimal GPS triplet plus its hemisphere
// reference and delegates conversion to ToDecimalDegrees.
func gpsCoordinate(x *exif.Exif, coordName, refName exif.FieldName) *float64 {
	tag, err := x.Get(coordName)
	if err != nil || tag == nil {
		return nil
	}

	parts := make([]Rational, 0, int(tag.Count))
	for i := 0; i < int(tag.Count); i++ {
		num, den, ratErr := tag.Rat2(i)
		if ratErr != nil {
			break
		}
		parts = append(parts, Rational{Num: num, Den: den})
	}

	ref := ""
	if refTag, refErr := x.Get(refName); refErr == nil && refTag != nil {
		if refVal, svErr := refTag.StringVal(); svErr == nil {
			ref = refVal
		}
	}

	return ToDecimalDegrees(parts, ref)
}
