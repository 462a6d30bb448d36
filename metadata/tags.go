package metadata

// Kind discriminates the union of EXIF tag value representations.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindRational
	KindBytes
)

// Rational is an EXIF numerator/denominator pair. Division is always
// explicit so zero denominators can be guarded.
type Rational struct {
	Num int64
	Den int64
}

// Float decodes the rational to a float64, or nil when the denominator is
// zero.
func (r Rational) Float() *float64 {
	if r.Den == 0 {
		return nil
	}
	v := float64(r.Num) / float64(r.Den)
	return &v
}

// TagValue is one decoded EXIF tag as a tagged union: String | Int |
// Rational | Bytes. Only the field selected by Kind is meaningful.
type TagValue struct {
	Kind  Kind
	Str   string
	Int   int64
	Rat   Rational
	Bytes []byte
}

// FloatVal decodes the numeric representations of a tag value to a float,
// or nil when the tag is non-numeric or has a zero denominator.
func (tv TagValue) FloatVal() *float64 {
	switch tv.Kind {
	case KindRational:
		return tv.Rat.Float()
	case KindInt:
		v := float64(tv.Int)
		return &v
	}
	return nil
}

// IntVal decodes an integer tag value, or nil for other kinds.
func (tv TagValue) IntVal() *int {
	if tv.Kind != KindInt {
		return nil
	}
	v := int(tv.Int)
	return &v
}

// StringVal returns a trimmed string tag value, or nil when empty or not a
// string.
func (tv TagValue) StringVal() *string {
	if tv.Kind != KindString || tv.Str == "" {
		return nil
	}
	s := tv.Str
	return &s
}
