package metadata

import "strings"

// ToDecimalDegrees converts a sexagesimal GPS triplet plus hemisphere
// reference to signed decimal degrees: dd = d + m/60 + s/3600, negated for
// southern or western references (case-insensitive). Returns nil when fewer
// than three components are supplied or any component has a zero
// denominator.
func ToDecimalDegrees(parts []Rational, ref string) *float64 {
	if len(parts) < 3 {
		return nil
	}

	deg := parts[0].Float()
	min := parts[1].Float()
	sec := parts[2].Float()
	if deg == nil || min == nil || sec == nil {
		return nil
	}

	dd := *deg + *min/60.0 + *sec/3600.0

	switch strings.ToUpper(strings.TrimSpace(ref)) {
	case "S", "W":
		dd = -dd
	}
	return &dd
}
