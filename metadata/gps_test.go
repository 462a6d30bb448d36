package metadata

import (
	"math"
	"testing"
)

func TestToDecimalDegrees(t *testing.T) {
	tests := []struct {
		name  string
		parts []Rational
		ref   string
		want  float64
		isNil bool
	}{
		{
			name:  "whole degrees north",
			parts: []Rational{{45, 1}, {0, 1}, {0, 1}},
			ref:   "N",
			want:  45.0,
		},
		{
			name:  "degrees and minutes south",
			parts: []Rational{{10, 1}, {30, 1}, {0, 1}},
			ref:   "S",
			want:  -10.5,
		},
		{
			name:  "full sexagesimal east",
			parts: []Rational{{139, 1}, {41, 1}, {30, 1}},
			ref:   "E",
			want:  139.0 + 41.0/60.0 + 30.0/3600.0,
		},
		{
			name:  "west is negative",
			parts: []Rational{{122, 1}, {25, 1}, {6, 1}},
			ref:   "W",
			want:  -(122.0 + 25.0/60.0 + 6.0/3600.0),
		},
		{
			name:  "fractional seconds",
			parts: []Rational{{51, 1}, {28, 1}, {2385, 100}},
			ref:   "N",
			want:  51.0 + 28.0/60.0 + 23.85/3600.0,
		},
		{
			name:  "lowercase ref",
			parts: []Rational{{10, 1}, {0, 1}, {0, 1}},
			ref:   "s",
			want:  -10.0,
		},
		{
			name:  "too few components",
			parts: []Rational{{45, 1}, {30, 1}},
			ref:   "N",
			isNil: true,
		},
		{
			name:  "zero denominator",
			parts: []Rational{{45, 1}, {30, 0}, {0, 1}},
			ref:   "N",
			isNil: true,
		},
		{
			name:  "empty input",
			parts: nil,
			ref:   "N",
			isNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDecimalDegrees(tt.parts, tt.ref)
			if tt.isNil {
				if got != nil {
					t.Fatalf("expected nil, got %v", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %v, got nil", tt.want)
			}
			if math.Abs(*got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", *got, tt.want)
			}
		})
	}
}

func TestRationalFloat(t *testing.T) {
	if v := (Rational{1, 250}).Float(); v == nil || math.Abs(*v-0.004) > 1e-9 {
		t.Errorf("1/250 = %v, want 0.004", v)
	}
	if v := (Rational{5, 0}).Float(); v != nil {
		t.Errorf("zero denominator should yield nil, got %v", *v)
	}
}
