// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sentinel

import (
	"math"
	"testing"
)

func TestAbsent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty", "", true},
		{"whitespace only", "   \t", true},
		{"NaN literal", "NaN", true},
		{"nan literal", "nan", true},
		{"NaN padded", "  NaN  ", true},
		{"uppercase NAN is present", "NAN", false},
		{"Nan mixed case is present", "Nan", false},
		{"real value", "MIT", false},
		{"numeric string", "0", false},
		{"nan embedded in word", "banana", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Absent(tt.input); got != tt.want {
				t.Errorf("Absent(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAbsentValue(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  bool
	}{
		{"nil", nil, true},
		{"float64 NaN", math.NaN(), true},
		{"float32 NaN", float32(math.NaN()), true},
		{"float zero", 0.0, false},
		{"empty string", "", true},
		{"sentinel string", "nan", true},
		{"real string", "Stanford", false},
		{"int zero", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AbsentValue(tt.input); got != tt.want {
				t.Errorf("AbsentValue(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"NaN", ""},
		{"nan", ""},
		{"  nan ", ""},
		{"  MIT  ", "MIT"},
		{"Assistant Professor", "Assistant Professor"},
	}
	for _, tt := range tests {
		if got := Clean(tt.input); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
