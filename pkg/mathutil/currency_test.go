package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small positive", 0.001, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Large negative", -100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsZero(tt.input)
			if result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		val      float64
		lo       float64
		hi       float64
		expected float64
	}{
		{"Within range", 50.0, 0.0, 100.0, 50.0},
		{"Below range", -10.0, 0.0, 100.0, 0.0},
		{"Above range", 150.0, 0.0, 100.0, 100.0},
		{"At lower bound", 0.0, 0.0, 100.0, 0.0},
		{"At upper bound", 100.0, 0.0, 100.0, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Clamp(tt.val, tt.lo, tt.hi)
			if result != tt.expected {
				t.Errorf("Clamp(%v, %v, %v) = %v, expected %v", tt.val, tt.lo, tt.hi, result, tt.expected)
			}
		})
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"Half", 50.0, 100.0, 50.0},
		{"Over total", 150.0, 100.0, 150.0},
		{"Zero total", 10.0, 0.0, 0.0},
		{"Zero value", 0.0, 100.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v", tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		percentage float64
		expected   float64
	}{
		{"Quarter", 1000.0, 25.0, 250.0},
		{"Full", 1000.0, 100.0, 1000.0},
		{"Zero percent", 1000.0, 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyPercentage(tt.value, tt.percentage)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v", tt.value, tt.percentage, result, tt.expected)
			}
		})
	}
}
