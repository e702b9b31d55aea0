package core

import (
	"math"
	"testing"
)

func TestRectEdges(t *testing.T) {
	r := Rect{X: 5, Y: 10, W: 20, H: 15}

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		expected       float64
	}{
		{"same point", 3, 4, 3, 4, 0},
		{"3-4-5 triangle", 0, 0, 3, 4, 5},
		{"negative delta", 10, 10, 7, 6, 5},
		{"diagonal", 110, 110, 120, 120, math.Sqrt(200)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Distance(tc.x1, tc.y1, tc.x2, tc.y2)
			if math.Abs(result-tc.expected) > 1e-9 {
				t.Errorf("Distance() = %f, expected %f", result, tc.expected)
			}
			// Distance is symmetric
			if back := Distance(tc.x2, tc.y2, tc.x1, tc.y1); back != result {
				t.Errorf("Distance() (reversed) = %f, expected %f", back, result)
			}
		})
	}
}

func TestCeilDiv(t *testing.T) {
	tests := []struct {
		a, b, expected int
	}{
		{40, 20, 2},
		{41, 20, 3},
		{1, 20, 1},
		{0, 20, 0},
		{10, 0, 0},
	}

	for _, tc := range tests {
		if result := CeilDiv(tc.a, tc.b); result != tc.expected {
			t.Errorf("CeilDiv(%d, %d) = %d, expected %d", tc.a, tc.b, result, tc.expected)
		}
	}
}
