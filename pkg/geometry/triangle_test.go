package geometry

import (
	"math"
	"testing"
)

func TestTriangleArea(t *testing.T) {
	// Create a right triangle with sides 3, 4, 5
	tri := NewTriangle(
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	area := tri.Area()
	expected := 6.0 // (3 * 4) / 2 = 6

	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleSignedVolumeFollowsWinding(t *testing.T) {
	a, b, c := NewVector3(1, 0, 0), NewVector3(0, 1, 0), NewVector3(0, 0, 1)
	expected := 1.0 / 6.0

	if volume := NewTriangle(a, b, c).SignedVolume(); math.Abs(volume-expected) > 1e-10 {
		t.Errorf("SignedVolume failed: expected %v, got %v", expected, volume)
	}
	if volume := NewTriangle(c, b, a).SignedVolume(); math.Abs(volume+expected) > 1e-10 {
		t.Errorf("Reversed SignedVolume failed: expected %v, got %v", -expected, volume)
	}
}
