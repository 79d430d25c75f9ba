package geometry

import (
	"math"
	"testing"
)

const tolerance = 1e-6

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) <= tolerance
}

func TestVector3Add(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Add(v2)

	expected := NewVector3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Sub(t *testing.T) {
	v1 := NewVector3(5, 7, 9)
	v2 := NewVector3(1, 2, 3)
	result := v1.Sub(v2)

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Length(t *testing.T) {
	v := NewVector3(3, 4, 0)
	if length := v.Length(); !near(length, 5) {
		t.Errorf("Length failed: expected 5, got %v", length)
	}
}

func TestVector3Distance(t *testing.T) {
	v1 := NewVector3(0, 0, 0)
	v2 := NewVector3(3, 4, 0)
	if distance := v1.Distance(v2); !near(distance, 5) {
		t.Errorf("Distance failed: expected 5, got %v", distance)
	}
}

func TestVector3Normalize(t *testing.T) {
	normalized := NewVector3(3, 4, 0).NormalizeEps(1e-6)
	if !near(normalized.Length(), 1) {
		t.Errorf("NormalizeEps failed: expected length 1, got %v", normalized.Length())
	}
}

func TestVector3NormalizeEpsDegenerate(t *testing.T) {
	v := NewVector3(1e-7, 0, 0)
	if got := v.NormalizeEps(1e-5); got != (Vector3{}) {
		t.Errorf("NormalizeEps failed: expected zero vector, got %v", got)
	}
	if got := (Vector3{}).NormalizeEps(0); got != (Vector3{}) {
		t.Errorf("NormalizeEps of zero vector: expected zero vector, got %v", got)
	}
}

func TestVector3Perp(t *testing.T) {
	v := NewVector3(1, 0, 5)
	expected := NewVector3(0, 1, 0)
	if got := v.Perp(); got != expected {
		t.Errorf("Perp failed: expected %v, got %v", expected, got)
	}
	if got := NewVector3(0, 2, 0).Perp(); got != NewVector3(-2, 0, 0) {
		t.Errorf("Perp failed: expected (-2, 0, 0), got %v", got)
	}
}
