package core

import (
	"errors"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}
}

// TestParseRunID tests run ID parsing
func TestParseRunID(t *testing.T) {
	if _, err := ParseRunID("  "); err == nil {
		t.Error("Expected error for blank run ID")
	}
	id, err := ParseRunID("run-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id.String() != "run-1" {
		t.Errorf("Expected run-1, got %s", id)
	}
}

func TestHashFloatsIsBitExact(t *testing.T) {
	a := HashFloats([]float64{1, 2, 3})
	b := HashFloats([]float64{1, 2, 3})
	c := HashFloats([]float64{1, 2, 3.0000000001})
	d := HashFloats([]float64{1, 2}, []float64{3})

	if !a.Equals(b) {
		t.Error("Expected identical columns to hash identically")
	}
	if a.Equals(c) {
		t.Error("Expected different values to hash differently")
	}
	if a.Equals(d) {
		t.Error("Expected column boundaries to affect the hash")
	}
}

func TestComputeRegistryHashIgnoresMapOrder(t *testing.T) {
	one := map[string][]string{"a": {"x", "y"}, "b": {"z"}}
	two := map[string][]string{"b": {"z"}, "a": {"x", "y"}}
	if ComputeRegistryHash(one) != ComputeRegistryHash(two) {
		t.Error("Expected registry hash to be order independent")
	}
}

func TestErrorHelpers(t *testing.T) {
	err := NewNotFoundError(ErrModelNotFound, "ols")
	if !IsNotFoundError(err) || !errors.Is(err, ErrModelNotFound) {
		t.Errorf("Expected lookup error, got %v", err)
	}
	if !IsShapeError(NewShapeError("target", 3, 2)) {
		t.Error("Expected shape error")
	}
	if !IsNumericalError(NewDegenerateError("shapiro-wilk", "constant sample")) {
		t.Error("Expected numerical error")
	}
	if !IsNumericalError(NewInsufficientDataError("dagostino", 3, 8)) {
		t.Error("Expected insufficient data to count as numerical error")
	}
}
