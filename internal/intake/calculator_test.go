package intake

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestComputeBaselineHeight(t *testing.T) {
	// Height is exactly 65 inches: no adjustment, base = 160 * 0.5 = 80.
	result, err := Compute(Input{WeightLb: 160, HeightFt: 5, HeightIn: 5})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.RecommendedOz != 80 {
		t.Fatalf("expected 80, got %v", result.RecommendedOz)
	}
}

func TestComputeTallAdjustment(t *testing.T) {
	// 72 inches: base 90 + (72-65)*0.4 = 92.8.
	result, err := Compute(Input{WeightLb: 180, HeightFt: 6, HeightIn: 0})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.RecommendedOz != 92.8 {
		t.Fatalf("expected 92.8, got %v", result.RecommendedOz)
	}
}

func TestComputeShortAdjustment(t *testing.T) {
	// 60 inches: base 70 + (60-65)*0.3 = 68.5.
	result, err := Compute(Input{WeightLb: 140, HeightFt: 5, HeightIn: 0})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.RecommendedOz != 68.5 {
		t.Fatalf("expected 68.5, got %v", result.RecommendedOz)
	}
}

func TestComputeActivityAndClimate(t *testing.T) {
	result, err := Compute(Input{WeightLb: 160, HeightFt: 5, HeightIn: 5, ActivityOz: 16, ClimateOz: 8})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.RecommendedOz != 104 {
		t.Fatalf("expected 104, got %v", result.RecommendedOz)
	}
}

func TestComputeClampsToFloor(t *testing.T) {
	// 100 lb at 60 inches: 50 - 1.5 = 48.5, clamped up to 64.
	result, err := Compute(Input{WeightLb: 100, HeightFt: 5, HeightIn: 0})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.RecommendedOz != 64 {
		t.Fatalf("expected floor 64, got %v", result.RecommendedOz)
	}
}

func TestComputeClampsToCeiling(t *testing.T) {
	result, err := Compute(Input{WeightLb: 400, HeightFt: 7, HeightIn: 0, ActivityOz: 30, ClimateOz: 20})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.RecommendedOz != 180 {
		t.Fatalf("expected ceiling 180, got %v", result.RecommendedOz)
	}
}

func TestComputeHeightClamps(t *testing.T) {
	// Missing height clamps to the 48-inch floor, not zero.
	result, err := Compute(Input{WeightLb: 160})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	// base 80 + (48-65)*0.3 = 74.9.
	if result.RecommendedOz != 74.9 {
		t.Fatalf("expected 74.9, got %v", result.RecommendedOz)
	}

	// Nine feet clamps to the 84-inch ceiling.
	result, err = Compute(Input{WeightLb: 160, HeightFt: 9})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	// base 80 + (84-65)*0.4 = 87.6.
	if result.RecommendedOz != 87.6 {
		t.Fatalf("expected 87.6, got %v", result.RecommendedOz)
	}
}

func TestComputeInvalidWeight(t *testing.T) {
	for _, weight := range []float64{0, -10, math.NaN()} {
		if _, err := Compute(Input{WeightLb: weight, HeightFt: 5, HeightIn: 5}); !errors.Is(err, ErrInvalidWeight) {
			t.Fatalf("weight %v: expected ErrInvalidWeight, got %v", weight, err)
		}
	}
}

func TestComputeNote(t *testing.T) {
	result, err := Compute(Input{
		WeightLb:      160,
		HeightFt:      5,
		HeightIn:      5,
		ActivityOz:    16,
		ClimateOz:     0,
		ActivityLabel: "Heavy training",
		ClimateLabel:  "Temperate",
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	want := "Weight 160 lb | 5 ft 5 in | Heavy training | Temperate"
	if result.Note != want {
		t.Fatalf("unexpected note %q, want %q", result.Note, want)
	}
}

func TestComputeNoteDefaultsLabels(t *testing.T) {
	result, err := Compute(Input{WeightLb: 160, HeightFt: 5, HeightIn: 5, ActivityOz: 12})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !strings.Contains(result.Note, "Activity +12 fl oz") {
		t.Fatalf("expected default activity label in note, got %q", result.Note)
	}
}
