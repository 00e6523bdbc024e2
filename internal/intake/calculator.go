// Package intake computes a recommended daily fluid target from body,
// activity, and climate inputs.
package intake

import (
	"errors"
	"fmt"
	"math"

	"hydration-backend/internal/shared/util"
)

// ErrInvalidWeight indicates the weight input was missing or non-positive.
// Callers surface it as an advisory prompt, not a crash.
var ErrInvalidWeight = errors.New("enter your weight to calculate a target")

const (
	minHeightIn = 48
	maxHeightIn = 84
	baselineIn  = 65
	minTargetOz = 64
	maxTargetOz = 180
)

// Input carries the calculator fields. The labels are optional display text
// for the note line; when absent the numeric adjustments are described
// instead.
type Input struct {
	WeightLb      float64
	HeightFt      float64
	HeightIn      float64
	ActivityOz    float64
	ClimateOz     float64
	ActivityLabel string
	ClimateLabel  string
}

// Result is the computed recommendation plus a one-line summary of the
// inputs that produced it.
type Result struct {
	RecommendedOz float64 `json:"recommendedOz"`
	Note          string  `json:"note"`
}

// Compute maps the inputs to a bounded daily fluid-ounce target. It is a
// pure function of its input.
func Compute(in Input) (Result, error) {
	if in.WeightLb <= 0 || math.IsNaN(in.WeightLb) {
		return Result{}, ErrInvalidWeight
	}

	totalInches := util.Clamp(nonNaN(in.HeightFt)*12+nonNaN(in.HeightIn), minHeightIn, maxHeightIn)
	effectiveHeight := totalInches
	if effectiveHeight == 0 {
		effectiveHeight = baselineIn
	}

	base := in.WeightLb * 0.5
	heightAdjustment := 0.0
	if effectiveHeight > baselineIn {
		heightAdjustment = (effectiveHeight - baselineIn) * 0.4
	} else if effectiveHeight < baselineIn {
		heightAdjustment = (effectiveHeight - baselineIn) * 0.3
	}

	total := base + heightAdjustment + nonNaN(in.ActivityOz) + nonNaN(in.ClimateOz)
	total = util.Clamp(total, minTargetOz, maxTargetOz)

	return Result{
		RecommendedOz: util.RoundTenth(total),
		Note:          buildNote(in, effectiveHeight),
	}, nil
}

func buildNote(in Input, heightIn float64) string {
	feet := math.Floor(heightIn / 12)
	inches := math.Round(math.Mod(heightIn, 12))
	heightDescriptor := fmt.Sprintf("%.0f ft %.0f in", feet, inches)
	if heightIn == 0 {
		heightDescriptor = "assumed 5 ft 5 in"
	}

	activity := in.ActivityLabel
	if activity == "" {
		activity = fmt.Sprintf("Activity +%s", util.FormatAmount(nonNaN(in.ActivityOz)))
	}
	climate := in.ClimateLabel
	if climate == "" {
		climate = fmt.Sprintf("Climate +%s", util.FormatAmount(nonNaN(in.ClimateOz)))
	}

	return fmt.Sprintf("Weight %.0f lb | %s | %s | %s", math.Round(in.WeightLb), heightDescriptor, activity, climate)
}

func nonNaN(value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}
	return value
}
