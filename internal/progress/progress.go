// Package progress derives display statistics from the running total and the
// daily goal.
package progress

import (
	"math"

	"hydration-backend/internal/insights"
	"hydration-backend/internal/shared/util"
)

// Circumference is the radial gauge's stroke length; the offset drives its
// fill proportion.
const Circumference = 326.0

// GoalReachedTip replaces the rotating insight once the goal is met.
const GoalReachedTip = "Shift focus to steady electrolyte intake."

// View is everything the widget needs to render progress.
type View struct {
	Percent       int     `json:"percent"`
	GaugeOffset   float64 `json:"gaugeOffset"`
	TopLine       string  `json:"topLine"`
	SecondaryLine string  `json:"secondaryLine"`
	TipLine       string  `json:"tipLine"`
}

// Aggregator recomputes progress views. It reads the shared insight pointer
// but never advances it; that is the scheduler's job.
type Aggregator struct {
	Rotation *insights.Rotation
}

// NewAggregator constructs an aggregator over the given rotation.
func NewAggregator(rotation *insights.Rotation) *Aggregator {
	return &Aggregator{Rotation: rotation}
}

// Recompute folds total and goal into a fresh view. The displayed percentage
// caps at 150; the gauge fill caps at 100.
func (a *Aggregator) Recompute(total, goal float64) View {
	percent := 0
	if goal > 0 {
		percent = int(util.Clamp(math.Round(total/goal*100), 0, 150))
	}
	fill := math.Min(float64(percent), 100)
	offset := Circumference - Circumference*fill/100

	topLine := "Add more water"
	switch {
	case percent >= 100:
		topLine = "Goal achieved"
	case percent >= 70:
		topLine = "On track"
	}

	tipLine := GoalReachedTip
	if percent < 100 {
		tipLine = a.Rotation.PeekNext()
	}

	return View{
		Percent:       percent,
		GaugeOffset:   offset,
		TopLine:       topLine,
		SecondaryLine: "Logged " + util.FormatAmount(total) + " out of " + util.FormatAmount(goal) + ".",
		TipLine:       tipLine,
	}
}
