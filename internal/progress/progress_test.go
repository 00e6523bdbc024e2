package progress

import (
	"math"
	"testing"

	"hydration-backend/internal/insights"
)

func newAggregator() *Aggregator {
	return NewAggregator(insights.NewRotation())
}

func TestRecomputeGoalAchieved(t *testing.T) {
	view := newAggregator().Recompute(110, 110)
	if view.Percent != 100 {
		t.Fatalf("expected percent 100, got %d", view.Percent)
	}
	if view.TopLine != "Goal achieved" {
		t.Fatalf("expected Goal achieved, got %q", view.TopLine)
	}
	if view.GaugeOffset != 0 {
		t.Fatalf("expected full gauge, got offset %v", view.GaugeOffset)
	}
	if view.TipLine != GoalReachedTip {
		t.Fatalf("expected goal-reached tip, got %q", view.TipLine)
	}
}

func TestRecomputeOnTrack(t *testing.T) {
	view := newAggregator().Recompute(77, 110)
	if view.Percent != 70 {
		t.Fatalf("expected percent 70, got %d", view.Percent)
	}
	if view.TopLine != "On track" {
		t.Fatalf("expected On track, got %q", view.TopLine)
	}
}

func TestRecomputeAddMoreWater(t *testing.T) {
	view := newAggregator().Recompute(50, 110)
	if view.Percent != 45 {
		t.Fatalf("expected percent 45, got %d", view.Percent)
	}
	if view.TopLine != "Add more water" {
		t.Fatalf("expected Add more water, got %q", view.TopLine)
	}
	if view.SecondaryLine != "Logged 50 fl oz out of 110 fl oz." {
		t.Fatalf("unexpected secondary line %q", view.SecondaryLine)
	}
}

func TestRecomputePercentCapsAt150(t *testing.T) {
	view := newAggregator().Recompute(400, 110)
	if view.Percent != 150 {
		t.Fatalf("expected percent capped at 150, got %d", view.Percent)
	}
	// Gauge fill still caps at 100.
	if view.GaugeOffset != 0 {
		t.Fatalf("expected full gauge, got offset %v", view.GaugeOffset)
	}
}

func TestRecomputeGaugeOffsetGeometry(t *testing.T) {
	view := newAggregator().Recompute(55, 110)
	want := Circumference - Circumference*50/100
	if math.Abs(view.GaugeOffset-want) > 1e-9 {
		t.Fatalf("expected offset %v, got %v", want, view.GaugeOffset)
	}
}

func TestRecomputeZeroGoal(t *testing.T) {
	view := newAggregator().Recompute(50, 0)
	if view.Percent != 0 {
		t.Fatalf("expected percent 0 for zero goal, got %d", view.Percent)
	}
}

func TestTipLineFollowsRotationPointer(t *testing.T) {
	rotation := insights.NewRotation()
	agg := NewAggregator(rotation)
	all := insights.Messages()

	view := agg.Recompute(10, 110)
	if view.TipLine != all[1] {
		t.Fatalf("expected next insight %q, got %q", all[1], view.TipLine)
	}

	rotation.Advance()
	view = agg.Recompute(10, 110)
	if view.TipLine != all[2] {
		t.Fatalf("expected next insight after advance %q, got %q", all[2], view.TipLine)
	}
}
