// Package hydration serves the widget's read models and goal actions: the
// entry log, progress view, insight rotation, and intake calculator.
package hydration

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hydration-backend/internal/entrylog"
	"hydration-backend/internal/insights"
	"hydration-backend/internal/intake"
	"hydration-backend/internal/progress"
	"hydration-backend/internal/session"
	"hydration-backend/internal/shared/server/respond"
	"hydration-backend/internal/shared/util"
)

// Handler exposes session read models and goal actions.
type Handler struct {
	State      *session.State
	Log        *entrylog.Log
	Aggregator *progress.Aggregator
	Rotation   *insights.Rotation
}

// NewHandler constructs a Handler.
func NewHandler(state *session.State, log *entrylog.Log, aggregator *progress.Aggregator, rotation *insights.Rotation) *Handler {
	return &Handler{State: state, Log: log, Aggregator: aggregator, Rotation: rotation}
}

// RegisterRoutes attaches hydration routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/entries", h.entries)
	rg.GET("/progress", h.progress)
	rg.GET("/insights", h.insights)
	rg.GET("/goal", h.goal)
	rg.POST("/goal/apply", h.applyGoal)
	rg.POST("/intake/calculate", h.calculate)
}

func (h *Handler) entries(c *gin.Context) {
	entries := h.Log.Entries()
	respond.OK(c, gin.H{
		"entries":  entries,
		"count":    len(entries),
		"totalOz":  h.Log.CurrentTotal(),
		"capacity": entrylog.Capacity,
	})
}

func (h *Handler) progress(c *gin.Context) {
	view := h.Aggregator.Recompute(h.Log.CurrentTotal(), h.State.DailyGoal())
	respond.OK(c, view)
}

func (h *Handler) insights(c *gin.Context) {
	current, next := h.Rotation.Current()
	respond.OK(c, gin.H{
		"current": current,
		"next":    next,
	})
}

func (h *Handler) goal(c *gin.Context) {
	payload := gin.H{"dailyGoalOz": h.State.DailyGoal()}
	if result, ok := h.State.LastCalculated(); ok {
		payload["lastCalculated"] = result
	}
	respond.OK(c, payload)
}

type calculateRequest struct {
	WeightLb      float64 `json:"weightLb"`
	HeightFt      float64 `json:"heightFt"`
	HeightIn      float64 `json:"heightIn"`
	ActivityOz    float64 `json:"activityOz"`
	ClimateOz     float64 `json:"climateOz"`
	ActivityLabel string  `json:"activityLabel"`
	ClimateLabel  string  `json:"climateLabel"`
}

func (h *Handler) calculate(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := intake.Compute(intake.Input{
		WeightLb:      req.WeightLb,
		HeightFt:      req.HeightFt,
		HeightIn:      req.HeightIn,
		ActivityOz:    req.ActivityOz,
		ClimateOz:     req.ClimateOz,
		ActivityLabel: req.ActivityLabel,
		ClimateLabel:  req.ClimateLabel,
	})
	if err != nil {
		if errors.Is(err, intake.ErrInvalidWeight) {
			respond.Advisory(c, http.StatusBadRequest, "invalid_weight", "Enter your weight to calculate a target")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to calculate intake", nil)
		return
	}

	h.State.SetCalculated(result)
	respond.OK(c, gin.H{
		"recommendedOz": result.RecommendedOz,
		"note":          result.Note,
		"advisory": respond.AdvisoryBody{
			Message:       "Calculator updated",
			DismissAfterMs: respond.AdvisoryDismissMs,
		},
	})
}

func (h *Handler) applyGoal(c *gin.Context) {
	goal, err := h.State.ApplyCalculatedGoal()
	if err != nil {
		if errors.Is(err, session.ErrNoCalculatedTarget) {
			respond.Advisory(c, http.StatusConflict, "no_calculated_target", "Run the calculator first")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to apply goal", nil)
		return
	}

	view := h.Aggregator.Recompute(h.Log.CurrentTotal(), goal)
	respond.OK(c, gin.H{
		"dailyGoalOz": goal,
		"progress":    view,
		"advisory": respond.AdvisoryBody{
			Message:       "Daily goal updated to " + util.FormatAmount(goal),
			DismissAfterMs: respond.AdvisoryDismissMs,
		},
	})
}
