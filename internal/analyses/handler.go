package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hydration-backend/internal/analysis"
	"hydration-backend/internal/session"
	"hydration-backend/internal/shared/server/respond"
)

// Handler wires analysis HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.create)
}

type createRequest struct {
	IncludeElectrolytes bool `json:"includeElectrolytes"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}

	result, err := h.Svc.Run(c.Request.Context(), req.IncludeElectrolytes)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if result.Stale {
		// The analyzed upload was replaced mid-flight; nothing was logged.
		respond.Advisory(c, http.StatusConflict, "upload_replaced", "Photo changed during analysis. Send again.")
		return
	}

	c.Set("entryId", result.Record.ID)
	respond.JSON(c, http.StatusOK, gin.H{
		"entry":    result.Record,
		"progress": result.Progress,
		"advisory": respond.AdvisoryBody{
			Message:       "Water estimate ready",
			DismissAfterMs: respond.AdvisoryDismissMs,
		},
	})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var unavailable *analysis.ServiceUnavailableError
	var failed *analysis.FailedError

	switch {
	case errors.Is(err, session.ErrBusy):
		respond.Error(c, http.StatusConflict, "analysis_in_progress", "an analysis is already running", nil)
	case errors.Is(err, session.ErrNoPendingUpload), errors.Is(err, analysis.ErrNoFile):
		respond.Advisory(c, http.StatusUnprocessableEntity, "no_file", "Choose a photo before sending")
	case errors.As(err, &unavailable):
		respond.Advisory(c, http.StatusServiceUnavailable, "service_unavailable", unavailable.Description)
	case errors.As(err, &failed):
		respond.Advisory(c, http.StatusBadGateway, "analysis_failed", "Analysis failed. Please try again.")
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to run analysis", nil)
	}
}
