// Package photos accepts the food/drink photo uploads that feed the
// analysis pipeline.
package photos

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hydration-backend/internal/session"
	"hydration-backend/internal/shared/metrics"
	"hydration-backend/internal/shared/server/respond"
	"hydration-backend/internal/shared/storage/object"
	"hydration-backend/internal/shared/telemetry"
	"hydration-backend/internal/shared/util"
)

// MaxUploadBytes caps accepted photos at 15 MB.
const MaxUploadBytes = 15 << 20

// Handler wires photo upload HTTP handlers to session state and storage.
type Handler struct {
	State *session.State
	Store object.ObjectStore
}

// NewHandler constructs a Handler.
func NewHandler(state *session.State, store object.ObjectStore) *Handler {
	return &Handler{State: state, Store: store}
}

// RegisterRoutes attaches photo routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/photos", h.upload)
	rg.GET("/photos/:id/preview", h.preview)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes+(1<<20))

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		metrics.IncUploadRejected()
		respond.Advisory(c, http.StatusBadRequest, "validation_error", "Please choose an image file")
		return
	}

	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		metrics.IncUploadRejected()
		respond.Advisory(c, http.StatusBadRequest, "invalid_file_type", "Please choose an image file")
		return
	}
	if fileHeader.Size > MaxUploadBytes {
		metrics.IncUploadRejected()
		respond.Advisory(c, http.StatusRequestEntityTooLarge, "file_too_large", "Image must be under 15 MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	storageKey, size, mimeType, err := h.Store.Save(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store photo", nil)
		return
	}

	// The multipart header is client-supplied; the sniffed type is the one
	// that counts.
	if !strings.HasPrefix(mimeType, "image/") {
		_ = h.Store.Delete(c.Request.Context(), storageKey)
		metrics.IncUploadRejected()
		respond.Advisory(c, http.StatusBadRequest, "invalid_file_type", "Please choose an image file")
		return
	}

	upload := session.Upload{
		PhotoID:      uuid.NewString(),
		FileName:     fileHeader.Filename,
		Title:        util.PrettifyFileName(fileHeader.Filename),
		StorageKey:   storageKey,
		MimeType:     mimeType,
		SizeBytes:    size,
		LastModified: parseLastModified(c.PostForm("lastModified")),
		UploadedAt:   time.Now().UTC(),
	}
	h.State.SetPending(c.Request.Context(), upload)

	c.Set("photoId", upload.PhotoID)
	telemetry.Info("photo.queued", map[string]any{
		"photo_id":   upload.PhotoID,
		"size_bytes": size,
		"mime_type":  mimeType,
		"request_id": c.GetString("requestId"),
	})

	respond.JSON(c, http.StatusCreated, gin.H{
		"photoId":    upload.PhotoID,
		"title":      upload.Title,
		"previewUrl": "/api/v1/photos/" + upload.PhotoID + "/preview",
		"sizeBytes":  size,
		"queuedAt":   upload.UploadedAt,
	})
}

func (h *Handler) preview(c *gin.Context) {
	pending, ok := h.State.Pending()
	if !ok || pending.PhotoID != c.Param("id") {
		respond.Error(c, http.StatusNotFound, "not_found", "photo not found", nil)
		return
	}

	rc, err := h.Store.Open(c.Request.Context(), pending.StorageKey)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "photo not found", nil)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, pending.SizeBytes, pending.MimeType, rc, nil)
}

// parseLastModified reads the widget-supplied modification time in unix
// milliseconds; zero when absent or malformed.
func parseLastModified(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || millis <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(millis)
}
