package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hydration-backend/internal/analyses"
	"hydration-backend/internal/analysis"
	"hydration-backend/internal/entrylog"
	"hydration-backend/internal/hydration"
	"hydration-backend/internal/insights"
	"hydration-backend/internal/photos"
	"hydration-backend/internal/progress"
	"hydration-backend/internal/session"
	"hydration-backend/internal/shared/config"
	"hydration-backend/internal/shared/metrics"
	"hydration-backend/internal/shared/server/middleware"
	"hydration-backend/internal/shared/server/respond"
	"hydration-backend/internal/shared/storage/object"
	localstore "hydration-backend/internal/shared/storage/object/local"
	s3store "hydration-backend/internal/shared/storage/object/s3"
	"hydration-backend/internal/vision"
	"hydration-backend/internal/vision/openai"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	store := newObjectStore(cfg)
	gate := vision.NewGate(func(apiKey string) (vision.Client, error) {
		return openai.NewClient(apiKey)
	}, cfg.OpenAIAPIKey)

	state := session.NewState(store, cfg.DailyGoalOz)
	entryLog := entrylog.New()
	rotation := insights.NewRotation()
	rotation.Start(nil)
	aggregator := progress.NewAggregator(rotation)

	analysisSvc := &analyses.Service{
		Pipeline:   analysis.NewPipeline(gate, cfg.VisionModel),
		State:      state,
		Store:      store,
		Log:        entryLog,
		Aggregator: aggregator,
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	photos.NewHandler(state, store).RegisterRoutes(api)
	analyses.NewHandler(analysisSvc).RegisterRoutes(api)
	hydration.NewHandler(state, entryLog, aggregator, rotation).RegisterRoutes(api)

	r.GET("/metrics", metrics.Handler())

	return r
}

func newObjectStore(cfg config.Config) object.ObjectStore {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			log.Printf("failed to init s3 store, falling back to local: %v", err)
		} else {
			return store
		}
	}
	return localstore.New(cfg.LocalStoreDir)
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
