// Package analyses drives one upload-to-result analysis cycle over the
// session's pending photo and folds the outcome into the entry log.
package analyses

import (
	"context"
	"fmt"

	"hydration-backend/internal/analysis"
	"hydration-backend/internal/entrylog"
	"hydration-backend/internal/progress"
	"hydration-backend/internal/session"
	"hydration-backend/internal/shared/metrics"
	"hydration-backend/internal/shared/storage/object"
	"hydration-backend/internal/shared/telemetry"
)

// Service runs analyses against the pending upload.
type Service struct {
	Pipeline   *analysis.Pipeline
	State      *session.State
	Store      object.ObjectStore
	Log        *entrylog.Log
	Aggregator *progress.Aggregator
}

// Result is one completed run: the new record plus the recomputed progress.
type Result struct {
	Record   analysis.Record
	Progress progress.View
	Stale    bool
}

// Run claims the pending upload, performs a single analysis attempt, and on
// success registers the record and recomputes progress. The in-flight claim
// is released in every outcome so the trigger is always re-enabled. A result
// arriving after the upload was replaced is dropped, not registered.
func (s *Service) Run(ctx context.Context, includeElectrolytes bool) (Result, error) {
	upload, err := s.State.BeginAnalysis()
	if err != nil {
		return Result{}, err
	}

	metrics.IncAnalysisStarted()
	started := metrics.NowMillis()

	record, err := s.analyzePending(ctx, upload, includeElectrolytes)
	current := s.State.FinishAnalysis(ctx, upload.PhotoID, err == nil)
	metrics.ObserveAnalysisDurationMs(metrics.NowMillis() - started)

	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis.failed", map[string]any{
			"photo_id": upload.PhotoID,
			"err":      err.Error(),
		})
		return Result{}, err
	}

	metrics.IncAnalysisCompleted()
	if !current {
		telemetry.Warn("analysis.stale_result_dropped", map[string]any{
			"photo_id": upload.PhotoID,
		})
		return Result{Record: record, Stale: true}, nil
	}

	s.Log.Register(record)
	metrics.IncEntriesRegistered()
	view := s.Aggregator.Recompute(s.Log.CurrentTotal(), s.State.DailyGoal())

	telemetry.Info("analysis.completed", map[string]any{
		"photo_id": upload.PhotoID,
		"entry_id": record.ID,
		"water_oz": record.WaterOz,
		"tags":     record.Tags,
	})

	return Result{Record: record, Progress: view}, nil
}

func (s *Service) analyzePending(ctx context.Context, upload session.Upload, includeElectrolytes bool) (analysis.Record, error) {
	content, err := s.Store.Open(ctx, upload.StorageKey)
	if err != nil {
		return analysis.Record{}, &analysis.FailedError{Err: fmt.Errorf("open stored photo: %w", err)}
	}
	defer content.Close()

	return s.Pipeline.Analyze(ctx, analysis.Photo{
		FileName:     upload.FileName,
		SizeBytes:    upload.SizeBytes,
		LastModified: upload.LastModified,
		Content:      content,
	}, includeElectrolytes)
}
