package analysis

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"hydration-backend/internal/normalize"
	"hydration-backend/internal/shared/util"
	"hydration-backend/internal/vision"
)

const instruction = "Analyze the food and drink in the photo and return the estimated water content in fluid ounces. Reply with only the numeric value."

// tagLibrary is the fixed ordered label set tags are drawn from.
var tagLibrary = [7]string{"electrolytes", "greens", "citrus", "protein", "caffeine", "post workout", "recovery"}

const maxTags = 3

// electrolyteAdvice holds the fixed advisory strings selected by seed.
var electrolyteAdvice = [3]string{
	"Add 500 mg sodium",
	"Pair with potassium rich snack",
	"Blend sodium, potassium, and magnesium",
}

// ElectrolytesSkipped marks records where electrolyte advice was not requested.
const ElectrolytesSkipped = "Skipped per settings."

// Pipeline orchestrates one upload-to-record analysis cycle. It owns no
// mutable state: registration of the record is the caller's responsibility.
type Pipeline struct {
	Gate  *vision.Gate
	Model string
	Now   func() time.Time
}

// NewPipeline constructs a pipeline using the given gate and model.
func NewPipeline(gate *vision.Gate, model string) *Pipeline {
	return &Pipeline{Gate: gate, Model: model, Now: time.Now}
}

// Analyze uploads the photo, requests a numeric estimate, and assembles an
// immutable Record. One attempt per invocation; retries are the caller's call.
func (p *Pipeline) Analyze(ctx context.Context, photo Photo, includeElectrolytes bool) (Record, error) {
	if photo.Content == nil {
		return Record{}, ErrNoFile
	}

	client, err := p.Gate.Acquire()
	if err != nil {
		return Record{}, &ServiceUnavailableError{Description: p.Gate.DescribeIssue()}
	}

	now := p.now()
	seed := generateSeed(photo, now)

	uploaded, err := client.UploadImage(ctx, photo.FileName, photo.Content)
	if err != nil {
		return Record{}, &FailedError{Err: err}
	}

	resp, err := client.Complete(ctx, vision.Request{
		Model:       p.Model,
		Instruction: instruction,
		FileID:      uploaded.ID,
	})
	if err != nil {
		return Record{}, &FailedError{Err: err}
	}

	// A failed parse is a zero estimate, not a pipeline failure.
	water := normalize.ParseWater(normalize.ExtractText(resp))

	electrolytes := ElectrolytesSkipped
	if includeElectrolytes {
		idx := seed % 3
		if idx < 0 {
			idx += 3
		}
		electrolytes = electrolyteAdvice[idx]
	}

	return Record{
		ID:           ulid.Make().String(),
		Title:        util.PrettifyFileName(photo.FileName),
		WaterOz:      water,
		Electrolytes: electrolytes,
		Tags:         pickTags(seed),
		Summary:      summarizeWater(water, includeElectrolytes),
		Timestamp:    p.now(),
	}, nil
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// generateSeed derives a reproducible selector from file metadata: the last
// modification time when available, else size combined with the current
// instant, else the current instant alone.
func generateSeed(photo Photo, now time.Time) int64 {
	if !photo.LastModified.IsZero() {
		return photo.LastModified.UnixMilli()
	}
	if photo.SizeBytes > 0 {
		return now.UnixMilli() + photo.SizeBytes
	}
	return now.UnixMilli()
}

// pickTags selects at most three labels from the library, preserving library
// order.
func pickTags(seed int64) []string {
	tags := make([]string, 0, maxTags)
	for i, label := range tagLibrary {
		if len(tags) >= maxTags {
			break
		}
		if (seed+int64(i)*17)%5 == 0 {
			tags = append(tags, label)
		}
	}
	return tags
}

func summarizeWater(water float64, includeElectrolytes bool) string {
	base := "Approx " + util.FormatAmount(water) + " captured from this serving."
	if !includeElectrolytes {
		return base + " Electrolyte suggestions skipped."
	}
	if water >= 20 {
		return base + " Consider pairing with light sodium to aid absorption."
	}
	if water >= 12 {
		return base + " Add produce or a mineral mix to round out the profile."
	}
	return base + " Follow up with another 8-10 fl oz to stay on pace."
}
