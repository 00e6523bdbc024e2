package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"hydration-backend/internal/vision"
)

type fakeClient struct {
	uploadErr   error
	completeErr error
	response    vision.Response
	lastRequest vision.Request
	uploads     int
}

func (f *fakeClient) UploadImage(ctx context.Context, fileName string, r io.Reader) (vision.FileRef, error) {
	f.uploads++
	if f.uploadErr != nil {
		return vision.FileRef{}, f.uploadErr
	}
	_, _ = io.Copy(io.Discard, r)
	return vision.FileRef{ID: "file-test"}, nil
}

func (f *fakeClient) Complete(ctx context.Context, req vision.Request) (vision.Response, error) {
	f.lastRequest = req
	if f.completeErr != nil {
		return vision.Response{}, f.completeErr
	}
	return f.response, nil
}

func newTestPipeline(client *fakeClient) *Pipeline {
	gate := vision.NewGate(func(key string) (vision.Client, error) {
		return client, nil
	}, "sk-test")
	p := NewPipeline(gate, "gpt-4.1-mini")
	p.Now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	return p
}

func testPhoto(lastModified time.Time) Photo {
	return Photo{
		FileName:     "green-smoothie.png",
		SizeBytes:    2048,
		LastModified: lastModified,
		Content:      strings.NewReader("fake image bytes"),
	}
}

func TestAnalyzeHappyPath(t *testing.T) {
	client := &fakeClient{response: vision.Response{OutputText: "Approximately 14.7 oz"}}
	p := newTestPipeline(client)

	rec, err := p.Analyze(context.Background(), testPhoto(time.UnixMilli(1700000000000)), false)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if rec.WaterOz != 14.7 {
		t.Fatalf("expected water 14.7, got %v", rec.WaterOz)
	}
	if rec.Title != "Green Smoothie" {
		t.Fatalf("expected prettified title, got %q", rec.Title)
	}
	if rec.Electrolytes != ElectrolytesSkipped {
		t.Fatalf("expected skipped electrolytes, got %q", rec.Electrolytes)
	}
	if rec.Timestamp.IsZero() {
		t.Fatalf("expected timestamp to be set")
	}
	if rec.ID == "" {
		t.Fatalf("expected record ID")
	}
	if len(rec.Tags) > 3 {
		t.Fatalf("expected at most 3 tags, got %d", len(rec.Tags))
	}
	for _, tag := range rec.Tags {
		found := false
		for _, label := range tagLibrary {
			if tag == label {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("tag %q not drawn from the library", tag)
		}
	}
	if client.lastRequest.Model != "gpt-4.1-mini" {
		t.Fatalf("expected model on request, got %q", client.lastRequest.Model)
	}
	if client.lastRequest.FileID != "file-test" {
		t.Fatalf("expected uploaded file reference, got %q", client.lastRequest.FileID)
	}
	if !strings.Contains(client.lastRequest.Instruction, "only the numeric value") {
		t.Fatalf("expected numeric-only instruction, got %q", client.lastRequest.Instruction)
	}
}

func TestAnalyzeNoFile(t *testing.T) {
	p := newTestPipeline(&fakeClient{})
	_, err := p.Analyze(context.Background(), Photo{FileName: "x.png"}, false)
	if !errors.Is(err, ErrNoFile) {
		t.Fatalf("expected ErrNoFile, got %v", err)
	}
}

func TestAnalyzeGateUnavailable(t *testing.T) {
	gate := vision.NewGate(nil, "sk-test")
	p := NewPipeline(gate, "gpt-4.1-mini")

	_, err := p.Analyze(context.Background(), testPhoto(time.Now()), false)
	var unavailable *ServiceUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ServiceUnavailableError, got %v", err)
	}
	if unavailable.Description != "OpenAI client library not loaded" {
		t.Fatalf("expected gate description, got %q", unavailable.Description)
	}
}

func TestAnalyzeUploadFailure(t *testing.T) {
	client := &fakeClient{uploadErr: fmt.Errorf("connection reset")}
	p := newTestPipeline(client)

	_, err := p.Analyze(context.Background(), testPhoto(time.Now()), false)
	var failed *FailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected FailedError, got %v", err)
	}
}

func TestAnalyzeCompleteFailure(t *testing.T) {
	client := &fakeClient{completeErr: fmt.Errorf("502 bad gateway")}
	p := newTestPipeline(client)

	_, err := p.Analyze(context.Background(), testPhoto(time.Now()), false)
	var failed *FailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected FailedError, got %v", err)
	}
}

func TestAnalyzeUnparsableResponseIsZeroEstimate(t *testing.T) {
	client := &fakeClient{response: vision.Response{OutputText: "I cannot tell from this photo."}}
	p := newTestPipeline(client)

	rec, err := p.Analyze(context.Background(), testPhoto(time.Now()), false)
	if err != nil {
		t.Fatalf("expected degraded success, got %v", err)
	}
	if rec.WaterOz != 0 {
		t.Fatalf("expected zero estimate, got %v", rec.WaterOz)
	}
}

func TestTagSelectionDeterministic(t *testing.T) {
	// seed 1700000000000: (seed+i*17)%5 == 0 picks library indices where the
	// offset lands on a multiple of five.
	first := pickTags(1700000000000)
	second := pickTags(1700000000000)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected deterministic tags, got %v then %v", first, second)
	}
	if len(first) > 3 {
		t.Fatalf("expected at most 3 tags, got %d", len(first))
	}
}

func TestPickTagsKnownSeed(t *testing.T) {
	// seed 0: indices 0..6 give offsets 0,17,34,51,68,85,102; multiples of 5
	// land on 0, 85 -> "electrolytes", "caffeine".
	got := pickTags(0)
	want := []string{"electrolytes", "caffeine"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("pickTags(0) = %v, want %v", got, want)
	}
}

func TestElectrolyteAdviceBySeed(t *testing.T) {
	client := &fakeClient{response: vision.Response{OutputText: "10"}}
	p := newTestPipeline(client)

	for seedOffset, want := range map[int64]string{
		0: "Add 500 mg sodium",
		1: "Pair with potassium rich snack",
		2: "Blend sodium, potassium, and magnesium",
	} {
		photo := testPhoto(time.UnixMilli(3*1000 + seedOffset))
		photo.Content = strings.NewReader("bytes")
		rec, err := p.Analyze(context.Background(), photo, true)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if rec.Electrolytes != want {
			t.Fatalf("seed offset %d: expected %q, got %q", seedOffset, want, rec.Electrolytes)
		}
	}
}

func TestSummarizeWaterThresholds(t *testing.T) {
	tests := []struct {
		name                string
		water               float64
		includeElectrolytes bool
		wantSuffix          string
	}{
		{name: "skipped", water: 10, includeElectrolytes: false, wantSuffix: "Electrolyte suggestions skipped."},
		{name: "high volume", water: 20, includeElectrolytes: true, wantSuffix: "Consider pairing with light sodium to aid absorption."},
		{name: "medium volume", water: 12, includeElectrolytes: true, wantSuffix: "Add produce or a mineral mix to round out the profile."},
		{name: "low volume", water: 8, includeElectrolytes: true, wantSuffix: "Follow up with another 8-10 fl oz to stay on pace."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := summarizeWater(tt.water, tt.includeElectrolytes)
			if !strings.HasSuffix(got, tt.wantSuffix) {
				t.Fatalf("summarizeWater(%v, %v) = %q, want suffix %q", tt.water, tt.includeElectrolytes, got, tt.wantSuffix)
			}
			if !strings.HasPrefix(got, "Approx ") {
				t.Fatalf("expected Approx prefix, got %q", got)
			}
		})
	}
}

func TestGenerateSeedFallbacks(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	modified := time.UnixMilli(1700000000000)

	if got := generateSeed(Photo{LastModified: modified, SizeBytes: 10}, now); got != 1700000000000 {
		t.Fatalf("expected last-modified seed, got %d", got)
	}
	if got := generateSeed(Photo{SizeBytes: 10}, now); got != now.UnixMilli()+10 {
		t.Fatalf("expected size+now seed, got %d", got)
	}
	if got := generateSeed(Photo{}, now); got != now.UnixMilli() {
		t.Fatalf("expected now seed, got %d", got)
	}
}
