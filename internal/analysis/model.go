package analysis

import (
	"io"
	"time"
)

// Record is one completed water-content analysis. Records are immutable once
// assembled; the entry log only ever evicts them, never edits them.
type Record struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	WaterOz      float64   `json:"waterOz"`
	Electrolytes string    `json:"electrolytes"`
	Tags         []string  `json:"tags"`
	Summary      string    `json:"summary"`
	Timestamp    time.Time `json:"timestamp"`
}

// Photo is the uploaded image handed to the pipeline. LastModified may be the
// zero time when the client did not supply one.
type Photo struct {
	FileName     string
	SizeBytes    int64
	LastModified time.Time
	Content      io.Reader
}
