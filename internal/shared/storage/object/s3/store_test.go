package s3

import (
	"context"
	"testing"
)

func TestApplyPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "abc_photo.png", want: "abc_photo.png"},
		{name: "with prefix", prefix: "previews", key: "abc_photo.png", want: "previews/abc_photo.png"},
		{name: "slashes trimmed", prefix: "/previews/", key: "/abc_photo.png", want: "previews/abc_photo.png"},
		{name: "empty key", prefix: "previews", key: "", want: "previews"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), "us-east-1", "", ""); err == nil {
		t.Fatalf("expected error for missing bucket")
	}
}
