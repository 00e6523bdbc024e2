// Package normalize turns the completion service's free-form responses into
// bounded numeric water estimates.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"hydration-backend/internal/vision"
)

// extractor is one strategy for pulling plain text out of a response shape.
// Strategies are tried in priority order; the first non-empty trimmed result
// wins.
type extractor func(vision.Response) (string, bool)

var extractors = []extractor{
	fromOutputText,
	fromOutputMessages,
	fromDataItems,
	fromChatChoices,
}

// ExtractText returns the first non-empty text fragment found in the
// response. An empty string is a valid outcome, not an error: it means the
// service produced no usable text.
func ExtractText(resp vision.Response) string {
	for _, extract := range extractors {
		if text, ok := extract(resp); ok {
			return text
		}
	}
	return ""
}

func fromOutputText(resp vision.Response) (string, bool) {
	if text := strings.TrimSpace(resp.OutputText); text != "" {
		return text, true
	}
	return "", false
}

func fromOutputMessages(resp vision.Response) (string, bool) {
	for _, message := range resp.Output {
		for _, part := range message.Content {
			if text := strings.TrimSpace(part.Text); text != "" {
				return text, true
			}
		}
	}
	return "", false
}

func fromDataItems(resp vision.Response) (string, bool) {
	for _, item := range resp.Data {
		for _, part := range item.Content {
			if text := strings.TrimSpace(part.Text); text != "" {
				return text, true
			}
		}
		if text := strings.TrimSpace(item.Text); text != "" {
			return text, true
		}
	}
	return "", false
}

func fromChatChoices(resp vision.Response) (string, bool) {
	if len(resp.Choices) == 0 {
		return "", false
	}
	if text := strings.TrimSpace(resp.Choices[0].Message.Content); text != "" {
		return text, true
	}
	return "", false
}

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// ParseWater extracts a fluid-ounce quantity from free-form text. A missing
// or unparseable number degrades to 0; the result is clamped to >= 0 and
// rounded to one decimal place. It never fails.
func ParseWater(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	match := numberPattern.FindString(text)
	if match == "" {
		return 0
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	if value < 0 {
		value = 0
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0
	}
	return math.Round(value*10) / 10
}
