package util

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var extensionPattern = regexp.MustCompile(`\.[^.]+$`)
var separatorPattern = regexp.MustCompile(`[\-_]+`)
var whitespacePattern = regexp.MustCompile(`\s+`)

// PrettifyFileName turns an uploaded file name into a human-friendly label:
// extension stripped, dashes and underscores collapsed to spaces, words
// title-cased. Empty results fall back to "Water entry".
func PrettifyFileName(name string) string {
	s := extensionPattern.ReplaceAllString(name, "")
	s = separatorPattern.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return "Water entry"
	}
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// RoundTenth rounds to one decimal place, halves away from zero.
func RoundTenth(value float64) float64 {
	return math.Round(value*10) / 10
}

// Clamp bounds value to [min, max].
func Clamp(value, min, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}

// FormatNumber renders a fluid-ounce quantity to one decimal place, collapsing
// to an integer when the rounded value sits within 0.05 of one.
func FormatNumber(value float64) string {
	rounded := RoundTenth(value)
	if math.IsNaN(rounded) {
		return "0"
	}
	if math.Abs(rounded-math.Round(rounded)) < 0.05 {
		return fmt.Sprintf("%d", int64(math.Round(rounded)))
	}
	return fmt.Sprintf("%.1f", rounded)
}

// FormatAmount renders a quantity with its unit, e.g. "12.5 fl oz".
func FormatAmount(value float64) string {
	return FormatNumber(value) + " fl oz"
}
