package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatCount abbreviates counts strictly above 1000 as thousands ("43.2K").
// There is no M/B tier. Halves round away from zero, like FormatScore.
func FormatCount(n int) string {
	if n > 1000 {
		return strconv.FormatFloat(roundTo(float64(n)/1000, 1), 'f', 1, 64) + "K"
	}
	return strconv.Itoa(n)
}

func FormatScore(score float64) string {
	return strconv.FormatFloat(roundTo(score, 1), 'f', 1, 64)
}

// FormatScoreString accepts scores stored as decimal strings.
func FormatScoreString(raw string) (string, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", &ValidationError{Field: "score", Reason: fmt.Sprintf("%q is not a number", raw)}
	}
	return FormatScore(v), nil
}

func FormatPercent(n int) string {
	return strconv.Itoa(n) + "%"
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
