package utils

import (
	"math"
	"strings"
)

// RoundToInt rounds half away from zero, e.g. 2.5 -> 3, -2.5 -> -3
func RoundToInt(value float64) int {
	return int(math.Round(value))
}

// NormalizeCity trims the input and collapses inner whitespace runs
func NormalizeCity(city string) string {
	return strings.Join(strings.Fields(city), " ")
}
