package utils

import (
	"math"
	"strconv"
	"strings"
)

// PriceEpsilon is the smallest difference between two prices that counts as a change
const PriceEpsilon = 0.001

// ParseAmount parses a user-entered amount such as "45000", "1,250.5" or "-20".
// Surrounding spaces are ignored. Commas are accepted only as thousands separators
// in groups of three digits, so a decimal comma like "1,5" is rejected.
// ok is false for empty, malformed or non-finite input.
func ParseAmount(s string) (value float64, ok bool) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		if !validThousands(s) {
			return 0, false
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// validThousands checks the comma grouping of the integer part of s
func validThousands(s string) bool {
	whole, frac, _ := strings.Cut(strings.TrimLeft(s, "+-"), ".")
	if strings.Contains(frac, ",") {
		return false
	}
	groups := strings.Split(whole, ",")
	if n := len(groups[0]); n < 1 || n > 3 {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}

// AmountOrZero parses s and falls back to 0
func AmountOrZero(s string) float64 {
	v, _ := ParseAmount(s)
	return v
}

// FormatAmount renders a price the way it is written back into a form field
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PriceDiffers reports whether a and b differ by more than PriceEpsilon
func PriceDiffers(a, b float64) bool {
	return math.Abs(a-b) > PriceEpsilon
}

// RoundMoney rounds to two decimal places
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
