package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var fractionDenominators = []int{1, 2, 4, 8, 16, 32}

// ToFraction formats inches as a woodworking mixed fraction rounded to the
// nearest 1/32, e.g. 23.5 -> "23 1/2".
func ToFraction(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}

	sign := ""
	if v < 0 {
		sign = "-"
	}
	abs := math.Abs(v)
	whole := math.Floor(abs)
	dec := abs - whole

	bestN, bestD, bestErr := 0, 1, dec
	for _, den := range fractionDenominators {
		n := int(math.Round(dec * float64(den)))
		err := math.Abs(dec - float64(n)/float64(den))
		if err < bestErr {
			bestN, bestD, bestErr = n, den, err
		}
	}
	if bestN == bestD {
		whole++
		bestN = 0
	}

	switch {
	case bestN == 0:
		if whole == 0 {
			return "0"
		}
		return fmt.Sprintf("%s%.0f", sign, whole)
	case whole == 0:
		return fmt.Sprintf("%s%d/%d", sign, bestN, bestD)
	default:
		return fmt.Sprintf("%s%.0f %d/%d", sign, whole, bestN, bestD)
	}
}

// ParseFraction parses "23 1/2", "3/4", "23-1/2", "1.25" or "12\"" into inches.
func ParseFraction(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), `"`))
	if s == "" {
		return 0, fmt.Errorf("empty dimension")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(s[1:])
	}
	s = strings.Replace(s, "-", " ", 1)

	var total float64
	for _, field := range strings.Fields(s) {
		if num, den, ok := strings.Cut(field, "/"); ok {
			n, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid numerator %q: %w", num, err)
			}
			d, err := strconv.ParseFloat(den, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid denominator %q: %w", den, err)
			}
			if d == 0 {
				return 0, fmt.Errorf("zero denominator in %q", field)
			}
			total += n / d
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q: %w", field, err)
		}
		total += v
	}

	if neg {
		total = -total
	}
	return total, nil
}
