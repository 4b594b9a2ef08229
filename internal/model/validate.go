package model

import (
	"errors"
	"fmt"
)

// ValidateCuts checks that every cut has positive dimensions and quantity.
// The optimizer itself does not validate its input.
func ValidateCuts(cuts []Cut) error {
	var errs []error
	for i, c := range cuts {
		name := c.Label
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		if c.Length <= 0 || c.Width <= 0 {
			errs = append(errs, fmt.Errorf("cut %s: dimensions must be positive (got %gx%g)", name, c.Length, c.Width))
		}
		if c.Quantity < 1 {
			errs = append(errs, fmt.Errorf("cut %s: quantity must be at least 1 (got %d)", name, c.Quantity))
		}
	}
	return errors.Join(errs...)
}

// ValidateStocks checks that every stock has positive dimensions and quantity.
func ValidateStocks(stocks []Stock) error {
	var errs []error
	for i, s := range stocks {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		if s.Length <= 0 || s.Width <= 0 {
			errs = append(errs, fmt.Errorf("stock %s: dimensions must be positive (got %gx%g)", name, s.Length, s.Width))
		}
		if s.Quantity < 1 {
			errs = append(errs, fmt.Errorf("stock %s: quantity must be at least 1 (got %d)", name, s.Quantity))
		}
	}
	return errors.Join(errs...)
}

// ValidateKerf rejects negative blade widths.
func ValidateKerf(kerf float64) error {
	if kerf < 0 {
		return fmt.Errorf("kerf must not be negative (got %g)", kerf)
	}
	return nil
}
