package config

import (
	"cmp"
	"fmt"
)

// Positive rejects zero and negative values.
func Positive[T cmp.Ordered](v T) error {
	var zero T
	if v <= zero {
		return fmt.Errorf("must be positive, got %v", v)
	}
	return nil
}

// InRange checks lo <= v <= hi.
func InRange[T cmp.Ordered](v, lo, hi T) error {
	if lo > hi {
		return fmt.Errorf("invalid range [%v, %v]", lo, hi)
	}
	if v < lo || v > hi {
		return fmt.Errorf("must be within [%v, %v], got %v", lo, hi, v)
	}
	return nil
}
