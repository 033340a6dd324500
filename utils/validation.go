package utils

import (
	"fmt"
	"strings"
	"time"
)

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidatePositive checks if a number is positive
func ValidatePositive(value float64, fieldName string) error {
	if value <= 0 {
		return NewValidationError(fmt.Sprintf("%s must be positive", fieldName))
	}
	return nil
}

// ValidateNonNegative checks if a number is non-negative
func ValidateNonNegative(value float64, fieldName string) error {
	if value < 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be negative", fieldName))
	}
	return nil
}

// ValidateNotEmpty checks if a slice is not empty
func ValidateNotEmpty[T any](slice []T, fieldName string) error {
	if len(slice) == 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be empty", fieldName))
	}
	return nil
}

// ValidateCurrency checks that a currency code is one of the supported codes
func ValidateCurrency(code string) error {
	if !IsSupportedCurrency(code) {
		return NewValidationError(fmt.Sprintf("unsupported currency %q", code))
	}
	return nil
}

// ValidateDate parses a wire-format date string (YYYY-MM-DD)
func ValidateDate(value, fieldName string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	t, err := time.Parse(DateFormat, value)
	if err != nil {
		return time.Time{}, NewValidationError(fmt.Sprintf("%s must be in %s format", fieldName, DateFormat))
	}
	return t, nil
}

// ValidateAllocationLine validates the basic data for one allocation line
func ValidateAllocationLine(pledgeID int, amount float64) error {
	if pledgeID <= 0 {
		return NewValidationError("allocation pledgeId is required")
	}
	if err := ValidatePositive(amount, "allocation amount"); err != nil {
		return err
	}
	return nil
}
