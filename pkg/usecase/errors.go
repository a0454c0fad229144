package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrLocationNotFound     = errors.New("location risk profile not found")
	ErrBusinessTypeNotFound = errors.New("business vulnerability profile not found")

	// ErrDataSource wraps failures of the snapshot providers
	ErrDataSource = errors.New("data source failure")

	// ErrInvalidInput is returned for malformed request parameters
	ErrInvalidInput = errors.New("invalid input")
)

// Context keys for error values
const (
	AdminUnitIDKey    = "admin_unit_id"
	BusinessTypeIDKey = "business_type_id"
)
