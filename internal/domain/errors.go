package domain

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Validation and normalization failures raised before a write reaches the store.
var (
	ErrRequiredField     = errors.New("is required and cannot be empty")
	ErrSlugGeneration    = errors.New("slug cannot be generated from title")
	ErrInvalidDate       = errors.New("invalid date format")
	ErrInvalidTime       = errors.New("invalid time format")
	ErrEmptyCollection   = errors.New("must contain at least one non-empty item")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrDanglingReference = errors.New("referenced event does not exist")
)

// Infrastructure failures.
var (
	// ErrDuplicateSlug is returned by the store when another event already owns the slug.
	ErrDuplicateSlug = errors.New("an event with this slug already exists")
	// ErrConnection is returned when the database connection cannot be established.
	ErrConnection = errors.New("database connection failed")
	// ErrUpload is returned when the image host rejects or fails an upload.
	ErrUpload = errors.New("image upload failed")
)

// IsValidationError reports whether err is a client-side validation failure.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrRequiredField,
		ErrSlugGeneration,
		ErrInvalidDate,
		ErrInvalidTime,
		ErrEmptyCollection,
		ErrInvalidEmail,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
