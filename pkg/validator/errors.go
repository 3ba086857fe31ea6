package validator

import "errors"

// ErrValidationFailed matches any non-empty ValidationErrors through errors.Is.
var ErrValidationFailed = errors.New("validation failed")
