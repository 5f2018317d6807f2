package repository

import "errors"

// ErrNoData is returned by GetLatest when no reading has been recorded yet.
var ErrNoData = errors.New("no macro data recorded")

// ErrDataUnavailable covers upstream API errors, malformed responses, and
// missing series. Callers treat all fetch failures as one condition.
var ErrDataUnavailable = errors.New("macro data unavailable")
