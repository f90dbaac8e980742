package translate

import "errors"

var (
	// ErrInvalidLanguage is returned for malformed or unknown language codes.
	ErrInvalidLanguage = errors.New("invalid language")
	// ErrUnexpectedStatus is returned for non-200 responses when
	// Options.RaiseException is set.
	ErrUnexpectedStatus = errors.New("unexpected status code")
)
