package gtoken

import "errors"

var (
	// ErrSecretFetch is returned by Store.Refresh when the landing page could
	// not be fetched or did not yield a secret. The previous secret is kept.
	ErrSecretFetch = errors.New("secret refresh failed")
	// ErrNoTKK means the page had no usable tkk literal.
	ErrNoTKK = errors.New("tkk not found")
	// ErrBadSecret means a secret string is not in "n.value" form.
	ErrBadSecret = errors.New("malformed secret")
)
