package domain

import "errors"

// ErrClaimNotFound is returned when a referenced claim does not exist in the
// graph. Callers surface it; nothing retries it.
var ErrClaimNotFound = errors.New("claim not found")
