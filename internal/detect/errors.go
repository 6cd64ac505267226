package detect

import "errors"

// ErrInvalidThreshold rejects non-positive detector thresholds at the
// interface boundary.
var ErrInvalidThreshold = errors.New("detection thresholds must be positive")
