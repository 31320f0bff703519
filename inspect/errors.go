package inspect

import "errors"

// Sentinel errors for package inspect.
// They never escape Inspect; they end up in Outcome details.
var (
	ErrNotRegular = errors.New("not a regular file")
)
