package cmd

import "errors"

// Sentinel errors for package cmd.
var (
	ErrInterrupted      = errors.New("scan interrupted before all archives were checked")
	ErrInvalidLogFormat = errors.New("log format must be text or json")
)
