package config

import "errors"

// Sentinel errors for package config.
var (
	ErrInvalidWorkers   = errors.New("workers must not be negative")
	ErrInvalidExtension = errors.New("extension must not be empty")
)
