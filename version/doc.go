// Package version reports build metadata for checkzip.
//
// Release builds inject Version, Commit and Date with -ldflags:
//
//	-ldflags "-X github.com/dendrascience/checkzip/version.Version=v1.2.0 -X github.com/dendrascience/checkzip/version.Commit=abc1234"
//
// Development builds fall back to the information the Go toolchain embeds
// in the binary.
package version
