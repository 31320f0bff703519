package version

import (
	"fmt"
	"io"
	"runtime/debug"
)

// Set with -ldflags at release time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Package is the name reported alongside the version.
const Package = "checkzip"

// Info describes the running binary.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Package string `json:"package"`
	Go      string `json:"go"`
}

// Get resolves the build information. Values injected with -ldflags win;
// otherwise the module and VCS data embedded by the Go toolchain are used.
func Get() Info {
	info := Info{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
		Package: Package,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		if info.Version == "dev" || info.Version == "" {
			info.Version = "development"
		}
		return info
	}
	info.Go = bi.GoVersion

	if info.Version == "dev" || info.Version == "" {
		info.Version = "development"
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		}
	}
	if info.Commit == "unknown" || info.Commit == "" {
		info.Commit = setting(bi, "vcs.revision", "unknown")
	}
	if info.Date == "unknown" || info.Date == "" {
		info.Date = setting(bi, "vcs.time", "unknown")
	}
	return info
}

func setting(bi *debug.BuildInfo, key, fallback string) string {
	for _, s := range bi.Settings {
		if s.Key == key && s.Value != "" {
			return s.Value
		}
	}
	return fallback
}

// Short returns the version with a seven character commit and the build
// date when they are known.
func (i Info) Short() string {
	if i.Commit == "unknown" || len(i.Commit) <= 7 {
		return i.Version
	}
	if i.Date == "unknown" {
		return fmt.Sprintf("%s (%s)", i.Version, i.Commit[:7])
	}
	return fmt.Sprintf("%s (%s, built %s)", i.Version, i.Commit[:7], i.Date)
}

// Write prints every field on its own line.
func (i Info) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s version %s\nCommit: %s\nBuild Date: %s\nGo: %s\n",
		i.Package, i.Short(), i.Commit, i.Date, i.Go)
	return err
}
