package scan

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DefaultExtensions are matched when a Walker has none configured.
var DefaultExtensions = []string{".zip"}

// Walker discovers candidate archives below Root.
type Walker struct {
	// Root is the OS path of the scan root. Pushed paths are Root joined
	// with the slash-separated path found in FS.
	Root string
	// FS is traversed instead of os.DirFS(Root) when set.
	FS fs.FS
	// Extensions are matched case-insensitively against the final
	// extension of each file name, dot included.
	Extensions []string
	// Exclude lists slash-separated directories, relative to Root, that
	// are not descended into.
	Exclude []string
	Logger  *slog.Logger

	// OnDiscovered is called after each successful push.
	OnDiscovered func(path string)
	// OnDirError is called for each subdirectory that could not be read.
	OnDirError func(err *DirError)
}

// WalkStats summarises one traversal.
type WalkStats struct {
	Dirs       int
	Discovered int
}

// Walk traverses the tree and pushes every matching file into q. q is
// closed when Walk returns, whatever the outcome. Unreadable subdirectories
// are passed to OnDirError and skipped; only a failure on the root itself is
// returned as an error.
func (w *Walker) Walk(ctx context.Context, q *Queue) (WalkStats, error) {
	defer q.Close()

	var stats WalkStats
	fsys := w.FS
	if fsys == nil {
		fsys = os.DirFS(w.Root)
	}
	logger := w.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	exts := normalizeExtensions(w.Extensions)
	excluded := make(map[string]bool, len(w.Exclude))
	for _, x := range w.Exclude {
		excluded[path.Clean(filepath.ToSlash(x))] = true
	}

	err := fs.WalkDir(fsys, ".", func(rel string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return fs.SkipAll
		}
		if err != nil {
			if rel == "." {
				return err
			}
			dirErr := &DirError{Path: rel, Op: "readdir", Err: unwrapPathError(err)}
			logger.Warn("skipping unreadable directory", slog.String("dir", rel), slog.Any("error", dirErr.Err))
			if w.OnDirError != nil {
				w.OnDirError(dirErr)
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if rel != "." && excluded[rel] {
				logger.Debug("excluded directory", slog.String("dir", rel))
				return fs.SkipDir
			}
			stats.Dirs++
			return nil
		}

		if !candidate(d) || !matchExtension(d.Name(), exts) {
			return nil
		}
		p := filepath.Join(w.Root, filepath.FromSlash(rel))
		if err := q.Push(p); err != nil {
			return err
		}
		stats.Discovered++
		if w.OnDiscovered != nil {
			w.OnDiscovered(p)
		}
		return nil
	})
	return stats, err
}

// candidate accepts regular files and symlinks. Other special files are
// never opened because reading a FIFO would block a worker forever.
func candidate(d fs.DirEntry) bool {
	t := d.Type()
	return t.IsRegular() || t&fs.ModeSymlink != 0
}

func matchExtension(name string, exts []string) bool {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalizeExtensions lowercases and dot-prefixes exts, falling back to
// DefaultExtensions when none are given.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return DefaultExtensions
	}
	return out
}

func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
