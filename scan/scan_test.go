package scan

import (
	"context"
	"errors"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/dendrascience/checkzip/inspect"
	"github.com/dendrascience/checkzip/internal/fixture"
)

func TestRun_EmptyDirectory(t *testing.T) {
	snap, err := Run(context.Background(), Options{Root: t.TempDir(), Inspector: inspect.Zip{}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if snap.Counters != (Counters{}) || snap.Discovered != 0 {
		t.Errorf("counters = %+v, discovered = %d; want all zero", snap.Counters, snap.Discovered)
	}
	if snap.RunID == "" {
		t.Error("RunID should be set")
	}
	if snap.Finished.Before(snap.Started) {
		t.Error("Finished is before Started")
	}
}

func TestRun_MixedTree(t *testing.T) {
	root := t.TempDir()
	err := fixture.Tree(root, map[string]fixture.Kind{
		"good.zip":           fixture.Valid,
		"nested/also.ZIP":    fixture.Valid,
		"nested/deep/ok.zip": fixture.Empty,
		"secret.zip":         fixture.Encrypted,
		"broken.zip":         fixture.Truncated,
		"disguised.zip":      fixture.Tar,
	})
	if err != nil {
		t.Fatalf("Failed to build tree: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "readme.txt"), []byte("not an archive"), 0o644); err != nil {
		t.Fatal(err)
	}

	want := Counters{Total: 6, Valid: 3, Corrupted: 1, Skipped: 2, Protected: 1, Unsupported: 1}
	for _, workers := range []int{1, 4} {
		snap, err := Run(context.Background(), Options{Root: root, Workers: workers, Inspector: inspect.Zip{}})
		if err != nil {
			t.Fatalf("Run with %d workers failed: %v", workers, err)
		}
		if snap.Counters != want {
			t.Errorf("workers=%d: counters = %+v, want %+v", workers, snap.Counters, want)
		}
		if got := snap.Corrupted(); len(got) != 1 || filepath.Base(got[0]) != "broken.zip" {
			t.Errorf("workers=%d: Corrupted() = %v, want broken.zip", workers, got)
		}
	}
}

func TestRun_RepeatedRunsAgree(t *testing.T) {
	root := t.TempDir()
	rng := rand.New(rand.NewPCG(7, 11))
	if err := fixture.Tree(root, fixture.Random(60, rng)); err != nil {
		t.Fatalf("Failed to build tree: %v", err)
	}

	first, err := Run(context.Background(), Options{Root: root, Workers: 3, Inspector: inspect.Zip{}})
	if err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if first.Counters.Total != 60 {
		t.Fatalf("Total = %d, want 60", first.Counters.Total)
	}

	second, err := Run(context.Background(), Options{Root: root, Workers: 7, Inspector: inspect.Zip{}})
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if first.Counters != second.Counters {
		t.Errorf("counters differ between runs: %+v vs %+v", first.Counters, second.Counters)
	}

	a, b := first.SortedEntries(), second.SortedEntries()
	for i := range a {
		if a[i].RelPath != b[i].RelPath || a[i].Outcome != b[i].Outcome {
			t.Errorf("entry %d differs: %s %v vs %s %v", i, a[i].RelPath, a[i].Outcome, b[i].RelPath, b[i].Outcome)
		}
	}
	if first.RunID == second.RunID {
		t.Error("each run should get its own RunID")
	}
}

func TestRun_UnreadableDirectoryIsReported(t *testing.T) {
	root := t.TempDir()
	err := fixture.Tree(root, map[string]fixture.Kind{
		"top.zip":          fixture.Valid,
		"locked/inner.zip": fixture.Valid,
		"open/fine.zip":    fixture.Valid,
	})
	if err != nil {
		t.Fatalf("Failed to build tree: %v", err)
	}

	obs := &recordingObserver{}
	snap, err := Run(context.Background(), Options{
		Root:      root,
		FS:        deniedFS{FS: os.DirFS(root), denied: map[string]bool{"locked": true}},
		Inspector: inspect.Zip{},
		Observer:  obs,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if snap.Counters.Total != 2 || snap.Counters.Valid != 2 {
		t.Errorf("counters = %+v, want 2 valid", snap.Counters)
	}
	if len(snap.DirErrors) != 1 || snap.DirErrors[0].Path != "locked" {
		t.Fatalf("DirErrors = %v, want one for locked", snap.DirErrors)
	}
	if obs.dirErrors != 1 {
		t.Errorf("observer saw %d directory errors, want 1", obs.dirErrors)
	}
}

func TestRun_FatalErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.zip")
	if err := fixture.Write(file, fixture.Valid); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{
			name:    "missing root",
			opts:    Options{Root: filepath.Join(dir, "nope"), Inspector: inspect.Zip{}},
			wantErr: fs.ErrNotExist,
		},
		{
			name:    "root is a file",
			opts:    Options{Root: file, Inspector: inspect.Zip{}},
			wantErr: ErrRootNotDirectory,
		},
		{
			name:    "no inspector",
			opts:    Options{Root: dir},
			wantErr: ErrNoInspector,
		},
		{
			name: "unreadable root",
			opts: Options{
				Root:      dir,
				FS:        deniedFS{FS: os.DirFS(dir), denied: map[string]bool{".": true}},
				Inspector: inspect.Zip{},
			},
			wantErr: fs.ErrPermission,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Run error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
