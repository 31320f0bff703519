package fixture

import (
	"bytes"
	"errors"
	"maps"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
)

func TestWrite_EveryKind(t *testing.T) {
	dir := t.TempDir()
	for _, k := range Kinds {
		t.Run(string(k), func(t *testing.T) {
			path := filepath.Join(dir, "nested", string(k)+".zip")
			if err := Write(path, k); err != nil {
				t.Fatalf("Write(%s) failed: %v", k, err)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("fixture not written: %v", err)
			}
			if info.Size() == 0 {
				t.Error("fixture is empty")
			}
		})
	}
}

func TestWrite_UnknownKind(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "x.zip"), Kind("bogus"))
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Write error = %v, want ErrUnknownKind", err)
	}
}

func TestWrite_PayloadsDiffer(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.zip"), filepath.Join(dir, "b.zip")
	for _, p := range []string{a, b} {
		if err := Write(p, Valid); err != nil {
			t.Fatal(err)
		}
	}
	da, _ := os.ReadFile(a)
	db, _ := os.ReadFile(b)
	if bytes.Equal(da, db) {
		t.Error("two valid fixtures are byte-identical")
	}

	r, err := zip.OpenReader(a)
	if err != nil {
		t.Fatalf("valid fixture does not open: %v", err)
	}
	defer r.Close()
	if len(r.File) != 2 {
		t.Errorf("valid fixture has %d entries, want 2", len(r.File))
	}
}

func TestRandom(t *testing.T) {
	files := Random(200, rand.New(rand.NewPCG(1, 2)))
	if len(files) != 200 {
		t.Fatalf("Random returned %d files, want 200", len(files))
	}

	kinds := make(map[Kind]int)
	upper := 0
	for rel, k := range files {
		kinds[k]++
		if strings.HasSuffix(rel, ".ZIP") {
			upper++
		} else if !strings.HasSuffix(rel, ".zip") {
			t.Errorf("%s has an unexpected extension", rel)
		}
		if strings.Count(rel, "/") > 3 {
			t.Errorf("%s is nested too deeply", rel)
		}
	}
	if kinds[Valid] < 80 {
		t.Errorf("only %d valid fixtures out of 200", kinds[Valid])
	}
	if len(kinds) < 5 {
		t.Errorf("only %d kinds represented", len(kinds))
	}
	if upper == 0 {
		t.Error("no upper-case extensions generated")
	}

	again := Random(200, rand.New(rand.NewPCG(1, 2)))
	if !slices.Equal(slices.Sorted(maps.Keys(files)), slices.Sorted(maps.Keys(again))) {
		t.Error("same seed produced different manifests")
	}
}

func TestTree(t *testing.T) {
	root := t.TempDir()
	err := Tree(root, map[string]Kind{
		"a.zip":       Valid,
		"x/y/z/b.zip": Truncated,
	})
	if err != nil {
		t.Fatalf("Tree failed: %v", err)
	}
	for _, rel := range []string{"a.zip", "x/y/z/b.zip"} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			t.Errorf("%s missing: %v", rel, err)
		}
	}

	if err := Tree(root, map[string]Kind{"c.zip": "nope"}); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Tree error = %v, want ErrUnknownKind", err)
	}
}
