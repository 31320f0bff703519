package fixture

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"
)

// Tree writes one file per entry of files, keyed by slash-separated path
// relative to root.
func Tree(root string, files map[string]Kind) error {
	for rel, kind := range files {
		if err := Write(filepath.Join(root, filepath.FromSlash(rel)), kind); err != nil {
			return fmt.Errorf("write %s: %w", rel, err)
		}
	}
	return nil
}

// Random builds a manifest of n fixtures spread over a nested directory
// hierarchy. Most files are valid; every other flavour appears with roughly
// equal share of the remainder. Extensions alternate in case so that
// case-insensitive filtering is exercised.
func Random(n int, rng *rand.Rand) map[string]Kind {
	files := make(map[string]Kind, n)
	defects := Kinds[1:]
	for i := 0; len(files) < n; i++ {
		kind := Valid
		if rng.IntN(100) >= 60 {
			kind = defects[rng.IntN(len(defects))]
		}

		depth := rng.IntN(4)
		parts := make([]string, 0, depth+1)
		for d := range depth {
			parts = append(parts, fmt.Sprintf("d%d_%02d", d, rng.IntN(8)))
		}
		ext := ".zip"
		if i%5 == 0 {
			ext = ".ZIP"
		}
		parts = append(parts, fmt.Sprintf("%08x_%s%s", rng.Uint32(), kind, ext))
		files[strings.Join(parts, "/")] = kind
	}
	return files
}
