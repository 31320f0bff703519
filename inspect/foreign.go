package inspect

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/mholt/archives"
)

// sniffLen covers the largest header any foreign format needs: one tar
// header block plus slack for compressed-stream probes.
const sniffLen = 8 << 10

// foreignFormats are checked in order. Formats with a fixed magic number
// come first; tar is last because it is recognised by parsing a header.
var foreignFormats = []archives.Format{
	archives.Rar{},
	archives.SevenZip{},
	archives.Gz{},
	archives.Bz2{},
	archives.Xz{},
	archives.Zstd{},
	archives.Lz4{},
	archives.Tar{},
}

// identifyForeign reports the extension of the first foreign format whose
// stream header matches the start of r. Only content is matched; the file
// name is never passed to Match.
func identifyForeign(ctx context.Context, r io.ReaderAt) (string, bool) {
	head := make([]byte, sniffLen)
	n, err := r.ReadAt(head, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false
	}
	head = head[:n]
	if len(head) == 0 {
		return "", false
	}

	for _, format := range foreignFormats {
		mr, err := format.Match(ctx, "", bytes.NewReader(head))
		if err != nil || !mr.ByStream {
			continue
		}
		return strings.TrimPrefix(format.Extension(), "."), true
	}
	return "", false
}
