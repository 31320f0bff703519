package inspect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zip"
)

const (
	// flagEncrypted is general purpose bit 0 of a zip file header.
	flagEncrypted = 0x1
	// methodAES is the compression method WinZip writes for AES entries.
	methodAES = 99
)

// Inspector classifies the archive at path.
// Implementations must be safe for concurrent use.
type Inspector interface {
	Inspect(ctx context.Context, path string) Outcome
}

// Zip validates zip archives. Besides store and deflate, entries compressed
// with bzip2, zstd and xz are decompressed through the codecs that
// github.com/mholt/archives registers on the zip reader.
type Zip struct {
	// HeadersOnly stops after the central directory and entry headers have
	// been read; entry data is not decompressed and checksums are not
	// verified.
	HeadersOnly bool
}

var _ Inspector = Zip{}

// Inspect opens path as a zip archive and reads back every entry.
func (z Zip) Inspect(ctx context.Context, path string) Outcome {
	f, err := os.Open(path)
	if err != nil {
		return Damaged("cannot open file: %v", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Damaged("cannot open file: %v", err)
	}
	if !info.Mode().IsRegular() {
		return Damaged("cannot open file: %v", ErrNotRegular)
	}

	r, err := zip.NewReader(f, info.Size())
	if errors.Is(err, zip.ErrInsecurePath) && r != nil {
		// entry names are not extracted, so unsafe names do not matter here
		err = nil
	}
	if err != nil {
		if name, ok := identifyForeign(ctx, f); ok {
			return Foreign(name + " archive")
		}
		return Damaged("invalid zip format: %v", err)
	}

	for _, zf := range r.File {
		if zf.Flags&flagEncrypted != 0 || zf.Method == methodAES {
			return Protected()
		}
	}
	if z.HeadersOnly {
		return OK()
	}

	for i, zf := range r.File {
		if err := readEntry(zf); err != nil {
			if errors.Is(err, zip.ErrAlgorithm) {
				return Foreign(fmt.Sprintf("compression method %d", zf.Method))
			}
			return Damaged("cannot read file at index %d (%s): %v", i, zf.Name, err)
		}
	}
	return OK()
}

// readEntry decompresses one entry to io.Discard. The reader verifies the
// CRC-32 and sizes when the stream reaches EOF.
func readEntry(zf *zip.File) error {
	if zf.FileInfo().IsDir() {
		return nil
	}
	rc, err := zf.Open()
	if err != nil {
		return err
	}
	_, err = io.Copy(io.Discard, rc)
	closeErr := rc.Close()
	if err != nil {
		return err
	}
	return closeErr
}
