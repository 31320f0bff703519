// Package fixture writes archive files with known defects.
//
// The seed command uses it to build sample trees and every test suite uses
// it to build inputs whose expected classification is known.
package fixture

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zip"
	"github.com/mholt/archives"
)

// Kind names one fixture flavour.
type Kind string

const (
	Valid       Kind = "valid"
	Empty       Kind = "empty"
	Zstd        Kind = "zstd"
	Encrypted   Kind = "encrypted"
	AES         Kind = "aes"
	Truncated   Kind = "truncated"
	BadChecksum Kind = "checksum"
	NotZip      Kind = "notzip"
	HeaderOnly  Kind = "header"
	Tar         Kind = "tar"
	SevenZip    Kind = "7z"
	Gzip        Kind = "gzip"
)

// Kinds lists every fixture flavour.
var Kinds = []Kind{Valid, Empty, Zstd, Encrypted, AES, Truncated, BadChecksum, NotZip, HeaderOnly, Tar, SevenZip, Gzip}

var ErrUnknownKind = errors.New("unknown fixture kind")

var sevenZipMagic = []byte("7z\xBC\xAF\x27\x1C")

// Write creates a fixture of the given kind at path, creating parent
// directories as needed.
func Write(path string, kind Kind) error {
	var (
		data []byte
		err  error
	)
	switch kind {
	case Valid:
		data, err = validZip(zip.Deflate, "test.txt", "folder/nested.txt")
	case Empty:
		data, err = validZip(zip.Deflate)
	case Zstd:
		data, err = validZip(archives.ZipMethodZstd, "test.txt", "folder/nested.txt")
	case Encrypted:
		data, err = encryptedZip()
	case AES:
		data, err = aesZip()
	case Truncated:
		data, err = validZip(zip.Deflate, "test.txt", "folder/nested.txt")
		data = data[:len(data)/2]
	case BadChecksum:
		data, err = badChecksumZip()
	case NotZip:
		data = []byte("This is not a ZIP file")
	case HeaderOnly:
		data = append([]byte("PK\x03\x04"), make([]byte, 100)...)
	case Tar:
		data, err = tarball()
	case SevenZip:
		data = append(append([]byte{}, sevenZipMagic...), make([]byte, 26)...)
	case Gzip:
		data, err = gzipped()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err != nil {
		return fmt.Errorf("build %s fixture: %w", kind, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func payload() []byte {
	return []byte(uuid.NewString() + "\n")
}

func validZip(method uint16, names ...string) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range names {
		fw, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: method})
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(payload()); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encryptedZip() ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, err := w.CreateHeader(&zip.FileHeader{Name: "secret.txt", Method: zip.Store, Flags: 0x1})
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(payload()); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// aesZip writes a raw entry with the WinZip AES method id and no encryption
// bit, which is enough for a reader that checks either marker.
func aesZip() ([]byte, error) {
	body := payload()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, err := w.CreateRaw(&zip.FileHeader{
		Name:               "secret.bin",
		Method:             99,
		CRC32:              crc32.ChecksumIEEE(body),
		CompressedSize64:   uint64(len(body)),
		UncompressedSize64: uint64(len(body)),
	})
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(body); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// badChecksumZip stores one entry uncompressed and flips a byte of its data
// so only the CRC check can notice.
func badChecksumZip() ([]byte, error) {
	body := payload()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, err := w.CreateHeader(&zip.FileHeader{Name: "data.txt", Method: zip.Store})
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(body); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	data := buf.Bytes()
	idx := bytes.Index(data, body)
	if idx < 0 {
		return nil, errors.New("stored payload not found")
	}
	data[idx] ^= 0xff
	return data, nil
}

func tarball() ([]byte, error) {
	body := payload()
	var buf bytes.Buffer
	w := tar.NewWriter(&buf)
	if err := w.WriteHeader(&tar.Header{Name: "inner.txt", Mode: 0o644, Size: int64(len(body))}); err != nil {
		return nil, err
	}
	if _, err := w.Write(body); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gzipped() ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(payload()); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
