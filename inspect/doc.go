// Package inspect classifies a single archive file.
//
// An [Inspector] opens the file at a path and reports exactly one [Outcome]:
//
//   - Valid: the archive opens and every entry reads back without error
//   - PasswordProtected: at least one entry is encrypted
//   - Corrupted: the header or entry structure is damaged, or the file
//     cannot be opened or read; Detail carries the cause
//   - Unsupported: the file is a different archive or compression format,
//     or uses a compression method the reader cannot decode
//
// Inspection never returns an error. Every failure, including a vanished
// path, is mapped to one of the four outcomes so that callers can treat the
// result as a value.
//
// Only zip is validated. Other formats (rar, 7z, tar, gzip, ...) are
// recognised from their leading bytes so they can be reported as
// Unsupported instead of Corrupted.
package inspect
