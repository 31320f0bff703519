package inspect

import "fmt"

// Kind is the tag of an Outcome.
type Kind int

const (
	Valid Kind = iota
	PasswordProtected
	Corrupted
	Unsupported
)

// Kinds lists every outcome kind in display order.
var Kinds = []Kind{Valid, PasswordProtected, Corrupted, Unsupported}

func (k Kind) String() string {
	switch k {
	case Valid:
		return "VALID"
	case PasswordProtected:
		return "PASSWORD PROTECTED"
	case Corrupted:
		return "CORRUPTED"
	case Unsupported:
		return "UNSUPPORTED"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Skipped reports whether archives of this kind were left unvalidated.
func (k Kind) Skipped() bool {
	return k == PasswordProtected || k == Unsupported
}

// Outcome is the classification of one archive.
type Outcome struct {
	Kind   Kind
	Detail string // cause for Corrupted, format or method for Unsupported
}

func (o Outcome) String() string {
	if o.Detail == "" {
		return o.Kind.String()
	}
	return o.Kind.String() + ": " + o.Detail
}

// OK returns a Valid outcome.
func OK() Outcome { return Outcome{Kind: Valid} }

// Protected returns a PasswordProtected outcome.
func Protected() Outcome { return Outcome{Kind: PasswordProtected} }

// Damaged returns a Corrupted outcome carrying a formatted cause.
func Damaged(format string, args ...any) Outcome {
	return Outcome{Kind: Corrupted, Detail: fmt.Sprintf(format, args...)}
}

// Foreign returns an Unsupported outcome.
func Foreign(detail string) Outcome {
	return Outcome{Kind: Unsupported, Detail: detail}
}
