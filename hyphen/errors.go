package hyphen

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/text/language"
)

// ErrorKind distinguishes I/O failures from bad dictionary data.
// Both kinds can be used as errors.Is targets.
type ErrorKind int

const (
	ErrRead ErrorKind = iota + 1
	ErrMalformed
)

func (k ErrorKind) Error() string {
	switch k {
	case ErrRead:
		return "hyphen: read failed"
	case ErrMalformed:
		return "hyphen: malformed patterns"
	default:
		return "hyphen: unknown error"
	}
}

// LoadError is returned by Load and LoadFile.
type LoadError struct {
	Kind ErrorKind
	Lang language.Tag
	Pos  lexer.Position // zero unless the problem has a source position
	Err  error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("%s (%s)", e.Kind.Error(), e.Lang)
	if e.Pos.Line > 0 {
		msg += fmt.Sprintf(" at %d:%d", e.Pos.Line, e.Pos.Column)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is matches the error kind.
func (e *LoadError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}
