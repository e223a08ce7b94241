package classfile

import (
	"errors"
	"fmt"
)

// Format error kinds. A *FormatError unwraps to exactly one of these.
var (
	ErrNotAClassFile      = errors.New("not a class file")
	ErrUnsupportedVersion = errors.New("unsupported class file version")
	ErrUnknownTag         = errors.New("unknown constant pool tag")
	ErrTruncated          = errors.New("truncated class file")
	ErrMalformedUTF8      = errors.New("malformed modified UTF-8")
)

// ErrNotFound is returned for a well-formed class file whose constant pool
// does not contain the target string. It is not a *FormatError.
var ErrNotFound = errors.New("string not found in constant pool")

// FormatError reports input that cannot be walked as a class file.
type FormatError struct {
	Kind   error
	Offset int // byte position where the failing read started
	Index  int // constant pool index, 0 when failing in the header
	Tag    uint8
	Detail string
}

func (e *FormatError) Error() string {
	msg := e.Kind.Error()
	if e.Index > 0 {
		msg = fmt.Sprintf("%s at constant pool index %d (tag %d)", msg, e.Index, e.Tag)
	}
	msg = fmt.Sprintf("%s at offset %d", msg, e.Offset)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Kind }

// IsFormatError reports whether err describes malformed input, as opposed
// to a clean miss (ErrNotFound) or an unrelated failure.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
