package classfile

import (
	"bytes"
	"fmt"
)

// Scanner locates Utf8 constants by walking the constant pool record by
// record. It holds no state between calls and is safe for concurrent use.
type Scanner struct {
	// MaxVersion is the highest accepted minor<<16 | major value.
	MaxVersion uint32
}

// NewScanner returns a Scanner with the DefaultMaxVersion ceiling.
func NewScanner() *Scanner {
	return &Scanner{MaxVersion: DefaultMaxVersion}
}

// Find returns the offset of the first payload byte of the first Utf8
// constant whose text equals target. A clean class file without such a
// constant yields ErrNotFound; anything malformed yields a *FormatError.
func (s *Scanner) Find(buf []byte, target string) (int, error) {
	offset := -1
	_, err := Walk(buf, s.MaxVersion, func(e Entry) bool {
		if e.Tag == TagUtf8 && e.Text == target {
			offset = e.PayloadOffset()
			return false
		}
		return true
	})
	if err != nil {
		return -1, err
	}
	if offset < 0 {
		return -1, fmt.Errorf("%q: %w", target, ErrNotFound)
	}
	return offset, nil
}

// NaiveFinder searches for the encoded target anywhere after the header,
// ignoring record boundaries. It can match inside numeric constants or
// code, so it is only kept to compare against Scanner.
type NaiveFinder struct {
	MaxVersion uint32
}

// Find returns the offset of the first occurrence of target's bytes.
func (f NaiveFinder) Find(buf []byte, target string) (int, error) {
	h, err := ParseHeader(buf)
	if err != nil {
		return -1, err
	}
	maxVersion := f.MaxVersion
	if maxVersion == 0 {
		maxVersion = DefaultMaxVersion
	}
	if h.Version() > maxVersion {
		return -1, &FormatError{Kind: ErrUnsupportedVersion, Offset: 4, Detail: fmt.Sprintf("version 0x%X", h.Version())}
	}

	i := bytes.Index(buf[headerSize:], EncodeModifiedUTF8(target))
	if i < 0 {
		return -1, fmt.Errorf("%q: %w", target, ErrNotFound)
	}
	return headerSize + i, nil
}
