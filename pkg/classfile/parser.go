package classfile

import (
	"bytes"
	"fmt"
	"io"
)

var classMagic = []byte{0xCA, 0xFE, 0xBA, 0xBE}

// ParseHeader validates the magic number and decodes the version and
// constant pool count. The version ceiling is not checked here.
func ParseHeader(buf []byte) (Header, error) {
	return readHeader(newCountingReader(bytes.NewReader(buf)))
}

func readHeader(cr *countingReader) (Header, error) {
	var h Header

	// Magic number. A short buffer whose bytes already differ from the
	// magic is not a class file rather than a truncated one.
	magic := make([]byte, len(classMagic))
	n, err := io.ReadFull(cr, magic)
	if !bytes.Equal(magic[:n], classMagic[:n]) {
		return h, &FormatError{Kind: ErrNotAClassFile, Detail: fmt.Sprintf("magic 0x%X", magic[:n])}
	}
	if err != nil {
		return h, formatErr(err, 0, 0, 0, "reading magic number")
	}

	// Version
	if h.MinorVersion, err = cr.readU2(); err != nil {
		return h, formatErr(err, 4, 0, 0, "reading minor version")
	}
	if h.MajorVersion, err = cr.readU2(); err != nil {
		return h, formatErr(err, 6, 0, 0, "reading major version")
	}

	// Constant pool count
	if h.ConstantPoolCount, err = cr.readU2(); err != nil {
		return h, formatErr(err, 8, 0, 0, "reading constant pool count")
	}
	return h, nil
}

// WalkFunc is called for each constant pool entry in order. Returning
// false stops the walk.
type WalkFunc func(e Entry) bool

// Walk validates the header against maxVersion and visits every constant
// pool entry. Utf8 payloads are decoded before fn sees them; a payload that
// is not valid modified UTF-8 ends the walk with a format error.
func Walk(buf []byte, maxVersion uint32, fn WalkFunc) (Header, error) {
	cr := newCountingReader(bytes.NewReader(buf))
	h, err := readHeader(cr)
	if err != nil {
		return h, err
	}
	if h.Version() > maxVersion {
		return h, &FormatError{
			Kind:   ErrUnsupportedVersion,
			Offset: 4,
			Detail: fmt.Sprintf("version 0x%X (major %d, minor %d) exceeds 0x%X", h.Version(), h.MajorVersion, h.MinorVersion, maxVersion),
		}
	}

	for i := 1; i < int(h.ConstantPoolCount); {
		start := cr.Offset()
		tag, err := cr.readU1()
		if err != nil {
			return h, formatErr(err, start, i, 0, "reading tag")
		}
		layout, ok := layouts[tag]
		if !ok {
			return h, &FormatError{Kind: ErrUnknownTag, Offset: start, Index: i, Tag: tag}
		}

		e := Entry{Index: i, Tag: tag, Offset: start, Size: layout.size}
		if tag == TagUtf8 {
			length, err := cr.readU2()
			if err != nil {
				return h, formatErr(err, start+1, i, tag, "reading Utf8 length")
			}
			payload, err := cr.readBytes(int(length))
			if err != nil {
				return h, formatErr(err, start+3, i, tag, fmt.Sprintf("reading %d Utf8 bytes", length))
			}
			e.Text, err = DecodeModifiedUTF8(payload)
			if err != nil {
				return h, &FormatError{Kind: ErrMalformedUTF8, Offset: start + 3, Index: i, Tag: tag, Detail: err.Error()}
			}
			e.Size += int(length)
		} else if err := cr.skip(layout.size); err != nil {
			return h, formatErr(err, start+1, i, tag, "reading "+layout.name)
		}

		if !fn(e) {
			return h, nil
		}
		i += layout.slots
	}
	return h, nil
}

// formatErr turns a read failure into a *FormatError. Short reads become
// ErrTruncated; anything else is kept as detail on a truncation so callers
// still see a format error.
func formatErr(err error, offset, index int, tag uint8, what string) error {
	if isShortRead(err) {
		return &FormatError{Kind: ErrTruncated, Offset: offset, Index: index, Tag: tag, Detail: what}
	}
	return &FormatError{Kind: ErrTruncated, Offset: offset, Index: index, Tag: tag, Detail: fmt.Sprintf("%s: %v", what, err)}
}
