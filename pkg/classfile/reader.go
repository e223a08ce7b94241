package classfile

import (
	"encoding/binary"
	"errors"
	"io"
)

// countingReader tracks how many bytes have been consumed from r so that
// positions in the underlying buffer can be reported.
type countingReader struct {
	r      io.Reader
	offset int
}

func newCountingReader(r io.Reader) *countingReader {
	return &countingReader{r: r}
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.offset += n
	return n, err
}

// Offset returns the number of bytes consumed so far.
func (c *countingReader) Offset() int { return c.offset }

func (c *countingReader) readU1() (uint8, error) {
	var v uint8
	err := binary.Read(c, binary.BigEndian, &v)
	return v, err
}

func (c *countingReader) readU2() (uint16, error) {
	var v uint16
	err := binary.Read(c, binary.BigEndian, &v)
	return v, err
}

func (c *countingReader) readU4() (uint32, error) {
	var v uint32
	err := binary.Read(c, binary.BigEndian, &v)
	return v, err
}

func (c *countingReader) readBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(c, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// skip discards exactly n bytes.
func (c *countingReader) skip(n int) error {
	m, err := io.CopyN(io.Discard, c, int64(n))
	if err == nil && m != int64(n) {
		return io.ErrUnexpectedEOF
	}
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// isShortRead reports whether err means the input ended early.
func isShortRead(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
