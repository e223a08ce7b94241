// Package patch rewrites a single byte of a class file at the position of a
// constant pool string, neutralising the identifier it spells.
package patch

import (
	"errors"
	"fmt"

	"github.com/daimatz/classpatch/pkg/classfile"
)

// Reference mitigation: fetchJar becomes retchJar, so calls naming the
// original method no longer resolve.
const (
	DefaultTarget      = "fetchJar"
	DefaultReplacement = 'r'
)

// Finder locates the payload offset of a constant pool string.
type Finder interface {
	Find(buf []byte, target string) (int, error)
}

// Patch returns a copy of buf with the byte at offset replaced by b.
// buf is never modified. An offset outside buf panics.
func Patch(buf []byte, offset int, b byte) []byte {
	if offset < 0 || offset >= len(buf) {
		panic(fmt.Sprintf("patch: offset %d out of range [0,%d)", offset, len(buf)))
	}
	out := make([]byte, len(buf))
	copy(out, buf)
	out[offset] = b
	return out
}

// Result is a successfully patched class file.
type Result struct {
	Data     []byte
	Offset   int
	Original byte // byte that was overwritten
}

// Patcher finds Target with Finder and overwrites its first byte.
type Patcher struct {
	Finder      Finder
	Target      string
	Replacement byte
}

// New returns the reference mitigation backed by the constant pool scanner.
func New() *Patcher {
	return &Patcher{
		Finder:      classfile.NewScanner(),
		Target:      DefaultTarget,
		Replacement: DefaultReplacement,
	}
}

// Apply patches buf. The error from the Finder is returned as is so that
// callers can tell classfile.ErrNotFound apart from format errors.
func (p *Patcher) Apply(buf []byte) (*Result, error) {
	if p.Target == "" {
		return nil, errors.New("patch: empty target")
	}
	offset, err := p.Finder.Find(buf, p.Target)
	if err != nil {
		return nil, err
	}
	return &Result{
		Data:     Patch(buf, offset, p.Replacement),
		Offset:   offset,
		Original: buf[offset],
	}, nil
}
