package classfile

import "encoding/binary"

// classBuilder assembles class file prefixes in memory: header, constant
// pool, and optional trailing bytes standing in for the rest of the file.
type classBuilder struct {
	magic   []byte
	minor   uint16
	major   uint16
	count   int // overrides the computed pool count when > 0
	slots   int
	entries [][]byte
	trailer []byte
}

func newClassBuilder() *classBuilder {
	return &classBuilder{magic: []byte{0xCA, 0xFE, 0xBA, 0xBE}, major: 52}
}

func (b *classBuilder) version(minor, major uint16) *classBuilder {
	b.minor, b.major = minor, major
	return b
}

func (b *classBuilder) poolCount(n int) *classBuilder {
	b.count = n
	return b
}

func (b *classBuilder) utf8(s string) *classBuilder {
	return b.utf8Raw(EncodeModifiedUTF8(s))
}

func (b *classBuilder) utf8Raw(payload []byte) *classBuilder {
	e := []byte{TagUtf8, 0, 0}
	binary.BigEndian.PutUint16(e[1:], uint16(len(payload)))
	return b.entry(1, append(e, payload...))
}

// ref appends a fixed-size entry with the given body.
func (b *classBuilder) ref(tag uint8, body ...byte) *classBuilder {
	return b.entry(1, append([]byte{tag}, body...))
}

func (b *classBuilder) long(body [8]byte) *classBuilder {
	return b.entry(2, append([]byte{TagLong}, body[:]...))
}

func (b *classBuilder) double(body [8]byte) *classBuilder {
	return b.entry(2, append([]byte{TagDouble}, body[:]...))
}

func (b *classBuilder) entry(slots int, raw []byte) *classBuilder {
	b.entries = append(b.entries, raw)
	b.slots += slots
	return b
}

func (b *classBuilder) withTrailer(raw ...byte) *classBuilder {
	b.trailer = append(b.trailer, raw...)
	return b
}

func (b *classBuilder) bytes() []byte {
	out := append([]byte{}, b.magic...)
	out = binary.BigEndian.AppendUint16(out, b.minor)
	out = binary.BigEndian.AppendUint16(out, b.major)
	count := b.slots + 1
	if b.count > 0 {
		count = b.count
	}
	out = binary.BigEndian.AppendUint16(out, uint16(count))
	for _, e := range b.entries {
		out = append(out, e...)
	}
	return append(out, b.trailer...)
}

// allTags adds one entry of every non-Utf8 tag.
func (b *classBuilder) allTags() *classBuilder {
	return b.
		ref(TagInteger, 0, 0, 0, 42).
		ref(TagFloat, 0x3F, 0x80, 0, 0).
		long([8]byte{0, 0, 0, 0, 0, 0, 0, 7}).
		double([8]byte{0x40, 0x09, 0x21, 0xFB, 0x54, 0x44, 0x2D, 0x18}).
		ref(TagClass, 0, 1).
		ref(TagString, 0, 1).
		ref(TagFieldref, 0, 1, 0, 2).
		ref(TagMethodref, 0, 1, 0, 2).
		ref(TagInterfaceMethodref, 0, 1, 0, 2).
		ref(TagNameAndType, 0, 1, 0, 1).
		ref(TagMethodHandle, 5, 0, 3).
		ref(TagMethodType, 0, 1).
		ref(TagDynamic, 0, 0, 0, 4).
		ref(TagInvokeDynamic, 0, 0, 0, 4).
		ref(TagModule, 0, 1).
		ref(TagPackage, 0, 1)
}

// trailer bytes resembling the fields that follow the constant pool.
var classTrailer = []byte{0x00, 0x21, 0x00, 0x02, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
