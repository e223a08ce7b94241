package classfile

// DefaultMaxVersion is the highest combined version (minor<<16 | major)
// the scanner accepts: major 66, minor 0 (Java 22).
const DefaultMaxVersion = 0x42

// Header is the fixed prefix of a class file up to and including the
// constant pool count.
type Header struct {
	MinorVersion      uint16
	MajorVersion      uint16
	ConstantPoolCount uint16 // highest pool index + 1
}

// Version returns both version halves as the single big-endian word they
// are stored as.
func (h Header) Version() uint32 {
	return uint32(h.MinorVersion)<<16 | uint32(h.MajorVersion)
}

// headerSize is magic + minor + major + constant_pool_count.
const headerSize = 10
