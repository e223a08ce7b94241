package classfile

// Constant pool tags
const (
	TagUtf8               = 1
	TagInteger            = 3
	TagFloat              = 4
	TagLong               = 5
	TagDouble             = 6
	TagClass              = 7
	TagString             = 8
	TagFieldref           = 9
	TagMethodref          = 10
	TagInterfaceMethodref = 11
	TagNameAndType        = 12
	TagMethodHandle       = 15
	TagMethodType         = 16
	TagDynamic            = 17
	TagInvokeDynamic      = 18
	TagModule             = 19
	TagPackage            = 20
)

// entryLayout describes the encoded shape of one constant pool tag.
// Utf8 is the only variable-length entry; its size is the 2-byte length
// prefix plus the payload.
type entryLayout struct {
	name  string
	size  int // body bytes after the tag byte
	slots int // pool indices consumed
}

// layouts is the single place that knows record sizes. Long and Double
// take two pool slots.
var layouts = map[uint8]entryLayout{
	TagUtf8:               {"Utf8", 2, 1},
	TagInteger:            {"Integer", 4, 1},
	TagFloat:              {"Float", 4, 1},
	TagLong:               {"Long", 8, 2},
	TagDouble:             {"Double", 8, 2},
	TagClass:              {"Class", 2, 1},
	TagString:             {"String", 2, 1},
	TagFieldref:           {"Fieldref", 4, 1},
	TagMethodref:          {"Methodref", 4, 1},
	TagInterfaceMethodref: {"InterfaceMethodref", 4, 1},
	TagNameAndType:        {"NameAndType", 4, 1},
	TagMethodHandle:       {"MethodHandle", 3, 1},
	TagMethodType:         {"MethodType", 2, 1},
	TagDynamic:            {"Dynamic", 4, 1},
	TagInvokeDynamic:      {"InvokeDynamic", 4, 1},
	TagModule:             {"Module", 2, 1},
	TagPackage:            {"Package", 2, 1},
}

// TagName returns the JVMS name of a constant pool tag, or "" if unknown.
func TagName(tag uint8) string {
	return layouts[tag].name
}

// Entry is one constant pool record as seen by Walk.
type Entry struct {
	Index  int    // 1-based pool index
	Tag    uint8
	Offset int    // position of the tag byte
	Size   int    // encoded bytes following the tag byte
	Text   string // decoded payload, Utf8 entries only
}

// PayloadOffset returns the position of the first payload byte of a Utf8
// entry, just past its length prefix.
func (e Entry) PayloadOffset() int {
	return e.Offset + 1 + 2
}

// Slots returns the number of pool indices the entry occupies.
func (e Entry) Slots() int {
	return layouts[e.Tag].slots
}
