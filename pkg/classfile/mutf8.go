package classfile

import (
	"fmt"
	"unicode/utf16"
)

// DecodeModifiedUTF8 decodes a CONSTANT_Utf8 payload. Characters are
// encoded as UTF-16 code units in one to three bytes; supplementary
// characters appear as two encoded surrogates and NUL as C0 80.
func DecodeModifiedUTF8(b []byte) (string, error) {
	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch c >> 4 {
		case 0, 1, 2, 3, 4, 5, 6, 7:
			units = append(units, uint16(c))
			i++
		case 12, 13:
			if i+2 > len(b) {
				return "", fmt.Errorf("%w: partial character at end", ErrMalformedUTF8)
			}
			c2 := b[i+1]
			if c2&0xC0 != 0x80 {
				return "", fmt.Errorf("%w: bad continuation byte 0x%02X at %d", ErrMalformedUTF8, c2, i+1)
			}
			units = append(units, uint16(c&0x1F)<<6|uint16(c2&0x3F))
			i += 2
		case 14:
			if i+3 > len(b) {
				return "", fmt.Errorf("%w: partial character at end", ErrMalformedUTF8)
			}
			c2, c3 := b[i+1], b[i+2]
			if c2&0xC0 != 0x80 || c3&0xC0 != 0x80 {
				return "", fmt.Errorf("%w: bad continuation byte near %d", ErrMalformedUTF8, i+1)
			}
			units = append(units, uint16(c&0x0F)<<12|uint16(c2&0x3F)<<6|uint16(c3&0x3F))
			i += 3
		default:
			return "", fmt.Errorf("%w: invalid lead byte 0x%02X at %d", ErrMalformedUTF8, c, i)
		}
	}
	return string(utf16.Decode(units)), nil
}

// EncodeModifiedUTF8 is the inverse of DecodeModifiedUTF8.
func EncodeModifiedUTF8(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, len(units))
	for _, u := range units {
		switch {
		case u != 0 && u < 0x80:
			out = append(out, byte(u))
		case u < 0x800:
			out = append(out, 0xC0|byte(u>>6), 0x80|byte(u&0x3F))
		default:
			out = append(out, 0xE0|byte(u>>12), 0x80|byte(u>>6&0x3F), 0x80|byte(u&0x3F))
		}
	}
	return out
}
