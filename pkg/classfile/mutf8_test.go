package classfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeModifiedUTF8(t *testing.T) {
	testCases := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", nil, ""},
		{"ascii", []byte("fetchJar"), "fetchJar"},
		{"two byte", []byte{0x63, 0x61, 0x66, 0xC3, 0xA9}, "café"},
		{"encoded nul", []byte{'a', 0xC0, 0x80, 'b'}, "a\x00b"},
		{"raw nul accepted", []byte{'a', 0x00}, "a\x00"},
		{"three byte", []byte{0xE2, 0x82, 0xAC}, "€"},
		{"surrogate pair", []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}, "\U0001F600"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeModifiedUTF8(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeModifiedUTF8Errors(t *testing.T) {
	testCases := []struct {
		name string
		in   []byte
	}{
		{"continuation as lead", []byte{0x80}},
		{"four byte lead", []byte{0xF0, 0x9F, 0x98, 0x80}},
		{"cut two byte", []byte{'a', 0xC3}},
		{"cut three byte", []byte{0xE2, 0x82}},
		{"bad continuation", []byte{0xC3, 0x41}},
		{"bad third byte", []byte{0xE2, 0x82, 0x41}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeModifiedUTF8(tc.in)
			assert.ErrorIs(t, err, ErrMalformedUTF8)
		})
	}
}

func TestEncodeModifiedUTF8(t *testing.T) {
	assert.Equal(t, []byte("fetchJar"), EncodeModifiedUTF8("fetchJar"))
	assert.Equal(t, []byte{0xC0, 0x80}, EncodeModifiedUTF8("\x00"))
	assert.Equal(t, []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}, EncodeModifiedUTF8("\U0001F600"))

	for _, s := range []string{"", "hudson/remoting/RemoteClassLoader$ClassLoaderProxy", "naïve €\x00\U0001F600"} {
		got, err := DecodeModifiedUTF8(EncodeModifiedUTF8(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}
