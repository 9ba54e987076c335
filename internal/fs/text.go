package fs

import (
	"golang.org/x/text/encoding/unicode"
)

type unicodeEncoding int

const (
	encodingUnknown unicodeEncoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

func detectUnicodeEncoding(sample []byte) unicodeEncoding {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return encodingUTF8BOM
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return encodingUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return encodingUTF16BE
		}
	}
	return encodingUnknown
}

// DecodeText converts BOM-marked content to plain UTF-8 so it can be split on
// byte delimiters. Content without a BOM is returned unchanged, as is UTF-16
// that fails to decode.
func DecodeText(content []byte) []byte {
	switch detectUnicodeEncoding(content) {
	case encodingUTF8BOM:
		return content[3:]
	case encodingUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian)
	case encodingUTF16BE:
		return decodeUTF16(content, unicode.BigEndian)
	default:
		return content
	}
}

func decodeUTF16(content []byte, endian unicode.Endianness) []byte {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, err := decoder.Bytes(content)
	if err != nil {
		return content
	}
	return out
}
