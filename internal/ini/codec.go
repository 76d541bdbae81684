package ini

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies how an INI file was stored on disk.
type Encoding int

const (
	EncodingUTF8 Encoding = iota
	EncodingUTF8BOM
	EncodingUTF16LE
	EncodingUTF16BE
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8BOM:
		return "utf-8 (bom)"
	case EncodingUTF16LE:
		return "utf-16le"
	case EncodingUTF16BE:
		return "utf-16be"
	default:
		return "utf-8"
	}
}

// DetectEncoding inspects the byte-order mark. Files without one are treated
// as UTF-8 and passed through byte-for-byte, even when they are not valid UTF-8.
func DetectEncoding(raw []byte) Encoding {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return EncodingUTF8BOM
	case bytes.HasPrefix(raw, bomUTF16LE):
		return EncodingUTF16LE
	case bytes.HasPrefix(raw, bomUTF16BE):
		return EncodingUTF16BE
	default:
		return EncodingUTF8
	}
}

// Decode returns the file text without its byte-order mark. Files with a
// byte-order mark must decode losslessly: a truncated UTF-16 code unit, an
// unpaired surrogate or an invalid UTF-8 sequence is an error rather than a
// silent U+FFFD that a later save would write back.
func Decode(raw []byte) (string, Encoding, error) {
	enc := DetectEncoding(raw)
	codec := textEncoding(enc)
	if codec == nil {
		return string(raw), enc, nil
	}
	if (enc == EncodingUTF16LE || enc == EncodingUTF16BE) && len(raw)%2 != 0 {
		return "", enc, fmt.Errorf("decode %s: odd byte count %d", enc, len(raw))
	}
	out, err := codec.NewDecoder().Bytes(raw)
	if err != nil {
		return "", enc, fmt.Errorf("decode %s: %w", enc, err)
	}
	back, err := codec.NewEncoder().Bytes(out)
	if err != nil || !bytes.Equal(back, raw) {
		return "", enc, fmt.Errorf("decode %s: %w", enc, ErrMalformedText)
	}
	return string(out), enc, nil
}

// ErrMalformedText reports bytes that are not valid in the detected encoding.
var ErrMalformedText = errors.New("malformed text")

// Encode converts text back into the encoding it was read with, restoring the byte-order mark.
func Encode(text string, enc Encoding) ([]byte, error) {
	codec := textEncoding(enc)
	if codec == nil {
		return []byte(text), nil
	}
	out, err := codec.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", enc, err)
	}
	return out, nil
}

func textEncoding(enc Encoding) encoding.Encoding {
	switch enc {
	case EncodingUTF8BOM:
		return unicode.UTF8BOM
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	default:
		return nil
	}
}
