package ini

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	text := "[Player]\nWidth=1920\n"
	cases := []struct {
		name string
		enc  Encoding
		raw  []byte
	}{
		{"plain", EncodingUTF8, []byte(text)},
		{"utf8 bom", EncodingUTF8BOM, append([]byte{0xEF, 0xBB, 0xBF}, text...)},
		{"utf16le", EncodingUTF16LE, utf16(text, false)},
		{"utf16be", EncodingUTF16BE, utf16(text, true)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, enc, err := Decode(tc.raw)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if enc != tc.enc {
				t.Fatalf("encoding = %v, want %v", enc, tc.enc)
			}
			if got != text {
				t.Fatalf("decoded %q, want %q", got, text)
			}
			back, err := Encode(got, enc)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if !bytes.Equal(back, tc.raw) {
				t.Fatalf("round trip mismatch:\n%v\n%v", back, tc.raw)
			}
		})
	}
}

func TestDecodeKeepsNonUTF8Bytes(t *testing.T) {
	raw := []byte("[Player]\nName=Caf\xe9\n")
	text, enc, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if enc != EncodingUTF8 {
		t.Fatalf("unexpected encoding %v", enc)
	}
	back, err := Encode(text, enc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(back, raw) {
		t.Fatalf("bytes not preserved: %q", back)
	}
}

func TestDecodeRejectsMalformedText(t *testing.T) {
	le := utf16("[Player]\nWidth=1920\n", false)
	cases := []struct {
		name string
		raw  []byte
		want string
	}{
		{"utf16le odd length", le[:len(le)-1], "odd byte count"},
		{"utf16be odd length", append(utf16("[Player]\n", true), 'W'), "odd byte count"},
		{"utf16le unpaired surrogate", append(utf16("Name=", false), 0x00, 0xD8, '\n', 0x00), "malformed text"},
		{"utf8 bom invalid byte", append([]byte{0xEF, 0xBB, 0xBF}, "Name=Caf\xe9\n"...), "malformed text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text, _, err := Decode(tc.raw)
			if err == nil {
				t.Fatalf("expected error, decoded %q", text)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
			if tc.want == "malformed text" && !errors.Is(err, ErrMalformedText) {
				t.Fatalf("expected ErrMalformedText, got %v", err)
			}
		})
	}
}

func TestReadFileRejectsTruncatedUTF16(t *testing.T) {
	raw := utf16("[Player]\nWidth=1920\n", false)
	path := filepath.Join(t.TempDir(), "settings.ini")
	if err := os.WriteFile(path, raw[:len(raw)-1], 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(path); err == nil {
		t.Fatal("expected truncated UTF-16 file to be rejected")
	}
}

func utf16(s string, bigEndian bool) []byte {
	var out []byte
	if bigEndian {
		out = append(out, 0xFE, 0xFF)
	} else {
		out = append(out, 0xFF, 0xFE)
	}
	for _, r := range s {
		hi, lo := byte(r>>8), byte(r)
		if bigEndian {
			out = append(out, hi, lo)
		} else {
			out = append(out, lo, hi)
		}
	}
	return out
}
