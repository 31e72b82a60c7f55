package wslmanager

// This file contains the decoding of wsl.exe console output.

import (
	"encoding/binary"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"
)

// DecodeOutput converts raw wsl.exe output to text. wsl.exe writes to the
// console in UTF-16LE with no byte-order mark. The returned text uses "\n"
// as its only line terminator.
//
// A *DecodeError is returned if the bytes are not valid UTF-16LE: an odd
// length or an unpaired surrogate.
func DecodeOutput(raw []byte) (string, error) {
	if err := validateUTF16LE(raw); err != nil {
		return "", err
	}

	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(raw)
	if err != nil {
		return "", &DecodeError{Reason: err.Error()}
	}

	text := strings.TrimPrefix(string(out), "\uFEFF")
	return normalizeNewlines(text), nil
}

// validateUTF16LE checks code unit pairing without allocating. The decoder
// alone would silently replace invalid sequences with U+FFFD.
func validateUTF16LE(raw []byte) error {
	if len(raw)%2 != 0 {
		return &DecodeError{Offset: len(raw) - 1, Reason: "odd number of bytes"}
	}

	for i := 0; i < len(raw); i += 2 {
		u := rune(binary.LittleEndian.Uint16(raw[i:]))
		if !utf16.IsSurrogate(u) {
			continue
		}
		if u >= 0xDC00 {
			return &DecodeError{Offset: i, Reason: "unpaired low surrogate"}
		}
		if i+2 >= len(raw) {
			return &DecodeError{Offset: i, Reason: "high surrogate at end of input"}
		}
		next := rune(binary.LittleEndian.Uint16(raw[i+2:]))
		if next < 0xDC00 || next > 0xDFFF {
			return &DecodeError{Offset: i, Reason: "unpaired high surrogate"}
		}
		i += 2
	}

	return nil
}

// normalizeNewlines turns "\r\n" and lone "\r" into "\n".
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// decodeMessage is a lenient decoder for error messages: it decodes UTF-16LE
// when the bytes look like it, and returns them as they are otherwise.
func decodeMessage(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	if looksLikeUTF16LE(raw) {
		if s, err := DecodeOutput(raw); err == nil {
			return s
		}
	}
	return normalizeNewlines(string(raw))
}

// looksLikeUTF16LE guesses whether mostly-ASCII text was written as UTF-16LE,
// in which case every odd byte is zero.
func looksLikeUTF16LE(raw []byte) bool {
	if len(raw)%2 != 0 {
		return false
	}
	zeros := 0
	for i := 1; i < len(raw); i += 2 {
		if raw[i] == 0 {
			zeros++
		}
	}
	return zeros*2 >= len(raw)/2
}
