package runtime

import (
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"
)

// utf16Encoder transcodes UTF-8 byte-strings to UTF-16 the same way the
// teacher's string builtins reach for golang.org/x/text whenever an
// encoding-aware view of a string is needed, rather than hand-rolling
// surrogate-pair arithmetic on top of unicode/utf8.
var utf16Encoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()

// utf16Units returns s as a sequence of UTF-16 code units, the unit the
// spec's String.length and character-indexing rules are defined in terms of.
func utf16Units(s string) []uint16 {
	encoded, err := utf16Encoder.String(s)
	if err != nil {
		// Lone surrogates or encode failures fall back to a direct rune
		// transcode; utf16.Encode never errors.
		return utf16.Encode([]rune(s))
	}
	units := make([]uint16, 0, len(encoded)/2)
	for i := 0; i+1 < len(encoded); i += 2 {
		units = append(units, uint16(encoded[i])<<8|uint16(encoded[i+1]))
	}
	return units
}

// utf16UnitString renders a single UTF-16 code unit back to a one-character
// string, matching spec's get_member(string, i) contract.
func utf16UnitString(units []uint16, i int) string {
	r := utf16.Decode(units[i : i+1])
	return string(r)
}
