package gosaxlex

import (
	"unicode"
	"unicode/utf8"
)

// Version selects the XML character set used by the legality checks.
type Version string

const (
	Version10 Version = "1.0"
	Version11 Version = "1.1"
)

// invalidCodepoint stands for input that does not decode to a
// Unicode scalar value. No range table contains it.
const invalidCodepoint rune = -1

// codepointAt decodes the codepoint starting at units[i].
// A high surrogate followed by a low surrogate is combined into one
// codepoint of width 2. Anything else, including an unpaired surrogate,
// is returned as is with width 1.
func codepointAt(units []uint16, i int) (rune, int) {
	hi := units[i]
	if hi >= 0xD800 && hi <= 0xDBFF && i+1 < len(units) {
		lo := units[i+1]
		if lo >= 0xDC00 && lo <= 0xDFFF {
			return (rune(hi)-0xD800)*0x400 + (rune(lo) - 0xDC00) + 0x10000, 2
		}
	}
	return rune(hi), 1
}

// codepointInString decodes the codepoint starting at s[i].
// Invalid UTF-8, which covers encoded surrogates, yields invalidCodepoint.
func codepointInString(s string, i int) (rune, int) {
	if s[i] < utf8.RuneSelf {
		return rune(s[i]), 1
	}
	r, size := utf8.DecodeRuneInString(s[i:])
	if r == utf8.RuneError && size == 1 {
		return invalidCodepoint, 1
	}
	return r, size
}

var nameStartByteLUT = [utf8.RuneSelf]bool{
	':': true,
	'A': true, 'B': true, 'C': true, 'D': true, 'E': true, 'F': true, 'G': true,
	'H': true, 'I': true, 'J': true, 'K': true, 'L': true, 'M': true, 'N': true,
	'O': true, 'P': true, 'Q': true, 'R': true, 'S': true, 'T': true, 'U': true,
	'V': true, 'W': true, 'X': true, 'Y': true, 'Z': true,
	'_': true,
	'a': true, 'b': true, 'c': true, 'd': true, 'e': true, 'f': true, 'g': true,
	'h': true, 'i': true, 'j': true, 'k': true, 'l': true, 'm': true, 'n': true,
	'o': true, 'p': true, 'q': true, 'r': true, 's': true, 't': true, 'u': true,
	'v': true, 'w': true, 'x': true, 'y': true, 'z': true,
}

// NameStartChar of XML 1.0 fifth edition, section 2.3.
var nameStartTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3A, Hi: 0x3A, Stride: 1},
		{Lo: 0x41, Hi: 0x5A, Stride: 1},
		{Lo: 0x5F, Hi: 0x5F, Stride: 1},
		{Lo: 0x61, Hi: 0x7A, Stride: 1},
		{Lo: 0xC0, Hi: 0xD6, Stride: 1},
		{Lo: 0xD8, Hi: 0xF6, Stride: 1},
		{Lo: 0xF8, Hi: 0x2FF, Stride: 1},
		{Lo: 0x370, Hi: 0x37D, Stride: 1},
		{Lo: 0x37F, Hi: 0x1FFF, Stride: 1},
		{Lo: 0x200C, Hi: 0x200D, Stride: 1},
		{Lo: 0x2070, Hi: 0x218F, Stride: 1},
		{Lo: 0x2C00, Hi: 0x2FEF, Stride: 1},
		{Lo: 0x3001, Hi: 0xD7FF, Stride: 1},
		{Lo: 0xF900, Hi: 0xFDCF, Stride: 1},
		{Lo: 0xFDF0, Hi: 0xFFFD, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10000, Hi: 0xEFFFF, Stride: 1},
	},
	LatinOffset: 6,
}

// NameChar minus NameStartChar.
var nameCharTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2D, Hi: 0x2E, Stride: 1},
		{Lo: 0x30, Hi: 0x39, Stride: 1},
		{Lo: 0xB7, Hi: 0xB7, Stride: 1},
		{Lo: 0x300, Hi: 0x36F, Stride: 1},
		{Lo: 0x203F, Hi: 0x2040, Stride: 1},
	},
	LatinOffset: 3,
}

// Char of XML 1.0.
var legalChar10Table = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x9, Hi: 0xA, Stride: 1},
		{Lo: 0xD, Hi: 0xD, Stride: 1},
		{Lo: 0x20, Hi: 0xD7FF, Stride: 1},
		{Lo: 0xE000, Hi: 0xFFFD, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10000, Hi: 0x10FFFF, Stride: 1},
	},
	LatinOffset: 2,
}

// Char of XML 1.1.
var legalChar11Table = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x1, Hi: 0xD7FF, Stride: 1},
		{Lo: 0xE000, Hi: 0xFFFD, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10000, Hi: 0x10FFFF, Stride: 1},
	},
}

func isNameStartChar(r rune) bool {
	if r < 0 {
		return false
	}
	if r < utf8.RuneSelf {
		return nameStartByteLUT[r]
	}
	return unicode.Is(nameStartTable, r)
}

func isNameChar(r rune) bool {
	if r < 0 {
		return false
	}
	return isNameStartChar(r) || unicode.Is(nameCharTable, r)
}

func isLegalChar(r rune, version Version) bool {
	if r < 0 {
		return false
	}
	if version == Version11 {
		return unicode.Is(legalChar11Table, r)
	}
	return unicode.Is(legalChar10Table, r)
}

func isPubidChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	switch r {
	case ' ', '\r', '\n', '\'', '(', ')', '+', ',', '.', '/', ':', '=', '?',
		';', '!', '*', '#', '@', '$', '_', '%', '-':
		return true
	}
	return false
}
