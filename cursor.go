package gosaxlex

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// escapeBase is the first of the lone low surrogates DC80..DCFF that
// stand for the bytes 0x80..0xFF of a string that is not valid UTF-8.
const escapeBase = 0xDC80

// cursor walks a complete input of UTF-16 code units.
type cursor struct {
	buf []uint16
	r   int
	// escaped is set when buf was built by encodeUTF16 and
	// surrogates DC80..DCFF stand for raw bytes.
	escaped bool
}

func (thiz *cursor) reset(buf []uint16, escaped bool) {
	thiz.buf = buf
	thiz.r = 0
	thiz.escaped = escaped
}

func (thiz *cursor) eof() bool {
	return thiz.r >= len(thiz.buf)
}

func (thiz *cursor) readUnit() (uint16, bool) {
	if thiz.r >= len(thiz.buf) {
		return 0, false
	}
	u := thiz.buf[thiz.r]
	thiz.r++
	return u, true
}

func (thiz *cursor) unreadUnit() {
	thiz.r--
}

func (thiz *cursor) peekUnit() (uint16, bool) {
	if thiz.r >= len(thiz.buf) {
		return 0, false
	}
	return thiz.buf[thiz.r], true
}

func (thiz *cursor) discard(n int) {
	thiz.r += n
	if thiz.r > len(thiz.buf) {
		thiz.r = len(thiz.buf)
	}
}

// hasPrefix reports whether the unread input starts with the ASCII literal lit.
func (thiz *cursor) hasPrefix(lit string) bool {
	if thiz.r+len(lit) > len(thiz.buf) {
		return false
	}
	for i := 0; i < len(lit); i++ {
		if thiz.buf[thiz.r+i] != uint16(lit[i]) {
			return false
		}
	}
	return true
}

func (thiz *cursor) skipIfPrefix(lit string) bool {
	if !thiz.hasPrefix(lit) {
		return false
	}
	thiz.r += len(lit)
	return true
}

func (thiz *cursor) skipWhitespaces() {
	for thiz.r < len(thiz.buf) && isSpace(thiz.buf[thiz.r]) {
		thiz.r++
	}
}

// takeUntil consumes units up to, but not including, the first unit equal to
// stop, or any whitespace when stopAtSpace is set, or the end of input.
func (thiz *cursor) takeUntil(stop uint16, stopAtSpace bool) string {
	return thiz.takeUntil2(stop, stop, stopAtSpace)
}

func (thiz *cursor) takeUntil2(stop1, stop2 uint16, stopAtSpace bool) string {
	i := thiz.r
	for thiz.r < len(thiz.buf) {
		u := thiz.buf[thiz.r]
		if u == stop1 || u == stop2 || (stopAtSpace && isSpace(u)) {
			break
		}
		thiz.r++
	}
	return thiz.text(i, thiz.r)
}

// takeUntilPrefix consumes units up to the first occurrence of the ASCII literal
// lit, or whitespace when stopAtSpace is set, or the end of input.
func (thiz *cursor) takeUntilPrefix(lit string, stopAtSpace bool) string {
	i := thiz.r
	for thiz.r < len(thiz.buf) {
		if thiz.hasPrefix(lit) || (stopAtSpace && isSpace(thiz.buf[thiz.r])) {
			break
		}
		thiz.r++
	}
	return thiz.text(i, thiz.r)
}

func (thiz *cursor) text(i, j int) string {
	if j <= i {
		return ""
	}
	return decodeUTF16(thiz.buf[i:j], thiz.escaped)
}

// encodeUTF16 converts s into UTF-16 code units. Every byte of s that is
// not part of a valid UTF-8 sequence becomes a lone surrogate from DC80..DCFF.
func encodeUTF16(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && w == 1 {
			units = append(units, escapeBase+uint16(s[i]-0x80))
			i++
			continue
		}
		units = utf16.AppendRune(units, r)
		i += w
	}
	return units
}

// decodeUTF16 converts units into a string without replacing anything.
// A lone surrogate is written in its three byte generalized UTF-8 form,
// or as the raw byte it stands for when escaped is set.
// Either way the result is not valid UTF-8 and fails IsLegalChar.
func decodeUTF16(units []uint16, escaped bool) string {
	var b strings.Builder
	b.Grow(len(units))
	for i := 0; i < len(units); {
		r, n := codepointAt(units, i)
		i += n
		switch {
		case r < 0xD800 || r > 0xDFFF:
			b.WriteRune(r)
		case escaped && r >= escapeBase && r <= escapeBase+0x7F:
			b.WriteByte(byte(r-escapeBase) + 0x80)
		default:
			b.WriteByte(0xE0 | byte(r>>12))
			b.WriteByte(0x80 | byte(r>>6)&0x3F)
			b.WriteByte(0x80 | byte(r)&0x3F)
		}
	}
	return b.String()
}
