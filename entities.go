package gosaxlex

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

var standardEntities = [...]struct {
	name        string
	replacement string
}{
	{"amp;", "&"},
	{"lt;", "<"},
	{"gt;", ">"},
	{"apos;", "'"},
	{"quot;", "\""},
}

// DecodeEntities replaces the predefined entities &amp; &lt; &gt; &apos; &quot;
// and numeric character references (&#NNN; and &#xHHH;) by their characters.
// Anything else starting with '&' is kept as is.
func DecodeEntities(s string) string {
	i := strings.IndexByte(s, '&')
	if i < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i >= 0 {
		b.WriteString(s[:i])
		s = s[i:]
		if n, replacement, ok := matchReference(s); ok {
			b.WriteString(replacement)
			s = s[n:]
		} else {
			b.WriteByte('&')
			s = s[1:]
		}
		i = strings.IndexByte(s, '&')
	}
	b.WriteString(s)
	return b.String()
}

// EncodeText escapes s for use as text node content.
// With noDoubleEncoding an '&' that already starts a reference is kept.
func EncodeText(s string, noDoubleEncoding bool) string {
	return encodeEntities(s, noDoubleEncoding, false)
}

// EncodeAttr escapes s for use as a double quoted attribute value.
// Tab, line feed and carriage return become character references
// so that they survive attribute value normalization.
func EncodeAttr(s string, noDoubleEncoding bool) string {
	return encodeEntities(s, noDoubleEncoding, true)
}

func encodeEntities(s string, noDoubleEncoding, attr bool) string {
	var b strings.Builder
	last := 0
	for i := 0; i < len(s); i++ {
		var esc string
		switch s[i] {
		case '&':
			if noDoubleEncoding {
				if _, _, ok := matchReference(s[i:]); ok {
					continue
				}
			}
			esc = "&amp;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		case '"':
			if attr {
				esc = "&quot;"
			}
		case '\t':
			if attr {
				esc = "&#9;"
			}
		case '\n':
			if attr {
				esc = "&#10;"
			}
		case '\r':
			if attr {
				esc = "&#13;"
			}
		}
		if esc == "" {
			continue
		}
		if last == 0 {
			b.Grow(len(s) + 8)
		}
		b.WriteString(s[last:i])
		b.WriteString(esc)
		last = i + 1
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// matchReference reports whether s starts with a predefined entity
// or a numeric character reference, returning its length and replacement.
func matchReference(s string) (int, string, bool) {
	if len(s) < 3 || s[0] != '&' {
		return 0, "", false
	}
	if s[1] != '#' {
		for _, e := range standardEntities {
			if strings.HasPrefix(s[1:], e.name) {
				return 1 + len(e.name), e.replacement, true
			}
		}
		return 0, "", false
	}
	base := 10
	start := 2
	if s[2] == 'x' {
		base = 16
		start = 3
	}
	end := start
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == start || end == len(s) || s[end] != ';' {
		return 0, "", false
	}
	v, err := strconv.ParseUint(s[start:end], base, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return 0, "", false
	}
	return end + 1, string(rune(v)), true
}

func isDigit(b byte, base int) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case base == 16 && b >= 'a' && b <= 'f':
		return true
	case base == 16 && b >= 'A' && b <= 'F':
		return true
	}
	return false
}
