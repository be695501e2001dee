package gosaxlex

// codepoints is satisfied by the two input representations
// the validators accept: Go strings and UTF-16 code units.
type codepoints interface {
	~string | ~[]uint16
}

// IsName reports whether s matches the XML Name production.
func IsName(s string) bool {
	return matchName(s, codepointInString)
}

// IsNCName reports whether s matches the XML Namespaces NCName production.
func IsNCName(s string) bool {
	return matchQName(s, codepointInString, false)
}

// IsQName reports whether s matches the XML Namespaces QName production.
func IsQName(s string) bool {
	return matchQName(s, codepointInString, true)
}

// IsLegalChar reports whether every character of s is a legal
// XML character of the given version.
func IsLegalChar(s string, version Version) bool {
	return matchLegalChars(s, codepointInString, version)
}

// IsPubidChar reports whether every character of s may appear
// in a DOCTYPE public identifier.
func IsPubidChar(s string) bool {
	return matchPubidChars(s, codepointInString)
}

// IsNameUTF16 is IsName over UTF-16 code units.
func IsNameUTF16(u []uint16) bool {
	return matchName(u, codepointAt)
}

// IsNCNameUTF16 is IsNCName over UTF-16 code units.
func IsNCNameUTF16(u []uint16) bool {
	return matchQName(u, codepointAt, false)
}

// IsQNameUTF16 is IsQName over UTF-16 code units.
func IsQNameUTF16(u []uint16) bool {
	return matchQName(u, codepointAt, true)
}

// IsLegalCharUTF16 is IsLegalChar over UTF-16 code units.
// Unpaired surrogates are never legal.
func IsLegalCharUTF16(u []uint16, version Version) bool {
	return matchLegalChars(u, codepointAt, version)
}

// IsPubidCharUTF16 is IsPubidChar over UTF-16 code units.
func IsPubidCharUTF16(u []uint16) bool {
	return matchPubidChars(u, codepointAt)
}

// ValidateText returns a *CharError unless every character
// of s is legal in the given XML version.
// debug is appended to the error message when not empty.
func ValidateText(s string, version Version, debug string) error {
	if !IsLegalChar(s, version) {
		return &CharError{What: "string", Value: s, Debug: debug}
	}
	return nil
}

// ValidateName returns a *CharError unless s is a Name made of
// characters legal in the given XML version.
func ValidateName(s string, version Version, debug string) error {
	if !IsLegalChar(s, version) || !IsName(s) {
		return &CharError{What: "name", Value: s, Debug: debug}
	}
	return nil
}

// ValidatePubID returns a *CharError unless s consists of PubidChars only.
func ValidatePubID(s string, debug string) error {
	if !IsPubidChar(s) {
		return &CharError{What: "public identifier", Value: s, Debug: debug}
	}
	return nil
}

func matchName[S codepoints](s S, decode func(S, int) (rune, int)) bool {
	if len(s) == 0 {
		return false
	}
	r, i := decode(s, 0)
	if !isNameStartChar(r) {
		return false
	}
	for i < len(s) {
		var w int
		r, w = decode(s, i)
		if !isNameChar(r) {
			return false
		}
		i += w
	}
	return true
}

// matchQName matches NCName, or QName when allowPrefix is set.
func matchQName[S codepoints](s S, decode func(S, int) (rune, int), allowPrefix bool) bool {
	partStart := true
	prefixed := false
	for i := 0; i < len(s); {
		r, w := decode(s, i)
		i += w
		if r == ':' {
			if !allowPrefix || prefixed || partStart {
				return false
			}
			prefixed = true
			partStart = true
			continue
		}
		if partStart {
			if !isNameStartChar(r) {
				return false
			}
			partStart = false
		} else if !isNameChar(r) {
			return false
		}
	}
	return !partStart
}

func matchLegalChars[S codepoints](s S, decode func(S, int) (rune, int), version Version) bool {
	for i := 0; i < len(s); {
		r, w := decode(s, i)
		if !isLegalChar(r, version) {
			return false
		}
		i += w
	}
	return true
}

func matchPubidChars[S codepoints](s S, decode func(S, int) (rune, int)) bool {
	for i := 0; i < len(s); {
		r, w := decode(s, i)
		if !isPubidChar(r) {
			return false
		}
		i += w
	}
	return true
}
