package gosaxlex

// TokenType is the kind of a Token.
type TokenType byte

// constants for Token.Kind
const (
	TokenTypeEOF TokenType = iota
	TokenTypeDeclaration
	TokenTypeDocType
	TokenTypeElement
	TokenTypeText
	TokenTypeCDATA
	TokenTypeComment
	TokenTypeProcInst
	TokenTypeClosingTag
)

var tokenTypeNames = [...]string{
	TokenTypeEOF:         "EOF",
	TokenTypeDeclaration: "Declaration",
	TokenTypeDocType:     "DocType",
	TokenTypeElement:     "Element",
	TokenTypeText:        "Text",
	TokenTypeCDATA:       "CDATA",
	TokenTypeComment:     "Comment",
	TokenTypeProcInst:    "ProcInst",
	TokenTypeClosingTag:  "ClosingTag",
}

func (k TokenType) String() string {
	if int(k) < len(tokenTypeNames) {
		return tokenTypeNames[k]
	}
	return "Unknown"
}

// Attr is an attribute of an element.
// Only tokens of type TokenTypeElement can have attributes.
type Attr struct {
	Name  string
	Value string
}

// Token represents the union of all possible token types
// and their respective information.
// The Lexer always hands out a fresh Token, so only the
// fields relevant for its Kind are ever set.
type Token struct {
	Kind TokenType

	// only for TokenTypeElement, TokenTypeClosingTag and TokenTypeDocType
	Name string

	// only for TokenTypeElement, in source order with unique names
	Attr        []Attr
	SelfClosing bool

	// only for TokenTypeText, TokenTypeCDATA, TokenTypeComment and TokenTypeProcInst
	Data string

	// only for TokenTypeProcInst
	Target string

	// only for TokenTypeDeclaration
	Version    string
	Encoding   string
	Standalone string

	// only for TokenTypeDocType
	PublicID string
	SystemID string
}

// IsWhitespace reports whether t is a text token consisting solely
// of tab, line feed, carriage return and space characters.
func (t *Token) IsWhitespace() bool {
	if t.Kind != TokenTypeText {
		return false
	}
	for i := 0; i < len(t.Data); i++ {
		if !isSpace(uint16(t.Data[i])) {
			return false
		}
	}
	return true
}

// AttrValue returns the value of the attribute with the given name.
func (t *Token) AttrValue(name string) (string, bool) {
	for _, a := range t.Attr {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Decoded returns a copy of t with entity and character references
// in text data and attribute values replaced by the characters they stand for.
// All other kinds are returned unchanged.
func (t Token) Decoded() Token {
	switch t.Kind {
	case TokenTypeText:
		t.Data = DecodeEntities(t.Data)
	case TokenTypeElement:
		if len(t.Attr) > 0 {
			attrs := make([]Attr, len(t.Attr))
			for i, a := range t.Attr {
				attrs[i] = Attr{Name: a.Name, Value: DecodeEntities(a.Value)}
			}
			t.Attr = attrs
		}
	}
	return t
}

func isSpace(u uint16) bool {
	return u == ' ' || u == '\t' || u == '\n' || u == '\r'
}
