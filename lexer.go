package gosaxlex

import (
	"fmt"
	"iter"
	"log/slog"
)

// Lexer splits a complete XML document into Token values.
// A Lexer is not safe for concurrent use.
type Lexer struct {
	cur                    cursor
	skipWhitespaceOnlyText bool
	logger                 *slog.Logger
}

// NewLexer creates a new Lexer over s.
// Bytes of s that are not valid UTF-8 are kept as they are in token strings.
func NewLexer(s string, opts ...Option) *Lexer {
	return newLexer(encodeUTF16(s), true, opts)
}

// NewLexerUTF16 creates a new Lexer over UTF-16 code units.
// The Lexer does not modify units. An unpaired surrogate shows up in
// token strings in its generalized UTF-8 form, which IsLegalChar rejects.
func NewLexerUTF16(units []uint16, opts ...Option) *Lexer {
	return newLexer(units, false, opts)
}

func newLexer(units []uint16, escaped bool, opts []Option) *Lexer {
	var cfg lexerConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	lex := &Lexer{
		skipWhitespaceOnlyText: cfg.skipWhitespaceOnlyText,
		logger:                 cfg.logger,
	}
	lex.cur.reset(units, escaped)
	return lex
}

// Tokenize collects all tokens of s, excluding the final EOF token.
func Tokenize(s string, opts ...Option) ([]Token, error) {
	var tokens []Token
	for t, err := range NewLexer(s, opts...).All() {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// Reset resets the Lexer to the beginning of s.
func (thiz *Lexer) Reset(s string) {
	thiz.cur.reset(encodeUTF16(s), true)
}

// All returns the tokens of the input from its beginning.
// Every iteration rewinds the Lexer first. The sequence ends
// before the EOF token, or right after yielding an error.
func (thiz *Lexer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		thiz.cur.r = 0
		for {
			t, err := thiz.NextToken()
			if err != nil {
				yield(Token{}, err)
				return
			}
			if t.Kind == TokenTypeEOF {
				return
			}
			if !yield(t, nil) {
				return
			}
		}
	}
}

// NextToken decodes the next Token.
// At the end of input it returns a token of kind TokenTypeEOF, every time it is called.
func (thiz *Lexer) NextToken() (Token, error) {
	for {
		t, err := thiz.nextToken()
		if err != nil {
			if thiz.logger != nil {
				thiz.logger.Debug("malformed xml", slog.Int("offset", thiz.cur.r), slog.Any("err", err))
			}
			return Token{}, err
		}
		if thiz.skipWhitespaceOnlyText && t.IsWhitespace() {
			continue
		}
		return t, nil
	}
}

func (thiz *Lexer) nextToken() (Token, error) {
	u, ok := thiz.cur.readUnit()
	if !ok {
		return Token{Kind: TokenTypeEOF}, nil
	}
	if u == '<' {
		return thiz.decodeMarkup()
	}
	thiz.cur.unreadUnit()
	return thiz.decodeText(), nil
}

// decodeMarkup dispatches on the unit following '<'.
func (thiz *Lexer) decodeMarkup() (Token, error) {
	u, ok := thiz.cur.readUnit()
	if !ok {
		return Token{}, thiz.syntaxError("missing opening element tag end symbol `>`")
	}
	switch u {
	case '?':
		if thiz.cur.hasPrefix("xml") {
			if n, ok := thiz.unitAt(3); !ok || isSpace(n) || n == '?' {
				thiz.cur.discard(3)
				return thiz.decodeDeclaration()
			}
		}
		return thiz.decodeProcInst()
	case '!':
		switch {
		case thiz.cur.skipIfPrefix("--"):
			return thiz.decodeComment()
		case thiz.cur.skipIfPrefix("[CDATA["):
			return thiz.decodeCDATA()
		case thiz.cur.skipIfPrefix("DOCTYPE"):
			return thiz.decodeDocType()
		}
		return Token{}, thiz.syntaxError("invalid '!' in opening tag")
	case '/':
		return thiz.decodeClosingTag()
	default:
		thiz.cur.unreadUnit()
		return thiz.decodeElement()
	}
}

func (thiz *Lexer) unitAt(offset int) (uint16, bool) {
	i := thiz.cur.r + offset
	if i >= len(thiz.cur.buf) {
		return 0, false
	}
	return thiz.cur.buf[i], true
}

func (thiz *Lexer) decodeText() Token {
	i := thiz.cur.r
	n := indexOpenAngle(thiz.cur.buf[i:])
	if n < 0 {
		thiz.cur.r = len(thiz.cur.buf)
	} else {
		thiz.cur.r = i + n
	}
	return Token{Kind: TokenTypeText, Data: thiz.cur.text(i, thiz.cur.r)}
}

func (thiz *Lexer) decodeDeclaration() (Token, error) {
	t := Token{Kind: TokenTypeDeclaration}
	for {
		thiz.cur.skipWhitespaces()
		if thiz.cur.eof() {
			return Token{}, thiz.syntaxError("missing declaration end symbol `?>`")
		}
		if thiz.cur.skipIfPrefix("?>") {
			return t, nil
		}
		start := thiz.cur.r
		name, value, err := thiz.scanAttribute("missing declaration end symbol `?>`")
		if err != nil {
			return Token{}, err
		}
		switch name {
		case "version":
			t.Version = value
		case "encoding":
			t.Encoding = value
		case "standalone":
			t.Standalone = value
		default:
			thiz.cur.r = start
			return Token{}, thiz.syntaxError(fmt.Sprintf("invalid declaration parameter %q", name))
		}
	}
}

func (thiz *Lexer) decodeDocType() (Token, error) {
	c := &thiz.cur
	c.skipWhitespaces()
	t := Token{Kind: TokenTypeDocType, Name: c.takeUntil2('[', '>', true)}
	c.skipWhitespaces()
	var err error
	if c.skipIfPrefix("PUBLIC") {
		if t.PublicID, err = thiz.quotedString(); err != nil {
			return Token{}, err
		}
		if t.SystemID, err = thiz.quotedString(); err != nil {
			return Token{}, err
		}
	} else if c.skipIfPrefix("SYSTEM") {
		if t.SystemID, err = thiz.quotedString(); err != nil {
			return Token{}, err
		}
	}
	c.skipWhitespaces()
	c.takeUntil2('[', '>', false)
	if c.skipIfPrefix("[") {
		// the internal subset is skipped, not interpreted
		c.takeUntil(']', false)
		if !c.skipIfPrefix("]") {
			return Token{}, thiz.syntaxError("missing end bracket of DTD internal subset")
		}
		c.skipWhitespaces()
	}
	if !c.skipIfPrefix(">") {
		return Token{}, thiz.syntaxError("missing doctype end symbol `>`")
	}
	return t, nil
}

func (thiz *Lexer) decodeProcInst() (Token, error) {
	c := &thiz.cur
	c.skipWhitespaces()
	target := c.takeUntilPrefix("?>", true)
	c.skipWhitespaces()
	data := c.takeUntilPrefix("?>", false)
	if !c.skipIfPrefix("?>") {
		return Token{}, thiz.syntaxError("missing processing instruction end symbol `?>`")
	}
	return Token{Kind: TokenTypeProcInst, Target: target, Data: data}, nil
}

func (thiz *Lexer) decodeComment() (Token, error) {
	data := thiz.cur.takeUntilPrefix("-->", false)
	if !thiz.cur.skipIfPrefix("-->") {
		return Token{}, thiz.syntaxError("missing comment end symbol `-->`")
	}
	return Token{Kind: TokenTypeComment, Data: data}, nil
}

func (thiz *Lexer) decodeCDATA() (Token, error) {
	data := thiz.cur.takeUntilPrefix("]]>", false)
	if !thiz.cur.skipIfPrefix("]]>") {
		return Token{}, thiz.syntaxError("missing CDATA end symbol `]]>`")
	}
	return Token{Kind: TokenTypeCDATA, Data: data}, nil
}

func (thiz *Lexer) decodeElement() (Token, error) {
	c := &thiz.cur
	c.skipWhitespaces()
	t := Token{Kind: TokenTypeElement, Name: c.takeUntil2('>', '/', true)}
	for {
		c.skipWhitespaces()
		if c.eof() {
			return Token{}, thiz.syntaxError("missing opening element tag end symbol `>`")
		}
		if c.skipIfPrefix(">") {
			return t, nil
		}
		if c.skipIfPrefix("/>") {
			t.SelfClosing = true
			return t, nil
		}
		name, value, err := thiz.scanAttribute("missing opening element tag end symbol `>`")
		if err != nil {
			return Token{}, err
		}
		t.Attr = setAttr(t.Attr, name, value)
	}
}

// setAttr appends the attribute, or overwrites the value of an
// earlier attribute of the same name in place.
func setAttr(attrs []Attr, name, value string) []Attr {
	for i := range attrs {
		if attrs[i].Name == name {
			attrs[i].Value = value
			return attrs
		}
	}
	return append(attrs, Attr{Name: name, Value: value})
}

func (thiz *Lexer) decodeClosingTag() (Token, error) {
	c := &thiz.cur
	c.skipWhitespaces()
	name := c.takeUntil('>', true)
	c.skipWhitespaces()
	if !c.skipIfPrefix(">") {
		return Token{}, thiz.syntaxError("missing closing element tag end symbol `>`")
	}
	return Token{Kind: TokenTypeClosingTag, Name: name}, nil
}

type attrPhase byte

const (
	phaseName attrPhase = iota
	phaseValue
)

// attrScan accumulates a single name="value" pair as offsets into the input.
type attrScan struct {
	phase      attrPhase
	nameStart  int
	nameEnd    int
	valueStart int
	quote      uint16
}

// scanAttribute parses a single attribute or declaration parameter.
// After it returns, the cursor is on the unit after the closing quote.
// Running out of input before the value reports endMsg.
func (thiz *Lexer) scanAttribute(endMsg string) (string, string, error) {
	c := &thiz.cur
	c.skipWhitespaces()
	s := attrScan{phase: phaseName, nameStart: c.r}
	for {
		switch s.phase {
		case phaseName:
			u, ok := c.readUnit()
			if ok && u != '=' && u != '>' && !isSpace(u) {
				continue
			}
			if ok {
				c.unreadUnit()
			}
			s.nameEnd = c.r
			c.skipWhitespaces()
			if c.eof() {
				return "", "", thiz.syntaxError(endMsg)
			}
			if !c.skipIfPrefix("=") {
				return "", "", thiz.syntaxError("missing equals sign before attribute value")
			}
			c.skipWhitespaces()
			if c.eof() {
				return "", "", thiz.syntaxError(endMsg)
			}
			q, ok := c.peekUnit()
			if !ok || (q != '"' && q != '\'') {
				return "", "", thiz.syntaxError("missing start quote character before quoted value")
			}
			c.discard(1)
			s.quote = q
			s.valueStart = c.r
			s.phase = phaseValue
		case phaseValue:
			u, ok := c.readUnit()
			if !ok {
				return "", "", thiz.syntaxError("missing end quote character after quoted value")
			}
			if u == s.quote {
				return c.text(s.nameStart, s.nameEnd), c.text(s.valueStart, c.r-1), nil
			}
		}
	}
}

// quotedString parses a single string in single or double quotes.
func (thiz *Lexer) quotedString() (string, error) {
	c := &thiz.cur
	c.skipWhitespaces()
	q, ok := c.peekUnit()
	if !ok || (q != '"' && q != '\'') {
		return "", thiz.syntaxError("missing start quote character before quoted value")
	}
	c.discard(1)
	value := c.takeUntil(q, false)
	if !c.skipIfPrefix(string(rune(q))) {
		return "", thiz.syntaxError("missing end quote character after quoted value")
	}
	return value, nil
}

func (thiz *Lexer) syntaxError(msg string) error {
	return newSyntaxError(&thiz.cur, thiz.cur.r, msg)
}
