package gosaxlex_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/HBTGmbH/gosaxlex"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var startNameRunes = []rune("_abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
var restNameRunes = []rune("0123456789-_.abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
var stringRunes = []rune("/:+*#.!§$%&/[]=?`´'0123456789-_abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
var textRunes = []rune("\"/:+*#'.!§$%&[]=?`´'0123456789-_abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
var wordRunes = []rune("0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
var everythingRunes = []rune("<> \t\n\r\"/:+*#'.!§$%&[]=?`´'0123456789-_abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

func randRunes(r *rand.Rand, set []rune, minLen, maxLen int) string {
	c := minLen + r.Intn(maxLen-minLen+1)
	b := make([]rune, c)
	for i := 0; i < c; i++ {
		b[i] = set[r.Intn(len(set))]
	}
	return string(b)
}

func randName(r *rand.Rand) string {
	return randRunes(r, startNameRunes, 1, 1) + randRunes(r, restNameRunes, 0, 9)
}

// docBuilder writes a random document and records the tokens
// a Lexer is expected to produce for it.
type docBuilder struct {
	r    *rand.Rand
	b    strings.Builder
	want []gosaxlex.Token
}

func (d *docBuilder) emit(s string, t gosaxlex.Token) {
	d.b.WriteString(s)
	if n := len(d.want); t.Kind == gosaxlex.TokenTypeText && n > 0 && d.want[n-1].Kind == gosaxlex.TokenTypeText {
		d.want[n-1].Data += t.Data
		return
	}
	d.want = append(d.want, t)
}

func (d *docBuilder) document() {
	if d.r.Intn(2) == 0 {
		d.emit(`<?xml version="1.0"?>`, gosaxlex.Token{Kind: gosaxlex.TokenTypeDeclaration, Version: "1.0"})
	}
	d.element(0)
}

func (d *docBuilder) element(depth int) {
	name := randName(d.r)
	var s strings.Builder
	s.WriteString("<" + name)
	var attrs []gosaxlex.Attr
	seen := map[string]bool{}
	for j := d.r.Intn(6); j > 0; j-- {
		attrName := randName(d.r)
		if seen[attrName] {
			continue
		}
		seen[attrName] = true
		value := randRunes(d.r, stringRunes, 0, 20)
		s.WriteString(" " + attrName + `="` + value + `"`)
		attrs = append(attrs, gosaxlex.Attr{Name: attrName, Value: value})
	}
	if depth > 4 || d.r.Intn(4) == 0 {
		s.WriteString("/>")
		d.emit(s.String(), gosaxlex.Token{Kind: gosaxlex.TokenTypeElement, Name: name, Attr: attrs, SelfClosing: true})
		return
	}
	s.WriteString(">")
	d.emit(s.String(), gosaxlex.Token{Kind: gosaxlex.TokenTypeElement, Name: name, Attr: attrs})
	for j := d.r.Intn(5); j > 0; j-- {
		d.child(depth + 1)
	}
	d.emit("</"+name+">", gosaxlex.Token{Kind: gosaxlex.TokenTypeClosingTag, Name: name})
}

func (d *docBuilder) child(depth int) {
	switch d.r.Intn(5) {
	case 0:
		d.element(depth)
	case 1:
		data := randRunes(d.r, textRunes, 1, 64)
		d.emit(data, gosaxlex.Token{Kind: gosaxlex.TokenTypeText, Data: data})
	case 2:
		data := randRunes(d.r, wordRunes, 0, 16)
		d.emit("<!--"+data+"-->", gosaxlex.Token{Kind: gosaxlex.TokenTypeComment, Data: data})
	case 3:
		data := randRunes(d.r, wordRunes, 0, 16)
		d.emit("<![CDATA["+data+"]]>", gosaxlex.Token{Kind: gosaxlex.TokenTypeCDATA, Data: data})
	default:
		target := "pi-" + randName(d.r)
		data := randRunes(d.r, wordRunes, 0, 16)
		if data == "" {
			d.emit("<?"+target+"?>", gosaxlex.Token{Kind: gosaxlex.TokenTypeProcInst, Target: target})
			return
		}
		d.emit("<?"+target+" "+data+"?>", gosaxlex.Token{Kind: gosaxlex.TokenTypeProcInst, Target: target, Data: data})
	}
}

func randDocument(r *rand.Rand) (string, []gosaxlex.Token) {
	d := &docBuilder{r: r}
	d.document()
	return d.b.String(), d.want
}

func TestFuzz(t *testing.T) {
	// given
	r := rand.New(rand.NewSource(123456789))
	n := 5000

	for i := 0; i < n; i++ {
		doc, want := randDocument(r)

		// when
		got, err := gosaxlex.Tokenize(doc)

		// then
		require.NoError(t, err, doc)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("tokens mismatch for %q (-want +got):\n%s", doc, diff)
		}
	}
}

func TestFuzzEncodeRoundTrip(t *testing.T) {
	// given
	r := rand.New(rand.NewSource(987654321))
	n := 2000

	for i := 0; i < n; i++ {
		doc, _ := randDocument(r)
		first := decodedTokens(t, doc)
		var b strings.Builder
		enc := gosaxlex.NewEncoder(&b, gosaxlex.WithWellFormed(gosaxlex.Version10))

		// when
		for _, tk := range first {
			require.NoError(t, enc.EncodeToken(tk), doc)
		}
		second := decodedTokens(t, b.String())

		// then
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("round trip mismatch for %q (-want +got):\n%s", doc, diff)
		}
	}
}

func decodedTokens(t *testing.T, doc string) []gosaxlex.Token {
	t.Helper()
	var tokens []gosaxlex.Token
	for tk, err := range gosaxlex.NewLexer(doc).All() {
		require.NoError(t, err, doc)
		tokens = append(tokens, tk.Decoded())
	}
	return tokens
}

func TestFuzzGarbageTerminates(t *testing.T) {
	// given
	r := rand.New(rand.NewSource(42))
	n := 500

	for i := 0; i < n; i++ {
		garbage := randRunes(r, everythingRunes, 0, 4000)
		lex := gosaxlex.NewLexer(garbage)
		limit := len(garbage) + 1

		// when
		count := 0
		for _, err := range lex.All() {
			count++
			if err != nil {
				break
			}
		}

		// then
		require.LessOrEqual(t, count, limit, garbage)
	}
}
