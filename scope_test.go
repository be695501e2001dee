package gosaxlex

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func BenchmarkNamespaceScope(b *testing.B) {
	input := "<ns:a xmlns:ns=\"https://mynamespace\"><ns:b c=\"d\"/></ns:a>"
	tokens, err := Tokenize(input)
	require.NoError(b, err)
	scope := NewNamespaceScope()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		scope.Reset()
		for _, tk := range tokens {
			switch tk.Kind {
			case TokenTypeElement:
				_, err = scope.Enter(tk)
			case TokenTypeClosingTag:
				err = scope.Leave(tk)
			}
			assert.Nil(b, err)
		}
	}
}

func TestResolveSOAPEnvelope(t *testing.T) {
	// given
	input := `
<soap:Envelope
xmlns:soap="http://www.w3.org/2003/05/soap-envelope/"
soap:encodingStyle="http://www.w3.org/2003/05/soap-encoding">
<soap:Body>
  <m:GetPrice xmlns:m="https://www.w3schools.com/prices">
    <m:Item>Apples</m:Item>
  </m:GetPrice>
</soap:Body>
</soap:Envelope>`
	soapNamespace := "http://www.w3.org/2003/05/soap-envelope/"
	pricesNamespace := "https://www.w3schools.com/prices"
	scope := NewNamespaceScope()
	var elements []Element

	// when
	for tk, err := range NewLexer(input, WithSkipWhitespaceOnlyText(true)).All() {
		require.NoError(t, err)
		tk = tk.Decoded()
		switch tk.Kind {
		case TokenTypeElement:
			el, err := scope.Enter(tk)
			require.NoError(t, err)
			elements = append(elements, el)
		case TokenTypeClosingTag:
			require.NoError(t, scope.Leave(tk))
		}
	}

	// then
	require.Len(t, elements, 4)
	assert.Equal(t, NameInfo{Namespace: soapNamespace, Prefix: "soap", LocalName: "Envelope"}, elements[0].Name)
	assert.Equal(t, []ResolvedAttr{
		{Name: NameInfo{Namespace: NamespaceXMLNS, Prefix: "xmlns", LocalName: "soap"}, Value: soapNamespace},
		{Name: NameInfo{Namespace: soapNamespace, Prefix: "soap", LocalName: "encodingStyle"}, Value: "http://www.w3.org/2003/05/soap-encoding"},
	}, elements[0].Attr)
	assert.Equal(t, NameInfo{Namespace: soapNamespace, Prefix: "soap", LocalName: "Body"}, elements[1].Name)
	assert.Equal(t, NameInfo{Namespace: pricesNamespace, Prefix: "m", LocalName: "GetPrice"}, elements[2].Name)
	assert.Equal(t, NameInfo{Namespace: pricesNamespace, Prefix: "m", LocalName: "Item"}, elements[3].Name)
	assert.Equal(t, 0, scope.Depth())
}

func TestDefaultNamespaceAppliesToElementsOnly(t *testing.T) {
	// given
	scope := NewNamespaceScope()

	// when
	a, err1 := scope.Enter(Token{Kind: TokenTypeElement, Name: "a", Attr: []Attr{
		{Name: "xmlns", Value: "urn:a"},
		{Name: "x", Value: "1"},
	}})
	b, err2 := scope.Enter(Token{Kind: TokenTypeElement, Name: "b", SelfClosing: true})
	c, err3 := scope.Enter(Token{Kind: TokenTypeElement, Name: "c", SelfClosing: true, Attr: []Attr{{Name: "xmlns", Value: ""}}})

	// then
	assert.Nil(t, err1)
	assert.Nil(t, err2)
	assert.Nil(t, err3)
	assert.Equal(t, NameInfo{Namespace: "urn:a", LocalName: "a"}, a.Name)
	assert.Equal(t, NameInfo{Namespace: NamespaceXMLNS, LocalName: "xmlns"}, a.Attr[0].Name)
	assert.Equal(t, NameInfo{LocalName: "x"}, a.Attr[1].Name)
	assert.Equal(t, NameInfo{Namespace: "urn:a", LocalName: "b"}, b.Name)
	assert.Equal(t, NameInfo{LocalName: "c"}, c.Name)
	assert.Equal(t, 1, scope.Depth())
}

func TestLookupPrefixHonorsShadowing(t *testing.T) {
	// given
	scope := NewNamespaceScope()
	_, err := scope.Enter(Token{Kind: TokenTypeElement, Name: "a", Attr: []Attr{{Name: "xmlns:p", Value: "urn:1"}}})
	require.NoError(t, err)

	// when
	p1, ok1 := scope.LookupPrefix("urn:1")
	_, err = scope.Enter(Token{Kind: TokenTypeElement, Name: "b", Attr: []Attr{{Name: "xmlns:p", Value: "urn:2"}}})
	require.NoError(t, err)
	_, ok2 := scope.LookupPrefix("urn:1")
	p3, ok3 := scope.LookupPrefix("urn:2")
	require.NoError(t, scope.Leave(Token{Kind: TokenTypeClosingTag, Name: "b"}))

	// then
	assert.True(t, ok1)
	assert.Equal(t, "p", p1)
	assert.False(t, ok2)
	assert.True(t, ok3)
	assert.Equal(t, "p", p3)
	assert.Equal(t, "urn:1", scope.LookupNamespace("p"))
	assert.Equal(t, NamespaceXML, scope.LookupNamespace("xml"))
}

func TestNamespaceScopeErrors(t *testing.T) {
	tt := []struct {
		name    string
		token   Token
		wantErr error
	}{
		{"unbound prefix", Token{Kind: TokenTypeElement, Name: "p:a"}, ErrNamespace},
		{"unbound attribute prefix", Token{Kind: TokenTypeElement, Name: "a", Attr: []Attr{{Name: "p:x", Value: "1"}}}, ErrNamespace},
		{"invalid element name", Token{Kind: TokenTypeElement, Name: "1a"}, ErrInvalidCharacter},
		{"element with xmlns prefix", Token{Kind: TokenTypeElement, Name: "xmlns:a"}, ErrNamespace},
		{"declaring xmlns", Token{Kind: TokenTypeElement, Name: "a", Attr: []Attr{{Name: "xmlns:xmlns", Value: "urn:x"}}}, ErrNamespace},
		{"rebinding xml", Token{Kind: TokenTypeElement, Name: "a", Attr: []Attr{{Name: "xmlns:xml", Value: "urn:x"}}}, ErrNamespace},
		{"binding the xml namespace", Token{Kind: TokenTypeElement, Name: "a", Attr: []Attr{{Name: "xmlns:p", Value: NamespaceXML}}}, ErrNamespace},
		{"binding the xmlns namespace", Token{Kind: TokenTypeElement, Name: "a", Attr: []Attr{{Name: "xmlns", Value: NamespaceXMLNS}}}, ErrNamespace},
		{"undeclaring a prefix", Token{Kind: TokenTypeElement, Name: "a", Attr: []Attr{{Name: "xmlns:p", Value: ""}}}, ErrNamespace},
		{"duplicate expanded attribute", Token{Kind: TokenTypeElement, Name: "a", Attr: []Attr{
			{Name: "xmlns:p", Value: "urn:x"},
			{Name: "xmlns:q", Value: "urn:x"},
			{Name: "p:y", Value: "1"},
			{Name: "q:y", Value: "2"},
		}}, ErrNamespace},
		{"not an element", Token{Kind: TokenTypeText, Data: "x"}, ErrInvalidState},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// given
			scope := NewNamespaceScope()

			// when
			_, err := scope.Enter(tc.token)

			// then
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr), err.Error())
			assert.Equal(t, 0, scope.Depth())
		})
	}
}

func TestLeaveChecksClosingTag(t *testing.T) {
	// given
	scope := NewNamespaceScope()
	_, err := scope.Enter(Token{Kind: TokenTypeElement, Name: "a"})
	require.NoError(t, err)

	// when
	errMismatch := scope.Leave(Token{Kind: TokenTypeClosingTag, Name: "b"})
	errMatch := scope.Leave(Token{Kind: TokenTypeClosingTag, Name: "a"})
	errEmpty := scope.Leave(Token{Kind: TokenTypeClosingTag, Name: "a"})

	// then
	assert.True(t, errors.Is(errMismatch, ErrSyntax))
	assert.Nil(t, errMatch)
	assert.True(t, errors.Is(errEmpty, ErrSyntax))
}
