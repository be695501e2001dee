package gosaxlex

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEntities(t *testing.T) {
	assert.Equal(t, "a & b <c> '\"", DecodeEntities("a &amp; b &lt;c&gt; &apos;&quot;"))
	assert.Equal(t, "AB\U0001F600", DecodeEntities("&#65;&#x42;&#x1F600;"))
	assert.Equal(t, "&amp;", DecodeEntities("&amp;amp;"))
	for _, s := range []string{"", "plain", "&#X41;", "&foo;", "& x", "&#;", "&#x;", "&#xD800;", "&#1114112;", "&amp", "&#12a;", "&"} {
		assert.Equal(t, s, DecodeEntities(s), s)
	}
}

func TestEncodeText(t *testing.T) {
	assert.Equal(t, "a&amp;b&lt;c&gt;\"'\t", EncodeText("a&b<c>\"'\t", false))
	assert.Equal(t, "no escapes", EncodeText("no escapes", false))
	assert.Equal(t, "&amp; &amp; &#38; &#x26; &amp;foo; &amp;amp",
		EncodeText("&amp; & &#38; &#x26; &foo; &amp", true))
	assert.Equal(t, "&amp;amp;", EncodeText("&amp;", false))
}

func TestEncodeAttr(t *testing.T) {
	assert.Equal(t, "a&amp;b&lt;c&gt;&quot;'&#9;&#10;&#13;", EncodeAttr("a&b<c>\"'\t\n\r", false))
	assert.Equal(t, "&lt;&quot;&quot;", EncodeAttr("<\"&quot;", true))
}

var entityRunes = []rune("&<>\"'\t\n\r ;#x0123456789abcdefampltgquos€😀")

func TestEncodeDecodeRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		b := make([]rune, r.Intn(40))
		for j := range b {
			b[j] = entityRunes[r.Intn(len(entityRunes))]
		}
		s := string(b)
		assert.Equal(t, s, DecodeEntities(EncodeText(s, false)), s)
		assert.Equal(t, s, DecodeEntities(EncodeAttr(s, false)), s)
	}
}
