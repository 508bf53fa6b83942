package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSSIdent(t *testing.T) {
	tests := map[string]string{
		"email":    "email",
		"1abc":     `\31 abc`,
		"a b":      `a\ b`,
		"-":        `\-`,
		"-1":       `-\31 `,
		"a.b:c":    `a\.b\:c`,
		"_x-y":     "_x-y",
		"naïve":    "naïve",
		"tab\there": `tab\9 here`,
	}

	for in, want := range tests {
		assert.Equal(t, want, cssIdent(in), in)
	}
}

func TestCSSString(t *testing.T) {
	assert.Equal(t, `"plain"`, cssString("plain"))
	assert.Equal(t, `"say \"hi\""`, cssString(`say "hi"`))
	assert.Equal(t, `"a\\b"`, cssString(`a\b`))
	assert.Equal(t, `"line\a next"`, cssString("line\nnext"))
}

func TestXPathLiteral(t *testing.T) {
	assert.Equal(t, `"plain"`, xpathLiteral("plain"))
	assert.Equal(t, `'say "hi"'`, xpathLiteral(`say "hi"`))
	assert.Equal(t, `concat("it's ", '"', "quoted", '"')`, xpathLiteral(`it's "quoted"`))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "Tom &amp; Jerry", normalizeText("  Tom &  Jerry \n"))
	assert.Equal(t, "&lt;b&gt; &quot;x&quot; &apos;y&apos;", normalizeText(`<b> "x" 'y'`))
	assert.Equal(t, "&amp;amp;", normalizeText("&amp;"))
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "héll", prefix("héllo", 4))
	assert.Equal(t, "hi", prefix("hi", 10))
	assert.Empty(t, prefix("hi", 0))
}
