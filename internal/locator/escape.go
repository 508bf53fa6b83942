package locator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// cssIdent escapes s for use as a CSS identifier, following CSSOM's CSS.escape.
func cssIdent(s string) string {
	var b strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == 0:
			b.WriteRune(utf8.RuneError)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, "\\%x ", r)
		case i == 0 && r >= '0' && r <= '9':
			fmt.Fprintf(&b, "\\%x ", r)
		case i == 1 && r >= '0' && r <= '9' && runes[0] == '-':
			fmt.Fprintf(&b, "\\%x ", r)
		case i == 0 && r == '-' && len(runes) == 1:
			b.WriteString(`\-`)
		case r >= 0x80 || r == '-' || r == '_' ||
			(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}

	return b.String()
}

// cssString quotes s as a CSS string.
func cssString(s string) string {
	var b strings.Builder

	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == 0:
			b.WriteRune(utf8.RuneError)
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, "\\%x ", r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')

	return b.String()
}

func attrSelector(name, value string) string {
	return "[" + name + "=" + cssString(value) + "]"
}

// xpathLiteral quotes s as an XPath 1.0 string literal.
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, `'`) {
		return `'` + s + `'`
	}

	parts := strings.Split(s, `"`)
	args := make([]string, 0, 2*len(parts))
	for i, part := range parts {
		if i > 0 {
			args = append(args, `'"'`)
		}
		if part != "" {
			args = append(args, `"`+part+`"`)
		}
	}

	return "concat(" + strings.Join(args, ", ") + ")"
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&apos;",
	"<", "&lt;",
	">", "&gt;",
)

// collapseSpace trims s and folds internal whitespace runs into one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeText prepares text for embedding in a double-quoted path literal.
func normalizeText(s string) string {
	return textEscaper.Replace(collapseSpace(s))
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}

	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}

	return s
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// IDSelector returns the escaped #id selector for id.
func IDSelector(id string) string {
	return "#" + cssIdent(id)
}

// AttrSelector returns the [name="value"] selector with value quoted as a CSS string.
func AttrSelector(name, value string) string {
	return attrSelector(name, value)
}
