package printer

import (
	"strings"

	"github.com/g-plane/pretty-yaml/ast"
)

// requote applies the quote policy to a single-line quoted scalar. The raw
// text includes the surrounding quotes and its escape sequences are kept as
// written; a conversion only happens when the target style can represent the
// content, and the "prefer" variants additionally refuse conversions that
// would introduce escapes.
func (p *printer) requote(raw string, style ast.ScalarStyle) string {
	if len(raw) < 2 {
		return raw
	}
	inner := raw[1 : len(raw)-1]
	switch style {
	case ast.DoubleQuotedStyle:
		switch p.opts.Quotes {
		case QuotesPreferSingle:
			if !strings.ContainsAny(inner, `\'`) && !containsControl(inner) {
				return "'" + inner + "'"
			}
		case QuotesForceSingle:
			if !strings.Contains(inner, `\`) && !containsControl(inner) {
				return "'" + strings.ReplaceAll(inner, "'", "''") + "'"
			}
		}
	case ast.SingleQuotedStyle:
		switch p.opts.Quotes {
		case QuotesPreferDouble:
			decoded := strings.ReplaceAll(inner, "''", "'")
			if !strings.ContainsAny(decoded, `\"`) && !containsControl(decoded) {
				return `"` + decoded + `"`
			}
		case QuotesForceDouble:
			decoded := strings.ReplaceAll(inner, "''", "'")
			escaped := strings.ReplaceAll(decoded, `\`, `\\`)
			escaped = strings.ReplaceAll(escaped, `"`, `\"`)
			return `"` + escaped + `"`
		}
	}
	return raw
}

func containsControl(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			return true
		}
	}
	return false
}

// trimTrailingZero removes trailing zeros from the fractional part of a
// decimal number and drops a bare trailing dot, so "1.20" becomes "1.2" and
// "1.0" becomes "1". Anything that is not a plain decimal with a fraction is
// returned untouched.
func trimTrailingZero(s string) string {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	intDigits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		intDigits++
	}
	if intDigits == 0 || i >= len(s) || s[i] != '.' {
		return s
	}
	i++
	fracStart := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i != len(s) || fracStart == i {
		return s
	}
	out := strings.TrimRight(s, "0")
	out = strings.TrimSuffix(out, ".")
	return out
}

// formatComment optionally inserts a space between '#' and a comment body
// that begins without whitespace.
func (p *printer) formatComment(text string) string {
	if !p.opts.FormatComments {
		return text
	}
	if len(text) > 1 && text[0] == '#' && text[1] != ' ' && text[1] != '\t' {
		return "# " + text[1:]
	}
	return text
}
