package printer

import (
	"testing"

	"github.com/g-plane/pretty-yaml/ast"
)

func quotePrinter(style QuotesStyle) *printer {
	o := DefaultOptions()
	o.Quotes = style
	return &printer{opts: &o}
}

func TestRequote(t *testing.T) {
	tests := []struct {
		name  string
		style QuotesStyle
		raw   string
		from  ast.ScalarStyle
		want  string
	}{
		{"single to double", QuotesPreferDouble, `'text'`, ast.SingleQuotedStyle, `"text"`},
		{"double kept", QuotesPreferDouble, `"text"`, ast.DoubleQuotedStyle, `"text"`},
		{"escaped quote kept single", QuotesPreferDouble, `'say "hi"'`, ast.SingleQuotedStyle, `'say "hi"'`},
		{"doubled quote decodes", QuotesPreferDouble, `'it''s'`, ast.SingleQuotedStyle, `"it's"`},
		{"double to single", QuotesPreferSingle, `"text"`, ast.DoubleQuotedStyle, `'text'`},
		{"apostrophe blocks preferSingle", QuotesPreferSingle, `"it's"`, ast.DoubleQuotedStyle, `"it's"`},
		{"escape blocks preferSingle", QuotesPreferSingle, `"a\nb"`, ast.DoubleQuotedStyle, `"a\nb"`},
		{"forceSingle escapes apostrophe", QuotesForceSingle, `"it's"`, ast.DoubleQuotedStyle, `'it''s'`},
		{"forceSingle blocked by backslash", QuotesForceSingle, `"a\nb"`, ast.DoubleQuotedStyle, `"a\nb"`},
		{"forceDouble escapes quote", QuotesForceDouble, `'say "hi"'`, ast.SingleQuotedStyle, `"say \"hi\""`},
		{"forceDouble converts plain text", QuotesForceDouble, `'text'`, ast.SingleQuotedStyle, `"text"`},
		{"preferDouble keeps written escapes", QuotesPreferDouble, `"a\tb"`, ast.DoubleQuotedStyle, `"a\tb"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quotePrinter(tt.style).requote(tt.raw, tt.from); got != tt.want {
				t.Fatalf("requote(%q) = %q, expected %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTrimTrailingZero(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.20", "1.2"},
		{"1.0", "1"},
		{"1.000", "1"},
		{"-3.1400", "-3.14"},
		{"10.5", "10.5"},
		{"10", "10"},
		{"1.2.3", "1.2.3"},
		{"v1.0", "v1.0"},
		{"1.", "1."},
		{".5", ".5"},
		{"1e10", "1e10"},
		{"text", "text"},
	}
	for _, tt := range tests {
		if got := trimTrailingZero(tt.in); got != tt.want {
			t.Errorf("trimTrailingZero(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatComment(t *testing.T) {
	o := DefaultOptions()
	o.FormatComments = true
	p := &printer{opts: &o}
	tests := []struct {
		in   string
		want string
	}{
		{"#tight", "# tight"},
		{"# spaced", "# spaced"},
		{"#\ttabbed", "#\ttabbed"},
		{"#", "#"},
	}
	for _, tt := range tests {
		if got := p.formatComment(tt.in); got != tt.want {
			t.Errorf("formatComment(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
	o.FormatComments = false
	if got := p.formatComment("#tight"); got != "#tight" {
		t.Errorf("formatting disabled: got %q", got)
	}
}
