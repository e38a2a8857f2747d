package prettyyaml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	prettyyaml "github.com/g-plane/pretty-yaml"
)

func TestDefaultOptions(t *testing.T) {
	opts := prettyyaml.DefaultOptions()
	assert.Equal(t, 80, opts.PrintWidth)
	assert.False(t, opts.UseTabs)
	assert.Equal(t, 2, opts.IndentWidth)
	assert.Equal(t, prettyyaml.LineBreakLF, opts.LineBreak)
	assert.Equal(t, prettyyaml.QuotesPreferDouble, opts.Quotes)
	assert.True(t, opts.TrailingComma)
	assert.False(t, opts.FormatComments)
	assert.True(t, opts.IndentBlockSequenceInMap)
	assert.True(t, opts.BraceSpacing)
	assert.False(t, opts.BracketSpacing)
	assert.Equal(t, prettyyaml.DashSpacingOneSpace, opts.DashSpacing)
	assert.True(t, opts.TrimTrailingWhitespaces)
	assert.False(t, opts.TrimTrailingZero)
	assert.Equal(t, prettyyaml.ProseWrapPreserve, opts.ProseWrap)
	assert.False(t, opts.PreferSingleLine)
	assert.Nil(t, opts.FlowSequencePreferSingleLine)
	assert.Nil(t, opts.FlowMapPreferSingleLine)
	assert.Equal(t, "pretty-yaml-ignore", opts.IgnoreCommentDirective)
}

func TestOptionsValidate(t *testing.T) {
	opts := prettyyaml.DefaultOptions()
	require.NoError(t, opts.Validate())

	zeroIndent := prettyyaml.DefaultOptions()
	zeroIndent.IndentWidth = 0
	require.Error(t, zeroIndent.Validate())

	badBreak := prettyyaml.DefaultOptions()
	badBreak.LineBreak = "cr"
	require.Error(t, badBreak.Validate())

	badQuotes := prettyyaml.DefaultOptions()
	badQuotes.Quotes = "fancy"
	require.Error(t, badQuotes.Validate())

	allQuoteStyles := []prettyyaml.QuotesStyle{
		prettyyaml.QuotesPreferDouble,
		prettyyaml.QuotesPreferSingle,
		prettyyaml.QuotesForceDouble,
		prettyyaml.QuotesForceSingle,
	}
	for _, q := range allQuoteStyles {
		o := prettyyaml.DefaultOptions()
		o.Quotes = q
		assert.NoError(t, o.Validate(), "quote style %s", q)
	}
}

func TestFlowPreferSingleLineInheritance(t *testing.T) {
	src := "a: [\n  1,\n]\nb: {\n  x: 1,\n}\n"

	yes := true
	opts := prettyyaml.DefaultOptions()
	opts.FlowSequencePreferSingleLine = &yes
	out, err := prettyyaml.Format([]byte(src), &opts)
	require.NoError(t, err)
	assert.Contains(t, string(out), "a: [1]")
	assert.Contains(t, string(out), "{\n")

	opts = prettyyaml.DefaultOptions()
	opts.PreferSingleLine = true
	out, err = prettyyaml.Format([]byte(src), &opts)
	require.NoError(t, err)
	assert.Contains(t, string(out), "a: [1]")
	assert.Contains(t, string(out), "b: { x: 1 }")
}
