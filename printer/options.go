package printer

import (
	"github.com/go-playground/validator/v10"

	"github.com/g-plane/pretty-yaml/errors"
)

// LineBreakStyle selects the line break emitted in the output.
type LineBreakStyle string

const (
	LineBreakLF   LineBreakStyle = "lf"
	LineBreakCRLF LineBreakStyle = "crlf"
)

// QuotesStyle controls re-quoting of single-line quoted scalars.
type QuotesStyle string

const (
	QuotesPreferDouble QuotesStyle = "preferDouble"
	QuotesPreferSingle QuotesStyle = "preferSingle"
	QuotesForceDouble  QuotesStyle = "forceDouble"
	QuotesForceSingle  QuotesStyle = "forceSingle"
)

// DashSpacingStyle controls the spacing after the '-' of a block sequence
// entry holding a compact inline block map.
type DashSpacingStyle string

const (
	DashSpacingOneSpace DashSpacingStyle = "oneSpace"
	DashSpacingIndent   DashSpacingStyle = "indent"
)

// ProseWrapStyle controls re-wrapping of long single-line plain scalars.
type ProseWrapStyle string

const (
	ProseWrapPreserve ProseWrapStyle = "preserve"
	ProseWrapAlways   ProseWrapStyle = "always"
)

// Options are the formatting options. The zero value is not usable; start
// from DefaultOptions.
type Options struct {
	PrintWidth               int            `validate:"min=0"`
	UseTabs                  bool
	IndentWidth              int            `validate:"min=1"`
	LineBreak                LineBreakStyle `validate:"oneof=lf crlf"`
	Quotes                   QuotesStyle    `validate:"oneof=preferDouble preferSingle forceDouble forceSingle"`
	TrailingComma            bool
	FormatComments           bool
	IndentBlockSequenceInMap bool
	BraceSpacing             bool
	BracketSpacing           bool
	DashSpacing              DashSpacingStyle `validate:"oneof=oneSpace indent"`
	TrimTrailingWhitespaces  bool
	TrimTrailingZero         bool
	ProseWrap                ProseWrapStyle `validate:"oneof=preserve always"`
	PreferSingleLine         bool

	// FlowSequencePreferSingleLine and FlowMapPreferSingleLine override
	// PreferSingleLine per collection kind; nil inherits.
	FlowSequencePreferSingleLine *bool
	FlowMapPreferSingleLine      *bool

	IgnoreCommentDirective string
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		PrintWidth:               80,
		IndentWidth:              2,
		LineBreak:                LineBreakLF,
		Quotes:                   QuotesPreferDouble,
		TrailingComma:            true,
		IndentBlockSequenceInMap: true,
		BraceSpacing:             true,
		DashSpacing:              DashSpacingOneSpace,
		TrimTrailingWhitespaces:  true,
		ProseWrap:                ProseWrapPreserve,
		IgnoreCommentDirective:   "pretty-yaml-ignore",
	}
}

var validate = validator.New()

// Validate rejects option combinations the formatter cannot honor, such as an
// indent width of zero.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return errors.Wrapf(err, "invalid format options")
	}
	return nil
}

func (o *Options) flowSequencePreferSingleLine() bool {
	if o.FlowSequencePreferSingleLine != nil {
		return *o.FlowSequencePreferSingleLine
	}
	return o.PreferSingleLine
}

func (o *Options) flowMapPreferSingleLine() bool {
	if o.FlowMapPreferSingleLine != nil {
		return *o.FlowMapPreferSingleLine
	}
	return o.PreferSingleLine
}

func (o *Options) lineBreak() string {
	if o.LineBreak == LineBreakCRLF {
		return "\r\n"
	}
	return "\n"
}
