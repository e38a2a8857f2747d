package prettyyaml

import "github.com/g-plane/pretty-yaml/printer"

// Options are the formatting options, re-exported from the printer package
// for convenience.
type Options = printer.Options

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options { return printer.DefaultOptions() }

type (
	LineBreakStyle   = printer.LineBreakStyle
	QuotesStyle      = printer.QuotesStyle
	DashSpacingStyle = printer.DashSpacingStyle
	ProseWrapStyle   = printer.ProseWrapStyle
)

const (
	LineBreakLF   = printer.LineBreakLF
	LineBreakCRLF = printer.LineBreakCRLF

	QuotesPreferDouble = printer.QuotesPreferDouble
	QuotesPreferSingle = printer.QuotesPreferSingle
	QuotesForceDouble  = printer.QuotesForceDouble
	QuotesForceSingle  = printer.QuotesForceSingle

	DashSpacingOneSpace = printer.DashSpacingOneSpace
	DashSpacingIndent   = printer.DashSpacingIndent

	ProseWrapPreserve = printer.ProseWrapPreserve
	ProseWrapAlways   = printer.ProseWrapAlways
)
