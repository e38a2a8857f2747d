// Command pretty-yaml formats YAML files.
//
// Usage:
//
//	pretty-yaml [flags] <file.yaml> ... (or "-" for stdin)
//
// By default the formatted output is written to stdout. With --write the
// files are rewritten in place; with --check nothing is written and the exit
// code reports whether any file would change.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	prettyyaml "github.com/g-plane/pretty-yaml"
	"github.com/g-plane/pretty-yaml/errors"
)

func main() {
	opts := prettyyaml.DefaultOptions()
	var (
		write     bool
		check     bool
		noColor   bool
		lineBreak string
		quotes    string
		dash      string
		prose     string
	)

	rootCmd := &cobra.Command{
		Use:   "pretty-yaml [flags] <file.yaml> [file2.yaml ...]",
		Short: "Format YAML files",
		Long: `pretty-yaml formats YAML documents under a width-aware layout while
preserving comments, blank lines and multi-line scalar content. Pass "-" to
read from stdin and write to stdout.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			opts.LineBreak = prettyyaml.LineBreakStyle(lineBreak)
			opts.Quotes = prettyyaml.QuotesStyle(quotes)
			opts.DashSpacing = prettyyaml.DashSpacingStyle(dash)
			opts.ProseWrap = prettyyaml.ProseWrapStyle(prose)
			if noColor {
				errors.ColoredErr = false
			}
			return run(&opts, write, check, args)
		},
	}

	f := rootCmd.Flags()
	f.BoolVarP(&write, "write", "w", false, "rewrite files in place")
	f.BoolVar(&check, "check", false, "exit non-zero when a file is not formatted")
	f.BoolVar(&noColor, "no-color", false, "disable colored error output")
	f.IntVar(&opts.PrintWidth, "print-width", opts.PrintWidth, "preferred maximum line width")
	f.BoolVar(&opts.UseTabs, "use-tabs", opts.UseTabs, "indent with tabs instead of spaces")
	f.IntVar(&opts.IndentWidth, "indent-width", opts.IndentWidth, "number of spaces per indentation level")
	f.StringVar(&lineBreak, "line-break", string(opts.LineBreak), `line break style ("lf" or "crlf")`)
	f.StringVar(&quotes, "quotes", string(opts.Quotes), `quote style ("preferDouble", "preferSingle", "forceDouble" or "forceSingle")`)
	f.BoolVar(&opts.TrailingComma, "trailing-comma", opts.TrailingComma, "add a trailing comma to broken flow collections")
	f.BoolVar(&opts.FormatComments, "format-comments", opts.FormatComments, "insert a space after '#' when the comment body touches it")
	f.BoolVar(&opts.IndentBlockSequenceInMap, "indent-block-sequence-in-map", opts.IndentBlockSequenceInMap, "indent block sequences under their mapping key")
	f.BoolVar(&opts.BraceSpacing, "brace-spacing", opts.BraceSpacing, "pad the inside of non-empty flow mappings")
	f.BoolVar(&opts.BracketSpacing, "bracket-spacing", opts.BracketSpacing, "pad the inside of non-empty flow sequences")
	f.StringVar(&dash, "dash-spacing", string(opts.DashSpacing), `spacing after '-' for compact maps ("oneSpace" or "indent")`)
	f.BoolVar(&opts.TrimTrailingWhitespaces, "trim-trailing-whitespaces", opts.TrimTrailingWhitespaces, "trim trailing whitespace on every line")
	f.BoolVar(&opts.TrimTrailingZero, "trim-trailing-zero", opts.TrimTrailingZero, "trim trailing zeros of fractional numbers")
	f.StringVar(&prose, "prose-wrap", string(opts.ProseWrap), `prose wrap for long plain scalars ("preserve" or "always")`)
	f.BoolVar(&opts.PreferSingleLine, "prefer-single-line", opts.PreferSingleLine, "try flow collections on one line regardless of source line breaks")
	f.StringVar(&opts.IgnoreCommentDirective, "ignore-comment-directive", opts.IgnoreCommentDirective, "comment text that keeps the following node unformatted")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(colorable.NewColorableStderr(), "%v\n", err)
		os.Exit(1)
	}
}

func run(opts *prettyyaml.Options, write, check bool, args []string) error {
	stderr := colorable.NewColorableStderr()
	exitCode := 0
	changed := false
	for _, arg := range args {
		var (
			data []byte
			err  error
		)
		if arg == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(arg)
		}
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", arg, err)
			exitCode = 1
			continue
		}

		out, err := prettyyaml.Format(data, opts)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", arg, err)
			exitCode = 1
			continue
		}

		switch {
		case check:
			if !bytes.Equal(data, out) {
				fmt.Println(arg)
				changed = true
			}
		case write && arg != "-":
			if !bytes.Equal(data, out) {
				if err := os.WriteFile(arg, out, 0o644); err != nil {
					fmt.Fprintf(stderr, "%s: %v\n", arg, err)
					exitCode = 1
				}
			}
		default:
			if _, err := os.Stdout.Write(out); err != nil {
				return err
			}
		}
	}
	if exitCode != 0 || (check && changed) {
		os.Exit(1)
	}
	return nil
}
