package main

import (
	"github.com/spf13/cobra"

	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/diagfmt"
	"github.com/jsrustad/stylefix/internal/parser"
	"github.com/jsrustad/stylefix/internal/source"
)

// dumpCmd prints the syntax tree of one file. Hidden: it exists for
// debugging the parser and the fixers.
var dumpCmd = &cobra.Command{
	Use:    "dump <file>",
	Short:  "Dump the syntax tree of a source file",
	Hidden: true,
	Args:   cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := source.NewFileSet()
		id, err := fs.Load(args[0])
		if err != nil {
			return err
		}
		file := fs.Get(id)
		bag := diag.NewBag(64)
		tree := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
		diagfmt.Tree(cmd.OutOrStdout(), tree, fs)
		if bag.Len() > 0 {
			diagfmt.Pretty(cmd.OutOrStdout(), bag, fs, diagfmt.PrettyOpts{
				PathMode: diagfmt.PathModeBasename,
			})
		}
		return nil
	},
}
