package main

import (
	"fmt"
	"os"

	"github.com/gitrdm/goprolog/pkg/prolog"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// loadProgram reads path, parses every clause, asserts it into db in
// source order, and immediately runs any "$directive" clause the parser
// produced from a bare ":- Goal." line (spec.md §4 supplement) against
// the same database/engine, so directives can rely on predicates defined
// earlier in the file the way a real consult does.
func loadProgram(path string, db *prolog.Database, eng *prolog.Engine, logger hclog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	parser, err := prolog.NewParser(string(data), eng.FreshVar)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	for {
		clause, ok, err := parser.ReadClause()
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		if !ok {
			return nil
		}
		if d, isDirective := asDirective(clause); isDirective {
			result := eng.Solve([]prolog.Term{d}, 1)
			if result.Outcome != prolog.OutcomeSuccess {
				logger.Debug("directive did not succeed", "goal", d.String())
			}
			continue
		}
		db.Assertz(clause)
	}
}

func asDirective(c prolog.Clause) (prolog.Term, bool) {
	comp, ok := c.Head.(*prolog.Compound)
	if !ok || comp.Functor != "$directive" || len(comp.Args) != 1 {
		return nil, false
	}
	return comp.Args[0], true
}

func newConsultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consult FILE",
		Short: "Load a Prolog source file and report how many predicates were loaded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.logLevel)
			db := prolog.NewDatabase()
			eng := prolog.NewEngine(db, prolog.Options{Logger: logger, DeferredRetryBound: cfg.deferredRetryBound})
			if err := loadProgram(args[0], db, eng, logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d predicate(s) from %s\n", len(db.Indicators()), args[0])
			return nil
		},
	}
	return cmd
}
