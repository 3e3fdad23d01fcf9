package main

import (
	"fmt"
	"sort"

	"github.com/gitrdm/goprolog/pkg/prolog"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Consult a file and run a single query against it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return fatalf("run requires --query")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.logLevel)
			db := prolog.NewDatabase()
			eng := prolog.NewEngine(db, prolog.Options{
				Logger:             logger,
				DeferredRetryBound: cfg.deferredRetryBound,
				Out:                cmd.OutOrStdout(),
			})
			if err := loadProgram(args[0], db, eng, logger); err != nil {
				return err
			}

			parser, err := prolog.NewParser(query, eng.FreshVar)
			if err != nil {
				return fmt.Errorf("parsing query: %w", err)
			}
			goals, err := parser.ReadQuery()
			if err != nil {
				return fmt.Errorf("parsing query: %w", err)
			}

			result := eng.Solve(goals, cfg.answerLimit)
			return printResult(cmd, result)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "the goal sequence to solve, e.g. \"append(X,Y,[1,2,3])\"")
	return cmd
}

func printResult(cmd *cobra.Command, result *prolog.Result) error {
	out := cmd.OutOrStdout()
	switch result.Outcome {
	case prolog.OutcomeError:
		return fmt.Errorf("query error: %w", result.Err)
	case prolog.OutcomeFailure:
		fmt.Fprintln(out, "false.")
		return nil
	}
	for i, ans := range result.Answers {
		if len(ans) == 0 {
			fmt.Fprintln(out, "true.")
			continue
		}
		names := make([]string, 0, len(ans))
		for name := range ans {
			names = append(names, name)
		}
		sort.Strings(names)
		for j, name := range names {
			if j > 0 {
				fmt.Fprint(out, ", ")
			}
			fmt.Fprintf(out, "%s = %s", name, ans[name].String())
		}
		fmt.Fprintln(out)
		if i < len(result.Answers)-1 {
			fmt.Fprintln(out, ";")
		}
	}
	return nil
}
