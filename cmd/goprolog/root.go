package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// config collects the engine-tuning knobs spec.md §6.3 exposes to a host,
// bound from flags and GOPROLOG-prefixed environment variables by viper.
// No config file is read.
type config struct {
	logLevel           string
	deferredRetryBound int
	answerLimit        int
}

func loadConfig(cmd *cobra.Command) (config, error) {
	v := viper.New()
	v.SetEnvPrefix("GOPROLOG")
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return config{}, err
	}
	return config{
		logLevel:           v.GetString("log-level"),
		deferredRetryBound: v.GetInt("deferred-retry-bound"),
		answerLimit:        v.GetInt("limit"),
	}, nil
}

func newLogger(level string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       "goprolog",
		Level:      hclog.LevelFromString(level),
		Output:     os.Stderr,
		JSONFormat: false,
	})
}

// newRootCmd builds the goprolog command tree: consult, run, version.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "goprolog",
		Short:         "A Prolog resolution engine",
		Long:          "goprolog loads Prolog source, runs queries against it, and reports the resulting answer substitutions or terminal outcome.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().String("log-level", "warn", "trace, debug, info, warn, error")
	root.PersistentFlags().Int("deferred-retry-bound", 3, "retries allowed for arithmetic comparisons over unbound variables before raising instantiation_error")
	root.PersistentFlags().Int("limit", 0, "maximum answers to collect (0 = unbounded)")

	root.AddCommand(newConsultCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func fatalf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
