// Command quillmark renders Markdown documents through Quill packages:
// load a Quill, parse a document, normalize its fields, compose the bound
// template (or canonical JSON for an auto-output Quill), and compile the
// result with a registered Backend.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	qlog "github.com/quillmark-go/quillmark/log"
	"github.com/quillmark-go/quillmark/profile"
)

// cliConfig holds the root command's shared ambient configuration, one
// Config value threaded through every subcommand's RunE closure.
type cliConfig struct {
	log       *qlog.Config
	profiling *profile.Config
	logger    *slog.Logger
	profiler  *profile.Profiler
}

func main() {
	cfg := &cliConfig{
		log:       qlog.NewConfig(),
		profiling: profile.NewConfig(),
	}

	rootCmd := &cobra.Command{
		Use:           "quillmark",
		Short:         "Render Markdown documents through Quill template packages",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			handler, err := cfg.log.NewHandler(os.Stderr)
			if err != nil {
				return fmt.Errorf("configuring logging: %w", err)
			}

			cfg.logger = slog.New(handler)
			cfg.profiler = cfg.profiling.NewProfiler()

			return cfg.profiler.Start()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cfg.profiler.Stop()
		},
	}

	cfg.log.RegisterFlags(rootCmd.PersistentFlags())
	cfg.profiling.RegisterFlags(rootCmd.PersistentFlags())

	if err := cfg.log.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register log completions: %v\n", err)
	}

	if err := cfg.profiling.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register profiling completions: %v\n", err)
	}

	rootCmd.AddCommand(
		newRenderCmd(cfg),
		newSchemaCmd(cfg),
		newValidateCmd(cfg),
		newInferCmd(cfg),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

