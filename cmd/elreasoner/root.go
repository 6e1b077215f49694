package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nodeadmin/elreasoner"
	"github.com/nodeadmin/elreasoner/internal/telemetry"
)

// RootOptions holds the global flags every subcommand shares.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
	Format     string // "text" | "json"
	Logger     *logrus.Logger
}

var validFormats = []string{"text", "json"}

// NewRootCommand builds the elreasoner root command and wires its
// classify/query/abox subcommands under it.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Logger: logrus.New()}

	cmd := &cobra.Command{
		Use:   "elreasoner",
		Short: "OWL 2 EL-profile description-logic reasoner",
		Long:  "Normalizes an EL+ ontology, classifies its class hierarchy, saturates its ABox, and answers basic graph pattern queries against the result.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid --format %q: must be one of %v", opts.Format, validFormats)
			}
			telemetry.Configure(telemetry.Options{Logger: opts.Logger, ReportCaller: opts.Verbose})
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file (see elreasoner.Config)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose diagnostic output on stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	cmd.AddCommand(newClassifyCommand(opts))
	cmd.AddCommand(newQueryCommand(opts))
	cmd.AddCommand(newAboxCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig reads opts.ConfigPath if set, else returns elreasoner.DefaultConfig().
func loadConfig(opts *RootOptions) (*elreasoner.Config, error) {
	if opts.ConfigPath == "" {
		return elreasoner.DefaultConfig(), nil
	}
	return elreasoner.LoadFromFile(opts.ConfigPath)
}

func formatterFor(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
