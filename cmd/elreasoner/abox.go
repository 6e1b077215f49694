package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nodeadmin/elreasoner"
	"github.com/nodeadmin/elreasoner/internal/export"
	"github.com/nodeadmin/elreasoner/ontology"
)

func newAboxCommand(rootOpts *RootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:           "abox <ontology.json>",
		Short:         "Saturate an ontology's ABox and export it to a SQLite file for ad hoc SQL inspection",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAbox(rootOpts, cmd, args[0], out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "SQLite output path (default: elreasoner.Config.Export.SQLitePath)")

	return cmd
}

func runAbox(rootOpts *RootOptions, cmd *cobra.Command, ontPath, out string) error {
	formatter := formatterFor(rootOpts, cmd)

	cfg, err := loadConfig(rootOpts)
	if err != nil {
		_ = formatter.Error("E_CONFIG", err.Error())
		return wrapExitError(exitCommandError, "loading config", err)
	}
	if out == "" {
		out = cfg.Export.SQLitePath
	}

	ont, err := ontology.ReadJSONFile(ontPath)
	if err != nil {
		_ = formatter.Error("E_INPUT", err.Error())
		return wrapExitError(exitCommandError, "reading ontology", err)
	}

	r, err := elreasoner.NewReasoner(ont,
		elreasoner.WithLogger(rootOpts.Logger),
		elreasoner.WithConfig(cfg),
	)
	if err != nil {
		_ = formatter.Error("E_BUILD", err.Error())
		return wrapExitError(exitCommandError, "building reasoner", err)
	}

	sat := r.SaturatedABox()
	if err := export.ToFile(context.Background(), out, sat, r.Arena()); err != nil {
		_ = formatter.Error("E_EXPORT", err.Error())
		return wrapExitError(exitCommandError, "exporting ABox", err)
	}

	return formatter.Success(struct {
		Path               string `json:"path"`
		ClassAssertions    int    `json:"class_assertions"`
		PropertyAssertions int    `json:"property_assertions"`
	}{Path: out, ClassAssertions: len(sat.ClassAssertions), PropertyAssertions: len(sat.PropertyAssertions)})
}
