package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/nodeadmin/elreasoner"
	"github.com/nodeadmin/elreasoner/ontology"
	"github.com/nodeadmin/elreasoner/query"
)

func newQueryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "query <ontology.json> <query.json>",
		Short:         "Classify, saturate, and evaluate a basic graph pattern query against an ontology",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, cmd, args[0], args[1])
		},
	}
	return cmd
}

func runQuery(rootOpts *RootOptions, cmd *cobra.Command, ontPath, queryPath string) error {
	formatter := formatterFor(rootOpts, cmd)

	cfg, err := loadConfig(rootOpts)
	if err != nil {
		_ = formatter.Error("E_CONFIG", err.Error())
		return wrapExitError(exitCommandError, "loading config", err)
	}

	ont, err := ontology.ReadJSONFile(ontPath)
	if err != nil {
		_ = formatter.Error("E_INPUT", err.Error())
		return wrapExitError(exitCommandError, "reading ontology", err)
	}

	qf, err := os.Open(queryPath)
	if err != nil {
		_ = formatter.Error("E_INPUT", err.Error())
		return wrapExitError(exitCommandError, "opening query", err)
	}
	defer qf.Close()

	q, err := query.ReadJSON(qf)
	if err != nil {
		_ = formatter.Error("E_QUERY", err.Error())
		return wrapExitError(exitCommandError, "parsing query", err)
	}

	r, err := elreasoner.NewReasoner(ont,
		elreasoner.WithLogger(rootOpts.Logger),
		elreasoner.WithConfig(cfg),
	)
	if err != nil {
		_ = formatter.Error("E_BUILD", err.Error())
		return wrapExitError(exitCommandError, "building reasoner", err)
	}

	rows, err := r.AnswerQuery(context.Background(), q)
	if err != nil {
		_ = formatter.Error("E_QUERY_EVAL", err.Error())
		return wrapExitError(exitCommandError, "evaluating query", err)
	}

	return formatter.Success(rows)
}
