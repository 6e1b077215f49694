package main

import (
	"github.com/spf13/cobra"

	"github.com/nodeadmin/elreasoner"
	"github.com/nodeadmin/elreasoner/ontology"
)

// classifyResult is the JSON/text payload the classify subcommand prints.
type classifyResult struct {
	TBoxStatements int           `json:"tbox_statements"`
	ABoxStatements int           `json:"abox_statements"`
	RBoxStatements int           `json:"rbox_statements"`
	Timings        timingsResult `json:"timings"`
}

type timingsResult struct {
	BuildID   string `json:"build_id"`
	Normalize string `json:"normalize"`
	RBoxBuild string `json:"rbox_build"`
	Classify  string `json:"classify"`
	Saturate  string `json:"saturate"`
	Total     string `json:"total"`
}

func newClassifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "classify <ontology.json>",
		Short:         "Normalize, classify, and saturate an ontology, printing summary statistics",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runClassify(rootOpts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := formatterFor(rootOpts, cmd)

	cfg, err := loadConfig(rootOpts)
	if err != nil {
		_ = formatter.Error("E_CONFIG", err.Error())
		return wrapExitError(exitCommandError, "loading config", err)
	}

	ont, err := ontology.ReadJSONFile(path)
	if err != nil {
		_ = formatter.Error("E_INPUT", err.Error())
		return wrapExitError(exitCommandError, "reading ontology", err)
	}
	formatter.VerboseLog("loaded ontology: %d TBox, %d ABox, %d RBox statements", ont.TBoxSize(), ont.ABoxSize(), ont.RBoxSize())

	r, err := elreasoner.NewReasoner(ont,
		elreasoner.WithLogger(rootOpts.Logger),
		elreasoner.WithConfig(cfg),
	)
	if err != nil {
		_ = formatter.Error("E_BUILD", err.Error())
		return wrapExitError(exitCommandError, "building reasoner", err)
	}

	t := r.Timings()
	result := classifyResult{
		TBoxStatements: ont.TBoxSize(),
		ABoxStatements: ont.ABoxSize(),
		RBoxStatements: ont.RBoxSize(),
		Timings: timingsResult{
			BuildID:   t.BuildID.String(),
			Normalize: t.Normalize.String(),
			RBoxBuild: t.RBoxBuild.String(),
			Classify:  t.Classify.String(),
			Saturate:  t.Saturate.String(),
			Total:     t.Total().String(),
		},
	}
	return formatter.Success(result)
}
