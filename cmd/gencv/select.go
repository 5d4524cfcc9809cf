package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/gencv/internal/pipeline"
)

var selectCommand = &cobra.Command{
	Use:   "select <template> [description]",
	Short: "Print the bullets that would be selected for a job description",
	Long: `Runs query generation, scoring and selection like mkres, then prints the chosen
bullets per experience instead of writing a resume.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSelect,
}

var selectJob jobFlags

func init() {
	selectJob.register(selectCommand)
	rootCmd.AddCommand(selectCommand)
}

func runSelect(cmd *cobra.Command, args []string) error {
	opts, err := selectJob.options(cmd, args, cfg)
	if err != nil {
		return err
	}

	sel, err := pipeline.Select(context.Background(), opts)
	if err != nil {
		return err
	}

	p := printer(cmd)
	p.PrintQuery(sel.Query, sel.Keywords)
	p.PrintPlan(sel.Plan)
	return nil
}
