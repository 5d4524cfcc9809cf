package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/gencv/internal/content"
)

var compileCommand = &cobra.Command{
	Use:   "compile",
	Short: "Check that the content file compiles",
	Long:  "Loads, validates and builds the content file without scoring anything.",
	Args:  cobra.NoArgs,
	RunE:  runCompile,
}

func init() {
	rootCmd.AddCommand(compileCommand)
}

func runCompile(cmd *cobra.Command, _ []string) error {
	model, err := content.Load(cfg.Datafile)
	if err != nil {
		return err
	}

	printer(cmd).PrintSuccess("Data compiles without errors.")
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d experiences, %d groups, %d bullets in %s\n",
		len(model.Experiences), len(model.Groups), len(model.Bullets), cfg.Datafile)
	return nil
}
