package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/gencv/internal/db"
)

var runsCommand = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the run history stored in PostgreSQL",
	Long:  "Lists, shows and deletes recorded mkres runs. Requires --db-url, database_url or DATABASE_URL.",
}

var runsListCommand = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCommand = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run and its artifacts",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsDeleteCommand = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a run and its artifacts",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

var (
	runsLimit int
	runsStep  string
)

func init() {
	runsListCommand.Flags().IntVar(&runsLimit, "limit", db.DefaultListLimit, "Maximum number of runs to list")
	runsShowCommand.Flags().StringVar(&runsStep, "step", "", "Print the stored artifact of this step (query, selection, resume_tex, ...)")

	runsCommand.AddCommand(runsListCommand, runsShowCommand, runsDeleteCommand)
	rootCmd.AddCommand(runsCommand)
}

func openHistory(ctx context.Context) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("no database configured: set --db-url, database_url or DATABASE_URL")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	database, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(ctx, runsLimit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		printer(cmd).PrintNote("No runs recorded")
		return nil
	}
	for _, run := range runs {
		writeRunLine(out, &run)
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	runID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", args[0], err)
	}

	ctx := context.Background()
	database, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	run, err := database.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run not found: %s", runID)
	}

	out := cmd.OutOrStdout()
	if runsStep != "" {
		return writeArtifact(ctx, out, database, runID, runsStep)
	}

	writeRunLine(out, run)
	if run.ErrorMessage != nil {
		_, _ = fmt.Fprintf(out, "  error: %s\n", *run.ErrorMessage)
	}
	_, _ = fmt.Fprintf(out, "  query: %s\n", run.Query)
	if run.JobURL != "" {
		_, _ = fmt.Fprintf(out, "  job url: %s\n", run.JobURL)
	}

	artifacts, err := database.ListArtifacts(ctx, runID)
	if err != nil {
		return err
	}
	for _, a := range artifacts {
		kind := "text"
		if a.HasJSON {
			kind = "json"
		}
		_, _ = fmt.Fprintf(out, "  artifact %-16s %-4s %s\n", a.Step, kind, a.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	runID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", args[0], err)
	}

	ctx := context.Background()
	database, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.DeleteRun(ctx, runID); err != nil {
		return err
	}
	printer(cmd).PrintSuccess("Deleted run %s", runID)
	return nil
}

func writeRunLine(out io.Writer, run *db.Run) {
	_, _ = fmt.Fprintf(out, "%s  %-9s %-16s %s\n",
		run.ID, run.Status, run.Template, run.CreatedAt.Format("2006-01-02 15:04:05"))
}

// writeArtifact prints the text of a step, or its JSON when no text was stored
func writeArtifact(ctx context.Context, out io.Writer, database *db.DB, runID uuid.UUID, step string) error {
	text, err := database.GetTextArtifact(ctx, runID, step)
	if err != nil {
		return err
	}
	if text == "" {
		raw, err := database.GetArtifact(ctx, runID, step)
		if err != nil {
			return err
		}
		if raw == nil {
			return fmt.Errorf("run %s has no %s artifact", runID, step)
		}
		text = string(raw)
	}
	_, err = fmt.Fprintln(out, text)
	return err
}
