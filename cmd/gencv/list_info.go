package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/gencv/internal/content"
	"github.com/jonathan/gencv/internal/embedding"
	"github.com/jonathan/gencv/internal/pipeline"
	"github.com/jonathan/gencv/internal/ranking"
)

var listInfoCommand = &cobra.Command{
	Use:   "list-info",
	Short: "List the experiences of the content file",
	Long: `Lists every experience of the content file. With --query, experiences are
ranked by the similarity of their mean bullet embedding to the query instead.`,
	Args: cobra.NoArgs,
	RunE: runListInfo,
}

var listInfoQuery string

func init() {
	listInfoCommand.Flags().StringVarP(&listInfoQuery, "query", "q", "", "Rank experiences against this query")
	rootCmd.AddCommand(listInfoCommand)
}

func runListInfo(cmd *cobra.Command, _ []string) error {
	model, err := content.Load(cfg.Datafile)
	if err != nil {
		return err
	}

	p := printer(cmd)
	if listInfoQuery == "" {
		p.PrintExperiences(model)
		return nil
	}

	ctx := context.Background()
	engine, err := embedding.NewEngine(ctx, pipeline.EmbeddingConfig(cfg))
	if err != nil {
		return err
	}
	ranked, err := ranking.RankQuery(ctx, engine, model, listInfoQuery, embedding.DefaultConcurrency)
	if err != nil {
		return err
	}
	p.PrintRankedExperiences(ranked)
	return nil
}
