package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/gencv/internal/llm"
	"github.com/jonathan/gencv/internal/pipeline"
)

var reviewCommand = &cobra.Command{
	Use:   "review <bullet>",
	Short: "Ask the language model to critique a resume bullet",
	Long: `Scores a single bullet out of 10 on the x, y, z format, confidence, concision,
quantified results and action words, with short feedback for each.`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

var (
	reviewLLM      string
	reviewLLMModel string
)

func init() {
	reviewCommand.Flags().StringVar(&reviewLLM, "llm", "", "Review provider: ollama or gemini")
	reviewCommand.Flags().StringVar(&reviewLLMModel, "llm-model", "", "Review model")
	rootCmd.AddCommand(reviewCommand)
}

func runReview(cmd *cobra.Command, args []string) error {
	bullet := strings.TrimSpace(args[0])
	if bullet == "" {
		return fmt.Errorf("bullet text is empty")
	}

	settings := cfg
	if cmd.Flags().Changed("llm") {
		settings.LLM = reviewLLM
	}
	if cmd.Flags().Changed("llm-model") {
		settings.LLMModel = reviewLLMModel
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := pipeline.NewLLMClient(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	review, err := llm.ReviewBullet(ctx, client, bullet)
	if err != nil {
		return err
	}
	printer(cmd).PrintReview(bullet, review)
	return nil
}
