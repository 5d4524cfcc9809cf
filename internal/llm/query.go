package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/gencv/internal/prompts"
)

// GenerateQuery summarizes a job description into a search query.
func GenerateQuery(ctx context.Context, client Client, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", fmt.Errorf("job description is empty")
	}

	text, err := client.GenerateContent(ctx, descriptionPrompt(prompts.KeySummarizeQuery, description), TierStandard)
	if err != nil {
		return "", fmt.Errorf("failed to generate query: %w", err)
	}

	query := cleanQuery(text)
	if query == "" {
		return "", fmt.Errorf("model returned an empty query")
	}
	return query, nil
}

// ExtractKeywords lists the critical requirements of a job description.
func ExtractKeywords(ctx context.Context, client Client, description string) ([]string, error) {
	text, err := client.GenerateContent(ctx, descriptionPrompt(prompts.KeyExtractKeywords, description), TierLite)
	if err != nil {
		return nil, fmt.Errorf("failed to extract keywords: %w", err)
	}
	return ParseKeywords(text), nil
}

// ReviewBullet asks the model to score and critique a single resume bullet.
func ReviewBullet(ctx context.Context, client Client, bullet string) (string, error) {
	bullet = strings.TrimSpace(bullet)
	if bullet == "" {
		return "", fmt.Errorf("bullet text is empty")
	}

	prompt := prompts.Format(prompts.MustGet(prompts.QueryFile, prompts.KeyReviewBullet), map[string]string{"Bullet": bullet})
	text, err := client.GenerateContent(ctx, prompt, TierStandard)
	if err != nil {
		return "", fmt.Errorf("failed to review bullet: %w", err)
	}

	review := strings.TrimSpace(text)
	if review == "" {
		return "", fmt.Errorf("model returned an empty review")
	}
	return review, nil
}

// ParseKeywords lowercases a comma separated response, drops periods and
// splits it into distinct keywords.
func ParseKeywords(text string) []string {
	text = strings.ToLower(cleanQuery(text))
	text = strings.ReplaceAll(text, ".", "")

	var keywords []string
	seen := make(map[string]bool)
	for _, kw := range strings.Split(text, ",") {
		kw = strings.TrimSpace(kw)
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}
	return keywords
}

// cleanQuery trims whitespace and the quotes models like to wrap answers in.
func cleanQuery(text string) string {
	text = strings.TrimSpace(text)
	for _, q := range []string{`"`, `'`, "`"} {
		if len(text) >= 2 && strings.HasPrefix(text, q) && strings.HasSuffix(text, q) {
			text = strings.TrimSpace(text[1 : len(text)-1])
		}
	}
	return text
}

func descriptionPrompt(key, description string) string {
	return prompts.Format(prompts.MustGet(prompts.QueryFile, key), map[string]string{"Description": description})
}
