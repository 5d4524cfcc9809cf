package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/gencv/internal/llm"
)

// ExtractedContent is the structured form of a job posting returned by the LLM
type ExtractedContent struct {
	Company          string            `json:"company,omitempty"`
	Title            string            `json:"title,omitempty"`
	TeamContext      string            `json:"team_context,omitempty"`
	Requirements     []string          `json:"requirements"`
	Responsibilities []string          `json:"responsibilities"`
	NiceToHave       []string          `json:"nice_to_have,omitempty"`
	AdminInfo        map[string]string `json:"admin_info,omitempty"`
}

// ExtractWithLLM separates the requirements of a posting from the page
// boilerplate around it.
func ExtractWithLLM(ctx context.Context, client llm.Client, text string) (*ExtractedContent, error) {
	prompt := llm.BuildExtractionPrompt(llm.JobRequirementsSchema(), text)

	jsonResp, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	var extracted ExtractedContent
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(jsonResp)), &extracted); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w (content: %s)", err, jsonResp)
	}
	if len(extracted.Requirements) == 0 && len(extracted.Responsibilities) == 0 {
		return nil, fmt.Errorf("%w: model found no requirements", ErrContentExtractionFailed)
	}

	return &extracted, nil
}

// FormatExtractedContent renders the structured extraction as plain text.
func FormatExtractedContent(extracted *ExtractedContent) string {
	var sb strings.Builder

	if extracted.TeamContext != "" {
		sb.WriteString("Team Context:\n")
		sb.WriteString(extracted.TeamContext)
		sb.WriteString("\n\n")
	}

	writeSection(&sb, "Requirements", extracted.Requirements)
	writeSection(&sb, "Responsibilities", extracted.Responsibilities)
	writeSection(&sb, "Nice to Have", extracted.NiceToHave)

	return strings.TrimSpace(sb.String())
}

func writeSection(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(title + ":\n")
	for _, item := range items {
		sb.WriteString("- " + item + "\n")
	}
	sb.WriteString("\n")
}
