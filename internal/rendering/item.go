package rendering

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/gencv/internal/types"
)

// Substitution points in block templates.
const (
	TextKeyword    = "%text%"
	BulletsKeyword = "%bullets%"
)

func metaTextKeyword(i int) string {
	return "%metatext" + strconv.Itoa(i+1) + "%"
}

// RenderItem fills a block with one experience. Each bullet goes through
// block.Bullet with its emphasis applied; the bullet lines are joined by
// newlines into %bullets%.
func RenderItem(block types.BlockTemplate, exp types.ExperienceData) string {
	lines := make([]string, 0, len(exp.Bullets))
	for _, b := range exp.Bullets {
		lines = append(lines, strings.ReplaceAll(block.Bullet, TextKeyword, Emphasize(b.Text, b.Bold)))
	}

	pairs := make([]string, 0, 2*(len(exp.MetaText)+1))
	for i, text := range exp.MetaText {
		pairs = append(pairs, metaTextKeyword(i), EscapeLaTeX(text))
	}
	pairs = append(pairs, BulletsKeyword, strings.Join(lines, "\n"))
	return strings.NewReplacer(pairs...).Replace(block.Template)
}

// RenderItems renders every experience whose category has a block, keeping
// the input order. Experiences without a block are skipped.
func RenderItems(blocks Blocks, experiences []types.ExperienceData, logger *zap.Logger) []types.RenderedItem {
	if logger == nil {
		logger = zap.NewNop()
	}

	items := make([]types.RenderedItem, 0, len(experiences))
	for _, exp := range experiences {
		block, ok := blocks[exp.Category]
		if !ok {
			logger.Warn("no block for category, skipping experience",
				zap.String("experience", exp.ID),
				zap.String("category", exp.Category))
			continue
		}
		items = append(items, types.RenderedItem{
			Category: exp.Category,
			Text:     RenderItem(block, exp),
		})
	}
	return items
}
