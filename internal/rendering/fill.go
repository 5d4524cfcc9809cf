package rendering

import (
	"slices"

	"github.com/jonathan/gencv/internal/types"
)

// Fill replaces every slot with the rendered items of its category, in the
// order given, and returns the new token stream. Slots with no items are
// removed. The compiled template is not modified.
func (t *Template) Fill(items []types.RenderedItem) []string {
	byCategory := make(map[string][]string)
	for _, item := range items {
		byCategory[item.Category] = append(byCategory[item.Category], item.Text)
	}

	slots := slices.Clone(t.Slots)
	slices.SortStableFunc(slots, func(a, b Slot) int { return a.Start - b.Start })

	filled := slices.Clone(t.Tokens)
	displacement := 0
	for _, s := range slots {
		start, end := s.Start+displacement, s.End+displacement
		replacement := byCategory[s.Category]

		next := make([]string, 0, len(filled)-(end-start)+len(replacement))
		next = append(next, filled[:start]...)
		next = append(next, replacement...)
		next = append(next, filled[end:]...)
		filled = next

		displacement = len(filled) - len(t.Tokens)
	}
	return filled
}

// FillString is Fill joined into a single document.
func (t *Template) FillString(items []types.RenderedItem) string {
	return Join(t.Fill(items))
}
