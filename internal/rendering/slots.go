package rendering

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/gencv/internal/schemas"
	"github.com/jonathan/gencv/internal/types"
	schemadocs "github.com/jonathan/gencv/schemas"
)

// Marker introduces a slot in a template body. It is a LaTeX comment, so an
// unfilled template still compiles.
const Marker = "%GENCV"

// Slot is a reserved region of the token stream. Tokens[Start:End] hold the
// marker and its payload.
type Slot struct {
	Category string
	Quota    int
	Start    int
	End      int
}

// Template is a compiled template body.
type Template struct {
	Tokens []string
	Slots  []Slot
}

// Compile tokenizes body and extracts its slots. A marker must be followed,
// after optional whitespace, by a JSON payload {"placetype": <category>,
// "n": <quota>} that ends on a token ending in "}".
func Compile(body string) (*Template, error) {
	tokens := Tokenize(body)
	t := &Template{Tokens: tokens}

	for i := 0; i < len(tokens); i++ {
		if strings.TrimSpace(tokens[i]) != Marker {
			continue
		}
		slot, err := parseSlot(tokens, i)
		if err != nil {
			return nil, err
		}
		t.Slots = append(t.Slots, slot)
		i = slot.End - 1
	}
	return t, nil
}

func parseSlot(tokens []string, start int) (Slot, error) {
	var payload strings.Builder
	inPayload := false

	for i := start + 1; i < len(tokens); i++ {
		tok := tokens[i]
		if !inPayload {
			if isBlank(tok) {
				continue
			}
			if !strings.HasPrefix(tok, "{") {
				return Slot{}, &TemplateSyntaxError{
					Token:   start,
					Message: "expected '{' after " + Marker + ", found " + tok,
				}
			}
			inPayload = true
		}
		payload.WriteString(tok)
		if strings.HasSuffix(tok, "}") {
			p, err := parsePlaceholder(payload.String(), start)
			if err != nil {
				return Slot{}, err
			}
			return Slot{Category: p.PlaceType, Quota: p.N, Start: start, End: i + 1}, nil
		}
	}

	return Slot{}, &TemplateSyntaxError{Token: start, Message: "unterminated slot payload"}
}

func parsePlaceholder(raw string, token int) (*types.Placeholder, error) {
	raw = strings.TrimSpace(raw)
	if !json.Valid([]byte(raw)) {
		return nil, &TemplateSyntaxError{Token: token, Message: "payload is not valid JSON: " + raw}
	}
	if err := schemas.ValidateJSONString(schemadocs.Placeholder, raw); err != nil {
		return nil, &TemplateSyntaxError{Token: token, Message: "invalid slot payload", Cause: err}
	}

	var p types.Placeholder
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, &TemplateSyntaxError{Token: token, Message: "invalid slot payload", Cause: err}
	}
	return &p, nil
}

// Slot returns the slot that defines a category's quota. When a category is
// declared more than once the last declaration wins.
func (t *Template) Slot(category string) (Slot, error) {
	for i := len(t.Slots) - 1; i >= 0; i-- {
		if t.Slots[i].Category == category {
			return t.Slots[i], nil
		}
	}
	return Slot{}, &SlotNotFoundError{Category: category}
}

// Quota returns how many experiences of a category the template holds.
func (t *Template) Quota(category string) (int, error) {
	s, err := t.Slot(category)
	if err != nil {
		return 0, err
	}
	return s.Quota, nil
}

// Quotas maps every declared category to its quota.
func (t *Template) Quotas() map[string]int {
	quotas := make(map[string]int, len(t.Slots))
	for _, s := range t.Slots {
		quotas[s.Category] = s.Quota
	}
	return quotas
}

// Categories lists declared categories in order of first declaration.
func (t *Template) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range t.Slots {
		if !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	return out
}
