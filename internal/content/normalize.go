package content

import (
	"fmt"
	"strings"

	"github.com/jonathan/gencv/internal/types"
)

// Normalize applies all normalization steps to a parsed content file
func Normalize(file *types.ContentFile) error {
	for i := range file.Experiences {
		exp := &file.Experiences[i]
		exp.Type = strings.TrimSpace(exp.Type)

		if err := checkBounds(exp.MinPoints, exp.MaxPoints); err != nil {
			return &NormalizationError{
				Message: fmt.Sprintf("experience '%s'", exp.ID),
				Cause:   err,
			}
		}
		for j := range exp.Groups {
			grp := &exp.Groups[j]
			if err := checkBounds(grp.Min, grp.Max); err != nil {
				return &NormalizationError{
					Message: fmt.Sprintf("experience '%s' group %d", exp.ID, j),
					Cause:   err,
				}
			}
			if err := NormalizePoints(grp.Points); err != nil {
				return &NormalizationError{
					Message: fmt.Sprintf("experience '%s' group %d", exp.ID, j),
					Cause:   err,
				}
			}
		}
	}
	return nil
}

// NormalizePoints trims bullet text and drops empty or repeated emphasis
// substrings, recursing into dependants. Text that is blank after trimming
// is an error.
func NormalizePoints(points []types.PointRecord) error {
	for i := range points {
		p := &points[i]
		p.Text = strings.TrimSpace(p.Text)
		if p.Text == "" {
			return fmt.Errorf("point %d has no text", i)
		}

		if len(p.Bold) > 0 {
			bold := make([]string, 0, len(p.Bold))
			seen := make(map[string]struct{})
			for _, b := range p.Bold {
				if strings.TrimSpace(b) == "" {
					continue
				}
				if _, exists := seen[b]; !exists {
					bold = append(bold, b)
					seen[b] = struct{}{}
				}
			}
			p.Bold = bold
		}

		if err := NormalizePoints(p.Dependants); err != nil {
			return fmt.Errorf("dependant of %q: %w", p.Text, err)
		}
	}
	return nil
}

func checkBounds(lo, hi *int) error {
	if lo != nil && hi != nil && *lo > *hi {
		return fmt.Errorf("minimum %d is greater than maximum %d", *lo, *hi)
	}
	return nil
}
