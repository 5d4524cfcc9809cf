package rendering

import (
	"slices"
	"strings"
)

// latexReplacements maps characters that LaTeX treats specially, plus common
// typographic characters that pdflatex cannot take as UTF-8 input.
var latexReplacements = map[rune]string{
	'\\':     `\textbackslash{}`,
	'{':      `\{`,
	'}':      `\}`,
	'$':      `\$`,
	'&':      `\&`,
	'%':      `\%`,
	'#':      `\#`,
	'^':      `\textasciicircum{}`,
	'_':      `\_`,
	'~':      `\textasciitilde{}`,
	'<':      `\textless{}`,
	'>':      `\textgreater{}`,
	'\u2013': `--`,
	'\u2014': `---`,
	'\u2018': "`",
	'\u2019': `'`,
	'\u201c': "``",
	'\u201d': `''`,
	'\u2026': `\ldots{}`,
	'\u00a0': `~`,
}

// EscapeLaTeX escapes text so LaTeX prints it literally. Other non-ASCII
// letters pass through unchanged.
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2)
	for _, r := range text {
		if rep, ok := latexReplacements[r]; ok {
			result.WriteString(rep)
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

// Emphasize escapes text and wraps every occurrence of each bold substring
// in \textbf{}. Occurrences are found in the raw text before escaping, so a
// keyword never matches inside an escape sequence or inserted markup. When
// occurrences overlap, the keyword listed first wins.
func Emphasize(text string, bold []string) string {
	spans := boldSpans(text, bold)
	if len(spans) == 0 {
		return EscapeLaTeX(text)
	}

	var result strings.Builder
	result.Grow(len(text)*2 + len(spans)*len(`\textbf{}`))
	pos := 0
	for _, s := range spans {
		result.WriteString(EscapeLaTeX(text[pos:s.start]))
		result.WriteString(`\textbf{`)
		result.WriteString(EscapeLaTeX(text[s.start:s.end]))
		result.WriteString(`}`)
		pos = s.end
	}
	result.WriteString(EscapeLaTeX(text[pos:]))
	return result.String()
}

type span struct {
	start, end int
}

// boldSpans returns the non-overlapping byte ranges of text covered by the
// bold substrings, sorted by start.
func boldSpans(text string, bold []string) []span {
	var spans []span
	for _, kw := range bold {
		if kw == "" {
			continue
		}
		for from := 0; from < len(text); {
			i := strings.Index(text[from:], kw)
			if i < 0 {
				break
			}
			s := span{start: from + i, end: from + i + len(kw)}
			if overlaps(spans, s) {
				from = s.start + 1
				continue
			}
			spans = append(spans, s)
			from = s.end
		}
	}
	slices.SortFunc(spans, func(a, b span) int { return a.start - b.start })
	return spans
}

func overlaps(spans []span, s span) bool {
	for _, o := range spans {
		if s.start < o.end && o.start < s.end {
			return true
		}
	}
	return false
}
