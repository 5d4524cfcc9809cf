package selection

import "unicode/utf8"

// LineCount estimates how many rendered lines text takes when lines hold
// lineChars characters.
func LineCount(text string, lineChars int) int {
	if lineChars <= 0 {
		return 0
	}
	n := utf8.RuneCountInString(text)
	return (n + lineChars - 1) / lineChars
}
