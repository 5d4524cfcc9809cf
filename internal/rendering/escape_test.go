package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Built a cache", "Built a cache"},
		{"specials", `test${}~&%#^_\`, `test\$\{\}\textasciitilde{}\&\%\#\textasciicircum{}\_\textbackslash{}`},
		{"angle brackets", "<5ms", `\textless{}5ms`},
		{"dashes", "2019–2021 — present", `2019--2021 --- present`},
		{"quotes", "“fast” and ‘safe’", "``fast'' and `safe'"},
		{"ellipsis", "and more…", `and more\ldots{}`},
		{"unicode letters pass through", "résumé α β", "résumé α β"},
		{"money and percent", "$1M+ at 99.9% uptime", `\$1M+ at 99.9\% uptime`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLaTeX(tt.in))
		})
	}
}

func TestEmphasize(t *testing.T) {
	tests := []struct {
		name string
		text string
		bold []string
		want string
	}{
		{"no bold", "Used Go", nil, "Used Go"},
		{"single", "Used Go daily", []string{"Go"}, `Used \textbf{Go} daily`},
		{"every occurrence", "Go and Go", []string{"Go"}, `\textbf{Go} and \textbf{Go}`},
		{"escaped keyword", "Cut cost 40% in C#", []string{"40%", "C#"}, `Cut cost \textbf{40\%} in \textbf{C\#}`},
		{"missing keyword", "Used Rust", []string{"Go"}, "Used Rust"},
		{"empty keyword ignored", "Used Go", []string{""}, "Used Go"},
		{"keyword inside earlier keyword", "Built Python tooling", []string{"Python", "t"}, `Buil\textbf{t} \textbf{Python} \textbf{t}ooling`},
		{"keyword matching markup", "Go team", []string{"Go", "textbf"}, `\textbf{Go} team`},
		{"keyword inside escape sequence", "R&D budget", []string{"R&D", "amp"}, `\textbf{R\&D} budget`},
		{"keyword matching escape text", "50% off", []string{"textbackslash", "%"}, `50\textbf{\%} off`},
		{"first keyword wins overlap", "Kubernetes", []string{"Kube", "bernetes"}, `\textbf{Kube}rnetes`},
		{"adjacent occurrences", "GoGo", []string{"Go"}, `\textbf{Go}\textbf{Go}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Emphasize(tt.text, tt.bold))
		})
	}
}
