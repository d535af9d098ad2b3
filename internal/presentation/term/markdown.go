package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/mfeilner/unimach/pkg/domain"
)

// TransitionMarkdown renders the decoded program as a markdown table,
// suitable for the glamour renderer or plain files.
func TransitionMarkdown(name string, program domain.Program) string {
	var sb strings.Builder
	if name != "" {
		fmt.Fprintf(&sb, "# %s\n\n", name)
	}
	sb.WriteString("| # | From | Read | To | Write | Move |\n")
	sb.WriteString("|--:|:----:|:----:|:--:|:-----:|:----:|\n")
	for i, t := range program.Transitions {
		fmt.Fprintf(&sb, "| %d | %s | `%s` | %s | `%s` | %s |\n",
			i+1, t.From, t.Read, t.To, t.Write, t.Move)
	}
	fmt.Fprintf(&sb, "\nHalting state: **%s**\n", program.HaltingState())
	return sb.String()
}

// MarkdownRenderer returns a function that renders markdown using glamour.
// It auto-detects light and dark backgrounds.
func MarkdownRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
