package term

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// Banner returns the ASCII art header the CLI prints on interactive runs.
func Banner(version string) string {
	p := termenv.ColorProfile()
	rows := []struct {
		text  string
		color string
	}{
		{" _   _  _  _  ___  __  __    _     ___  _  _ ", "#22d3ee"},
		{"| | | || \\| ||_ _||  \\/  |  /_\\   / __|| || |", "#38bdf8"},
		{"| |_| || .` | | | | |\\/| | / _ \\ | (__ | __ |", "#60a5fa"},
		{" \\___/ |_|\\_||___||_|  |_|/_/ \\_\\ \\___||_||_|", "#818cf8"},
	}

	var sb strings.Builder
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(p.String(row.text).Foreground(p.Color(row.color)).String())
		sb.WriteString("\n")
	}
	sb.WriteString(p.String(fmt.Sprintf("  universal turing machine v%s", strings.TrimSpace(version))).Faint().String())
	sb.WriteString("\n\n")
	return sb.String()
}
