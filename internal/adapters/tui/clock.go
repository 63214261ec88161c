package tui

import "strings"

// glyphs draws each clock character three rows tall.
var glyphs = map[rune][3]string{
	'0': {"┏━┓", "┃ ┃", "┗━┛"},
	'1': {"  ╻", "  ┃", "  ╹"},
	'2': {"╺━┓", "┏━┛", "┗━╸"},
	'3': {"╺━┓", " ━┫", "╺━┛"},
	'4': {"╻ ╻", "┗━┫", "  ╹"},
	'5': {"┏━╸", "┗━┓", "╺━┛"},
	'6': {"┏━╸", "┣━┓", "┗━┛"},
	'7': {"╺━┓", "  ┃", "  ╹"},
	'8': {"┏━┓", "┣━┫", "┗━┛"},
	'9': {"┏━┓", "┗━┫", "╺━┛"},
	':': {"▪", " ", "▪"},
}


// renderClock draws text with the large glyphs. Unknown runes are skipped.
func renderClock(text string) string {
	var rows [3][]string
	for _, r := range text {
		g, ok := glyphs[r]
		if !ok {
			continue
		}
		for i := range rows {
			rows[i] = append(rows[i], g[i])
		}
	}
	lines := make([]string, len(rows))
	for i := range rows {
		lines[i] = strings.Join(rows[i], " ")
	}
	return strings.Join(lines, "\n")
}
