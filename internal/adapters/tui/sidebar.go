package tui

import (
	"strings"
)

const sidebarWidth = 34

// renderSidebar lists the projects with the cursor marked, followed by as
// many history lines as fit in height.
func (m Model) renderSidebar(st styles, height int) string {
	var sb strings.Builder
	sb.WriteString(st.title.Render("Projects"))
	sb.WriteByte('\n')
	for i, p := range m.projects {
		line := "  " + p
		if i == m.cursor {
			line = st.selected.Render("> " + p)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	sb.WriteByte('\n')
	sb.WriteString(st.title.Render("History"))
	sb.WriteByte('\n')

	room := height - len(m.projects) - 4
	if height <= 0 {
		room = len(m.history)
	}
	if len(m.history) == 0 {
		sb.WriteString(st.help.Render("No sessions yet"))
	}
	for i, line := range m.history {
		if i >= room {
			break
		}
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
	}
	return st.sidebar.Render(sb.String())
}
