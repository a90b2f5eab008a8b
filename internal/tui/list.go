package tui

import (
	"fmt"
	"strings"

	"github.com/flicsl/jsonsync/models"
)

const (
	statusAllLoaded = "all loaded"
	statusCopied    = "copied!"
	statusDeleted   = "deleted"

	minVisibleRows = 5
	// listChrome is the number of lines around the rows: title, search,
	// dividers, status and help.
	listChrome = 14
)

type listModel struct {
	idx    int
	status string
}

func (m listModel) current(items []models.Item) (models.Item, bool) {
	if len(items) == 0 || m.idx < 0 || m.idx >= len(items) {
		return nil, false
	}
	return items[m.idx], true
}

func (m *listModel) clamp(n int) {
	if m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

// window returns the [start, end) range of rows that fits height and keeps
// the cursor visible. A zero height shows everything.
func (m listModel) window(n, height int) (int, int) {
	if height <= 0 {
		return 0, n
	}

	rows := max(height-listChrome, minVisibleRows)
	if n <= rows {
		return 0, n
	}

	start := max(m.idx-rows/2, 0)
	end := start + rows
	if end > n {
		end = n
		start = end - rows
	}
	return start, end
}

func (m listModel) View(items []models.Item, fullyLoaded bool, height int) string {
	var b strings.Builder

	if len(items) == 0 {
		b.WriteString("no items\n")
	} else {
		start, end := m.window(len(items), height)
		for i := start; i < end; i++ {
			row := itemLabel(items[i])
			if i == m.idx {
				b.WriteString(selectedStyle.Render("> " + row))
			} else {
				b.WriteString("  " + row)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	summary := fmt.Sprintf("%d items", len(items))
	if fullyLoaded {
		summary += " · " + statusAllLoaded
	}
	b.WriteString(helpStyle.Render(summary))

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}

	return b.String()
}
