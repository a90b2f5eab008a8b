package tui

import (
	"strings"

	"github.com/flicsl/jsonsync/models"
)

type detailModel struct {
	status string
}

func (m detailModel) View(item models.Item, loaded bool) string {
	if !loaded {
		return "nothing selected"
	}

	var b strings.Builder
	b.WriteString(prettyJSON(item))

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(statusStyle.Render(m.status))
	}

	return b.String()
}
