package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flicsl/jsonsync/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

const maxLabelWidth = 70

// labelFields are tried in order to name an object element in the list.
var labelFields = []string{"name", "title", "label"}

func renderPage(title, data, hotKeys, footer string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("ctrl+c: quit" + footer))

	return b.String()
}

// itemLabel renders one collection element on a single line.
func itemLabel(item models.Item) string {
	if obj, ok := item.(map[string]any); ok {
		id, hasID := models.ItemID(obj)
		for _, field := range labelFields {
			if v, ok := obj[field]; ok && v != nil {
				if hasID {
					return fitText(fmt.Sprintf("%s  %v", id, v), maxLabelWidth)
				}
				return fitText(fmt.Sprint(v), maxLabelWidth)
			}
		}
	}

	return fitText(compactJSON(item), maxLabelWidth)
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func prettyJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// searchQuery turns the search box text into a synchronizer query.
func searchQuery(text string) models.Query {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return models.Query{models.QueryTextSearch: text}
}
