package service

import (
	"strings"

	"github.com/mynameisDevendra/KURSnTbOT2/internal/models"
)

// LoginTip follows the link block; notebooks open poorly in in-app browsers.
const LoginTip = "\n⚠️ *Tip:* If asked to login, tap 'Open in Chrome'."

// Annotate strips recognised source markers from an answer and appends one
// link per cited source, in models.Sources order. Text without markers is
// returned as is.
func Annotate(text string, links models.LinkTable) string {
	var lines []string
	for _, src := range models.Sources {
		found := false
		for _, marker := range src.Markers() {
			if strings.Contains(text, marker) {
				text = strings.ReplaceAll(text, marker, "")
				found = true
			}
		}
		if found {
			lines = append(lines, src.LinkLine(links[src]))
		}
	}

	if len(lines) == 0 {
		return text
	}
	return text + "\n\n" + strings.Join(lines, "\n") + LoginTip
}
