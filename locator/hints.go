package locator

import (
	"fmt"
	"strings"
)

const (
	HINT_SNIPPET_WIDTH   = 100
	HINT_SNIPPET_LEADING = 20
	HINT_MAX_COUNT       = 5
)

// Hinter looks for lines carrying every marker of a construct that no
// pattern matched. Its output only helps a human see how the text drifted.
type Hinter struct {
	Markers []string
}

func NewHinter(markers ...string) *Hinter {
	return &Hinter{Markers: markers}
}

func (h *Hinter) Hints(text string) []string {
	if h == nil || len(h.Markers) == 0 {
		return nil
	}
	var hints []string
	for i, line := range strings.Split(text, "\n") {
		if !h.lineMatches(line) {
			continue
		}
		hints = append(hints, fmt.Sprintf("line %d: %s...", i+1, snippet(line, strings.Index(line, h.Markers[0]))))
		if len(hints) == HINT_MAX_COUNT {
			break
		}
	}
	return hints
}

func (h *Hinter) lineMatches(line string) bool {
	for _, marker := range h.Markers {
		if !strings.Contains(line, marker) {
			return false
		}
	}
	return true
}

// snippet cuts a window out of a possibly megabyte-long minified line.
func snippet(line string, at int) string {
	from := at - HINT_SNIPPET_LEADING
	if from < 0 {
		from = 0
	}
	to := from + HINT_SNIPPET_WIDTH
	if to > len(line) {
		to = len(line)
	}
	return line[from:to]
}
