// Package navigator maps a visitor's chat message to the page sections it
// is asking about, so the page can scroll there while the assistant answers.
package navigator

import (
	"strings"
	"time"
)

// Delay is how long after sending a message the page starts scrolling.
const Delay = 500 * time.Millisecond

// Route pairs a section anchor with the words that point at it.
type Route struct {
	Target   string
	Keywords []string
}

// Routes are checked in order; a message can match several.
var Routes = []Route{
	{Target: "#contact", Keywords: []string{"contact", "email", "reach", "hire"}},
	{Target: "#showcase", Keywords: []string{"project", "work", "portfolio", "showcase", "ego"}},
	{Target: "#timeline", Keywords: []string{"journey", "experience", "history", "education", "about"}},
	{Target: "#features", Keywords: []string{"skill", "tech", "stack", "coding"}},
}

// Targets returns the anchors the message mentions, in route order.
// Matching is case-insensitive substring matching.
func Targets(message string) []string {
	lower := strings.ToLower(message)
	var out []string
	for _, r := range Routes {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				out = append(out, r.Target)
				break
			}
		}
	}
	return out
}
