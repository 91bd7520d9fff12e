// Package scroll is the page scroll engine: eased jumps to an anchor and
// tracking of which section the reader is currently in.
package scroll

import (
	"strings"
	"time"

	"github.com/Zachkp/neural-glass/internal/ease"
)

const (
	DefaultHeaderOffset = 45.0
	DefaultDuration     = 2 * time.Second
	// ScrolledThreshold is how far the page must scroll before the header
	// switches to its compact glass style.
	ScrolledThreshold = 50.0

	sectionSlack = 50.0
	bottomSlack  = 60.0
)

// Animation is one eased scroll from Start to Start+Distance.
type Animation struct {
	Start    float64
	Distance float64
	Duration time.Duration
	Ease     ease.Func
}

// Plan builds the scroll that lands targetTop just below the header.
func Plan(current, targetTop, headerOffset float64, duration time.Duration) Animation {
	return Animation{
		Start:    current,
		Distance: targetTop - headerOffset - current,
		Duration: duration,
		Ease:     ease.OutExpo,
	}
}

// At returns the scroll position elapsed into the animation.
func (a Animation) At(elapsed time.Duration) float64 {
	progress := 1.0
	if a.Duration > 0 {
		progress = min(float64(elapsed)/float64(a.Duration), 1)
	}
	fn := a.Ease
	if fn == nil {
		fn = ease.OutExpo
	}
	return a.Start + a.Distance*fn(progress)
}

func (a Animation) Done(elapsed time.Duration) bool {
	return elapsed >= a.Duration
}

// Target returns the final scroll position.
func (a Animation) Target() float64 {
	return a.Start + a.Distance
}

// CleanAnchor normalises a link target to "#id". Cross-page links such as
// "../index.html#contact" keep only their fragment; "" and "#" yield "".
func CleanAnchor(href string) string {
	if href == "" || href == "#" {
		return ""
	}
	i := strings.IndexByte(href, '#')
	if i < 0 {
		return ""
	}
	frag := href[i+1:]
	if frag == "" {
		return ""
	}
	return "#" + frag
}

// Section is a page section's vertical extent.
type Section struct {
	ID     string
	Top    float64
	Height float64
}

// ActiveSection picks the section to highlight in the navigation for a
// given scroll position. Near the bottom of the document the last section
// wins even when it is too short to reach the header line.
func ActiveSection(sections []Section, scrollY, headerOffset, viewportH, documentH float64) string {
	if len(sections) == 0 {
		return ""
	}
	current := sections[0].ID
	pos := scrollY + headerOffset
	for _, s := range sections {
		if pos >= s.Top-sectionSlack && pos < s.Top+s.Height-sectionSlack {
			current = s.ID
		}
	}
	if viewportH+scrollY >= documentH-bottomSlack {
		current = sections[len(sections)-1].ID
	}
	return current
}

// HeaderScrolled reports whether the header should use its scrolled style.
func HeaderScrolled(scrollY float64) bool {
	return scrollY > ScrolledThreshold
}

// Command is a deferred scroll instruction handed to the browser.
type Command struct {
	Target   string  `json:"target"`
	DelayMS  int64   `json:"delay"`
	Duration int64   `json:"duration"`
	Offset   float64 `json:"offset"`
}

// NewCommand schedules a default smooth scroll to target after delay.
func NewCommand(target string, delay time.Duration) Command {
	return Command{
		Target:   target,
		DelayMS:  delay.Milliseconds(),
		Duration: DefaultDuration.Milliseconds(),
		Offset:   DefaultHeaderOffset,
	}
}
