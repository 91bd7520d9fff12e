package scroll

import "time"

// Page tracks the scroll state of a document made of stacked sections.
type Page struct {
	HeaderOffset float64
	Duration     time.Duration

	sections  []Section
	viewportH float64
	scrollY   float64

	anim    *Animation
	elapsed time.Duration
}

// NewPage stacks one section per id, each sectionH tall.
func NewPage(ids []string, sectionH, viewportH float64) *Page {
	p := &Page{
		HeaderOffset: DefaultHeaderOffset,
		Duration:     DefaultDuration,
		viewportH:    viewportH,
	}
	for i, id := range ids {
		p.sections = append(p.sections, Section{ID: id, Top: float64(i) * sectionH, Height: sectionH})
	}
	return p
}

func (p *Page) Sections() []Section { return p.sections }
func (p *Page) ScrollY() float64    { return p.scrollY }

// Animating reports whether a smooth scroll is in flight.
func (p *Page) Animating() bool { return p.anim != nil }

func (p *Page) DocumentHeight() float64 {
	if len(p.sections) == 0 {
		return 0
	}
	last := p.sections[len(p.sections)-1]
	return last.Top + last.Height
}

// Resize changes the viewport height and re-clamps the scroll position.
func (p *Page) Resize(viewportH float64) {
	p.viewportH = viewportH
	p.scrollY = p.clamp(p.scrollY)
}

func (p *Page) clamp(y float64) float64 {
	limit := max(p.DocumentHeight()-p.viewportH, 0)
	return min(max(y, 0), limit)
}

// ScrollTo starts a smooth scroll to the section href points at. Links
// without a known fragment are ignored and reported as false.
func (p *Page) ScrollTo(href string) bool {
	anchor := CleanAnchor(href)
	if anchor == "" {
		return false
	}
	for _, s := range p.sections {
		if "#"+s.ID == anchor {
			a := Plan(p.scrollY, s.Top, p.HeaderOffset, p.Duration)
			p.anim = &a
			p.elapsed = 0
			return true
		}
	}
	return false
}

// ScrollBy moves the page immediately, interrupting any smooth scroll.
func (p *Page) ScrollBy(dy float64) {
	p.anim = nil
	p.scrollY = p.clamp(p.scrollY + dy)
}

// Advance steps the smooth scroll, if any, by dt.
func (p *Page) Advance(dt time.Duration) {
	if p.anim == nil {
		return
	}
	p.elapsed += dt
	p.scrollY = p.clamp(p.anim.At(p.elapsed))
	if p.anim.Done(p.elapsed) {
		p.anim = nil
	}
}

// Active is the id of the section the navigation should highlight.
func (p *Page) Active() string {
	return ActiveSection(p.sections, p.scrollY, p.HeaderOffset, p.viewportH, p.DocumentHeight())
}

func (p *Page) Scrolled() bool {
	return HeaderScrolled(p.scrollY)
}
