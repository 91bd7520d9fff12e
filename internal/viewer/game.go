// Package viewer runs the dot grid and the page effects in a desktop
// window.
package viewer

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Zachkp/neural-glass/internal/config"
	"github.com/Zachkp/neural-glass/internal/content"
	"github.com/Zachkp/neural-glass/internal/dotgrid"
	"github.com/Zachkp/neural-glass/internal/effects"
	"github.com/Zachkp/neural-glass/internal/scroll"
)

const (
	neuralLines  = 5
	wheelStep    = 60.0
	headerHeight = 40.0
)

var sectionIDs = []string{"home", "features", "showcase", "timeline", "contact"}

var sectionKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}

var (
	headerColor = color.RGBA{R: 0x10, G: 0x0c, B: 0x28, A: 0xc0}
	lineColor   = color.RGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff}
)

type Game struct {
	cfg *config.Viewer

	grid     *dotgrid.Grid
	frames   dotgrid.TickScheduler
	canvas   canvas
	window   window
	observer *dotgrid.SizeWatcher
	poller   *dotgrid.SizeWatcher

	field *effects.Field
	page  *scroll.Page

	start    time.Time
	last     time.Duration
	cursorX  int
	cursorY  int
	cursorOK bool
}

func New(cfg *config.Viewer) (*Game, error) {
	grid, err := dotgrid.New(cfg.Grid)
	if err != nil {
		return nil, fmt.Errorf("dot grid: %w", err)
	}
	w, h := float64(cfg.Width), float64(cfg.Height)
	return &Game{
		cfg:      cfg,
		grid:     grid,
		observer: dotgrid.NewSizeWatcher(ebiten.WindowResizingMode() == ebiten.WindowResizingModeEnabled),
		poller:   dotgrid.NewSizeWatcher(true),
		field:    effects.NewField(w, h, nil),
		page:     scroll.NewPage(sectionIDs, h, h),
		start:    time.Now(),
	}, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Viewer) error {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g, err := New(cfg)
	if err != nil {
		return err
	}
	defer g.grid.Unmount()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (g *Game) now() time.Duration {
	return time.Since(g.start)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.grid.Unmount()
		return ebiten.Termination
	}

	now := g.now()
	dt := now - g.last
	g.last = now

	if !g.grid.Mounted() && g.window.w > 0 {
		resize := dotgrid.SelectResizeSource(g.observer, g.poller)
		log.Printf("Mounting dot grid %vx%v (scale %v)", g.window.w, g.window.h, g.window.ratio)
		g.grid.Mount(&g.window, &g.canvas, &g.frames, resize)
	}
	g.poller.Update(ebiten.WindowSize())

	g.handleInput(now)

	g.field.Advance(dt)
	g.page.Advance(dt)
	g.frames.Tick(now)
	return nil
}

func (g *Game) handleInput(now time.Duration) {
	x, y := ebiten.CursorPosition()
	if !g.cursorOK || x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY, g.cursorOK = x, y, true
		lx, ly := g.logical(x, y)
		g.grid.PointerMove(lx, ly, now)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		lx, ly := g.logical(x, y)
		g.grid.Click(lx, ly)
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.page.ScrollBy(-wy * wheelStep)
	}
	for i, k := range sectionKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.page.ScrollTo("#" + sectionIDs[i])
		}
	}
}

// logical converts screen pixels to the grid's logical coordinates.
func (g *Game) logical(x, y int) (float64, float64) {
	r := g.window.ratio
	if r <= 0 {
		r = 1
	}
	return float64(x) / r, float64(y) / r
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	if img := g.canvas.img; img != nil {
		screen.DrawImage(img, nil)
	}
	g.drawParticles(screen)
	g.drawNeuralLines(screen)
	g.drawPage(screen)
	g.drawHeader(screen)
}

func (g *Game) drawParticles(screen *ebiten.Image) {
	s := float32(g.window.ratio)
	for _, p := range g.field.Particles() {
		x, y := p.Position()
		c := p.Color
		c.A = uint8(math.Round(255 * p.Opacity()))
		vector.DrawFilledCircle(screen, float32(x)*s, float32(y)*s, float32(p.Size)*s, premultiply(c), true)
	}
}

func (g *Game) drawNeuralLines(screen *ebiten.Image) {
	s := g.window.ratio
	elapsed := g.now()
	baseY := g.window.h - 80
	width := g.window.w / 3
	for i := 0; i < neuralLines; i++ {
		st := effects.NeuralLine(i, elapsed)
		w := width * st.ScaleX
		x := (g.window.w - w) / 2
		y := baseY + float64(i)*8
		c := lineColor
		c.A = uint8(math.Round(255 * st.Opacity))
		vector.StrokeLine(screen, float32(x*s), float32(y*s), float32((x+w)*s), float32(y*s), float32(s), premultiply(c), true)
	}
}

func (g *Game) drawPage(screen *ebiten.Image) {
	s := g.window.ratio
	scrollY := g.page.ScrollY()
	for _, sec := range g.page.Sections() {
		top := sec.Top - scrollY + headerHeight + 20
		if top+sec.Height < 0 || top > g.window.h {
			continue
		}
		for i, line := range sectionText(sec.ID) {
			ebitenutil.DebugPrintAt(screen, line, int(40*s), int((top+float64(i)*16)*s))
		}
	}
}

func (g *Game) drawHeader(screen *ebiten.Image) {
	s := g.window.ratio
	if g.page.Scrolled() {
		vector.DrawFilledRect(screen, 0, 0, float32(g.window.w*s), float32(headerHeight*s), headerColor, false)
	}
	active := g.page.Active()
	var nav []string
	for i, id := range sectionIDs {
		label := fmt.Sprintf("%d %s", i+1, id)
		if id == active {
			label = "[" + label + "]"
		}
		nav = append(nav, label)
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(nav, "  "), int(12*s), int(12*s))
}

// sectionText is the text shown for a page section.
func sectionText(id string) []string {
	switch id {
	case "home":
		return wrap(content.AboutMe, 80)
	case "features":
		var out []string
		for _, f := range content.Features {
			out = append(out, "* "+f.Title)
		}
		return out
	case "showcase":
		var out []string
		for _, p := range content.Projects {
			out = append(out, p.Name)
			out = append(out, wrap(p.Summary, 76)...)
			out = append(out, "")
		}
		return out
	case "timeline":
		var out []string
		for _, e := range append(append([]content.Entry{}, content.Work...), content.Education...) {
			out = append(out, fmt.Sprintf("%s, %s (%s - %s)", e.Title, e.Organization, e.StartDate, e.EndDate))
		}
		return out
	case "contact":
		return []string{"Reach out through the contact form on the website."}
	}
	return nil
}

func wrap(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

func premultiply(c color.RGBA) color.RGBA {
	a := uint16(c.A)
	return color.RGBA{
		R: uint8(uint16(c.R) * a / 255),
		G: uint8(uint16(c.G) * a / 255),
		B: uint8(uint16(c.B) * a / 255),
		A: c.A,
	}
}

// Layout reports a screen in device pixels so the grid stays sharp on
// high-density displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	ratio := ebiten.Monitor().DeviceScaleFactor()
	if ratio <= 0 {
		ratio = 1
	}
	g.window = window{w: float64(outsideWidth), h: float64(outsideHeight), ratio: ratio}
	g.field.Resize(g.window.w, g.window.h)
	g.page.Resize(g.window.h)
	g.observer.Update(outsideWidth, outsideHeight)
	return int(math.Ceil(float64(outsideWidth) * ratio)), int(math.Ceil(float64(outsideHeight) * ratio))
}
