package ui

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
)

// barGlyphs are partial block heights in eighths of a cell.
var barGlyphs = [...]rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Render draws w into area. Every cell write is clipped to area.
func Render(screen tcell.Screen, area Rect, w Widget) {
	if screen == nil || area.Empty() {
		return
	}
	clipped := &clippedScreen{Screen: screen, clip: area}
	switch w.Kind {
	case KindText:
		renderText(clipped, area, w)
	case KindBarChart:
		renderBarChart(clipped, area, w)
	}
}

// clippedScreen drops writes that fall outside clip.
type clippedScreen struct {
	tcell.Screen
	clip Rect
}

func (c *clippedScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	if !c.clip.HasPoint(x, y) {
		return
	}
	// A wide rune in the last column would spill into the neighbour.
	if runewidth.RuneWidth(primary) > 1 && x+1 >= c.clip.X+c.clip.Width {
		primary, combining = ' ', nil
	}
	c.Screen.SetContent(x, y, primary, combining, style)
}

func drawFrame(screen tcell.Screen, area Rect, title string) {
	box := tview.NewBox().
		SetBorder(true).
		SetBackgroundColor(tcell.ColorDefault)
	if title != "" {
		box.SetTitle(tview.Escape(title)).SetTitleAlign(tview.AlignLeft)
	}
	box.SetRect(area.X, area.Y, area.Width, area.Height)
	box.Draw(screen)
}

func renderText(screen tcell.Screen, area Rect, w Widget) {
	drawFrame(screen, area, w.Title)
	inner := area.Inner()
	if inner.Empty() {
		return
	}
	for i, line := range w.Lines {
		if i >= inner.Height {
			break
		}
		text := runewidth.Truncate(line.Text, inner.Width, "")
		if text == "" {
			continue
		}
		tview.Print(screen, tview.Escape(text), inner.X, inner.Y+i, inner.Width, tview.AlignCenter, line.Color)
	}
}

// barLayout is the horizontal placement of the bars that fit in a chart.
type barLayout struct {
	width int
	gap   int
	count int
}

func layoutBars(innerWidth, barWidth, gap, bars int) barLayout {
	if barWidth <= 0 {
		barWidth = defaultBarWidth
	}
	if gap < 0 {
		gap = 0
	}
	if innerWidth <= 0 || bars == 0 {
		return barLayout{width: barWidth, gap: gap}
	}
	if barWidth > innerWidth {
		barWidth = innerWidth
	}
	count := (innerWidth + gap) / (barWidth + gap)
	if count > bars {
		count = bars
	}
	return barLayout{width: barWidth, gap: gap, count: count}
}

// barEighths scales value against max into eighths of the available rows.
func barEighths(value, max uint64, rows int) int {
	if rows <= 0 || max == 0 || value == 0 {
		return 0
	}
	if value >= max {
		return rows * 8
	}
	return int(float64(value) / float64(max) * float64(rows*8))
}

// formatBarValue renders value so it fits width cells, falling back to SI
// notation (1.2M) and finally truncation.
func formatBarValue(value uint64, width int) string {
	if width <= 0 {
		return ""
	}
	plain := strconv.FormatUint(value, 10)
	if runewidth.StringWidth(plain) <= width {
		return plain
	}
	scaled, prefix := humanize.ComputeSI(float64(value))
	short := strings.TrimSuffix(strconv.FormatFloat(scaled, 'f', 1, 64), ".0") + prefix
	if runewidth.StringWidth(short) > width {
		short = strings.TrimSuffix(strconv.FormatFloat(scaled, 'f', 0, 64), ".0") + prefix
	}
	return runewidth.Truncate(short, width, "")
}

func renderBarChart(screen tcell.Screen, area Rect, w Widget) {
	drawFrame(screen, area, w.Title)
	inner := area.Inner()
	if inner.Empty() {
		return
	}

	layout := layoutBars(inner.Width, w.BarWidth, w.BarGap, len(w.Bars))
	rows := inner.Height - 1
	labelY := inner.Y + inner.Height - 1
	barStyle := tcell.StyleDefault.Foreground(w.BarColor)
	valueOnBar := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(w.BarColor)

	for i := 0; i < layout.count; i++ {
		bar := w.Bars[i]
		x := inner.X + i*(layout.width+layout.gap)
		eighths := barEighths(bar.Value, w.Max, rows)

		for row := 0; row < rows; row++ {
			level := eighths - row*8
			if level <= 0 {
				break
			}
			if level > 8 {
				level = 8
			}
			y := inner.Y + rows - 1 - row
			for dx := 0; dx < layout.width; dx++ {
				screen.SetContent(x+dx, y, barGlyphs[level], nil, barStyle)
			}
		}

		if rows > 0 {
			style := barStyle
			if eighths >= 8 {
				style = valueOnBar
			}
			drawCentered(screen, x, inner.Y+rows-1, layout.width, formatBarValue(bar.Value, layout.width), style)
		}
		drawCentered(screen, x, labelY, layout.width, bar.Label, tcell.StyleDefault)
	}
}

// drawCentered writes text centered in [x, x+width) on row y, truncating it to fit.
func drawCentered(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	if width <= 0 || text == "" {
		return
	}
	text = runewidth.Truncate(text, width, "")
	col := x + (width-runewidth.StringWidth(text))/2
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		screen.SetContent(col, y, r, nil, style)
		col += rw
	}
}
