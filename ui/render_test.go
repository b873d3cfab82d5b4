package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const sentinel = '#'

func newTestScreen(t testing.TB, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(width, height)
	return screen
}

func fillScreen(screen tcell.Screen, r rune) {
	w, h := screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		}
	}
}

func rowText(screen tcell.Screen, y, x0, x1 int) string {
	var b strings.Builder
	for x := x0; x < x1; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func assertUntouchedOutside(t *testing.T, screen tcell.Screen, area Rect) {
	t.Helper()
	w, h := screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if area.HasPoint(x, y) {
				continue
			}
			if r, _, _, _ := screen.GetContent(x, y); r != sentinel {
				t.Fatalf("cell (%d,%d) outside %+v was overwritten with %q", x, y, area, r)
			}
		}
	}
}

func TestRenderTextTile(t *testing.T) {
	screen := newTestScreen(t, 40, 10)
	fillScreen(screen, sentinel)
	area := Rect{X: 2, Y: 1, Width: 20, Height: 4}

	Render(screen, area, TextWidget("",
		Line{Text: "Confirmed Cases"},
		Line{Text: "5000", Color: tcell.ColorRed},
	))

	if r, _, _, _ := screen.GetContent(2, 1); r != tview.Borders.TopLeft {
		t.Fatalf("expected top-left border, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(21, 4); r != tview.Borders.BottomRight {
		t.Fatalf("expected bottom-right border, got %q", r)
	}
	label := rowText(screen, 2, 3, 21)
	if !strings.Contains(label, "Confirmed Cases") {
		t.Fatalf("expected label row, got %q", label)
	}
	value := rowText(screen, 3, 3, 21)
	idx := strings.Index(value, "5000")
	if idx < 0 {
		t.Fatalf("expected value row, got %q", value)
	}
	if strings.TrimSpace(value) != "5000" || idx < 5 {
		t.Fatalf("expected centered value, got %q", value)
	}
	_, _, style, _ := screen.GetContent(3+idx, 3)
	if fg, _, _ := style.Decompose(); fg != tcell.ColorRed {
		t.Fatalf("expected red value, got %v", fg)
	}
	assertUntouchedOutside(t, screen, area)
}

func TestRenderTextTruncates(t *testing.T) {
	screen := newTestScreen(t, 20, 5)
	fillScreen(screen, sentinel)
	area := Rect{X: 0, Y: 0, Width: 8, Height: 4}

	Render(screen, area, TextWidget("", Line{Text: "Recovered Cases"}, Line{Text: "123456789"}))

	if got := rowText(screen, 1, 1, 7); got != "Recove" {
		t.Fatalf("expected truncated label, got %q", got)
	}
	if got := rowText(screen, 2, 1, 7); got != "123456" {
		t.Fatalf("expected truncated value, got %q", got)
	}
	assertUntouchedOutside(t, screen, area)
}

func TestRenderDegenerateAreas(t *testing.T) {
	screen := newTestScreen(t, 10, 6)
	chart := BarChartWidget("Last 30 days", []Bar{{Label: "01/01", Value: 10}}, 100, tcell.ColorAqua)
	text := TextWidget("", Line{Text: "Active Cases"}, Line{Text: "1"})
	areas := []Rect{
		{Width: 0, Height: 4},
		{Width: 1, Height: 4},
		{Width: 2, Height: 2},
		{Width: 3, Height: 3},
		{X: 8, Y: 4, Width: 6, Height: 6},
	}
	for _, area := range areas {
		fillScreen(screen, sentinel)
		Render(screen, area, text)
		Render(screen, area, chart)
		assertUntouchedOutside(t, screen, area)
	}
	Render(nil, Rect{Width: 5, Height: 5}, text)
}

func TestRenderBarChart(t *testing.T) {
	screen := newTestScreen(t, 30, 10)
	fillScreen(screen, sentinel)
	area := Rect{Width: 30, Height: 10}
	bars := []Bar{
		{Label: "03/01", Value: 3000},
		{Label: "03/02", Value: 6000},
		{Label: "03/03", Value: 0},
	}

	Render(screen, area, BarChartWidget("Last 30 days", bars, 6000, tcell.ColorAqua))

	// Inner area is (1,1) 28x8: seven bar rows and a label row at y=8.
	if title := rowText(screen, 0, 1, 13); title != "Last 30 days" {
		t.Fatalf("expected chart title, got %q", title)
	}
	if r, _, _, _ := screen.GetContent(8, 1); r != '█' {
		t.Fatalf("expected full bar at top row, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(1, 4); r != '▄' {
		t.Fatalf("expected half block for half-height bar, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(1, 3); r != ' ' {
		t.Fatalf("expected empty cell above half-height bar, got %q", r)
	}
	_, _, style, _ := screen.GetContent(1, 5)
	if fg, _, _ := style.Decompose(); fg != tcell.ColorAqua {
		t.Fatalf("expected bar colour aqua, got %v", fg)
	}
	if got := rowText(screen, 7, 1, 7); got != "█3000█" {
		t.Fatalf("expected value on bar base, got %q", got)
	}
	if got := rowText(screen, 8, 1, 22); got != "03/01  03/02  03/03  " {
		t.Fatalf("unexpected label row %q", got)
	}
	if got := rowText(screen, 7, 15, 21); got != "  0   " {
		t.Fatalf("expected zero value for empty bar, got %q", got)
	}
	assertUntouchedOutside(t, screen, area)
}

func TestRenderBarChartDropsBarsThatDoNotFit(t *testing.T) {
	screen := newTestScreen(t, 30, 10)
	bars := make([]Bar, 22)
	for i := range bars {
		bars[i] = Bar{Label: "L" + string(rune('a'+i)), Value: uint64(i)}
	}
	Render(screen, Rect{Width: 30, Height: 10}, BarChartWidget("", bars, 100, tcell.ColorAqua))

	labels := strings.Fields(rowText(screen, 8, 1, 29))
	if strings.Join(labels, ",") != "La,Lb,Lc,Ld" {
		t.Fatalf("expected first four bars only, got %v", labels)
	}
}

func TestBarEighths(t *testing.T) {
	cases := []struct {
		value, max uint64
		rows, want int
	}{
		{3000, 6000, 7, 28},
		{6000, 6000, 7, 56},
		{7000, 6000, 7, 56},
		{0, 6000, 7, 0},
		{10, 0, 7, 0},
		{10, 20, 0, 0},
	}
	for _, tc := range cases {
		if got := barEighths(tc.value, tc.max, tc.rows); got != tc.want {
			t.Fatalf("barEighths(%d, %d, %d) = %d, expected %d", tc.value, tc.max, tc.rows, got, tc.want)
		}
	}
}

func TestFormatBarValue(t *testing.T) {
	cases := []struct {
		value uint64
		width int
		want  string
	}{
		{500, 6, "500"},
		{999999, 6, "999999"},
		{1234567, 6, "1.2M"},
		{10000000, 6, "10M"},
		{123456789012, 3, "123"},
		{0, 6, "0"},
		{42, 0, ""},
	}
	for _, tc := range cases {
		if got := formatBarValue(tc.value, tc.width); got != tc.want {
			t.Fatalf("formatBarValue(%d, %d) = %q, expected %q", tc.value, tc.width, got, tc.want)
		}
	}
}

func TestLayoutBars(t *testing.T) {
	if got := layoutBars(28, 6, 1, 22); got.count != 4 || got.width != 6 {
		t.Fatalf("unexpected layout %+v", got)
	}
	if got := layoutBars(160, 6, 1, 10); got.count != 10 {
		t.Fatalf("expected all 10 bars to fit, got %+v", got)
	}
	if got := layoutBars(4, 6, 1, 3); got.count != 1 || got.width != 4 {
		t.Fatalf("expected one narrowed bar, got %+v", got)
	}
	if got := layoutBars(0, 6, 1, 3); got.count != 0 {
		t.Fatalf("expected no bars in zero width, got %+v", got)
	}
}
