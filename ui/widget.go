package ui

import "github.com/gdamore/tcell/v2"

// WidgetKind selects which fields of a Widget are meaningful.
type WidgetKind int

const (
	// KindText is a bordered block of center-aligned lines.
	KindText WidgetKind = iota
	// KindBarChart is a bordered vertical bar chart.
	KindBarChart
)

func (k WidgetKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBarChart:
		return "barchart"
	default:
		return "unknown"
	}
}

const (
	defaultBarWidth = 6
	defaultBarGap   = 1
)

// Line is one row of a text widget.
type Line struct {
	Text  string
	Color tcell.Color
}

// Bar is one labelled value of a bar chart.
type Bar struct {
	Label string
	Value uint64
}

// Widget is the closed set of things the dashboard draws. Text widgets use
// Lines; bar charts use Bars, Max and the bar geometry.
type Widget struct {
	Kind  WidgetKind
	Title string

	Lines []Line

	Bars     []Bar
	Max      uint64
	BarWidth int
	BarGap   int
	BarColor tcell.Color
}

func TextWidget(title string, lines ...Line) Widget {
	return Widget{Kind: KindText, Title: title, Lines: lines}
}

func BarChartWidget(title string, bars []Bar, max uint64, color tcell.Color) Widget {
	return Widget{
		Kind:     KindBarChart,
		Title:    title,
		Bars:     bars,
		Max:      max,
		BarWidth: defaultBarWidth,
		BarGap:   defaultBarGap,
		BarColor: color,
	}
}
