package ui

import (
	"strconv"

	"casetracker/casedata"

	"github.com/gdamore/tcell/v2"
)

const (
	dashboardTitle = "Malaysia COVID-19 Tracker"
	// The chart plots casedata.ChartWindow points; the label predates that window.
	chartTitle = "Last 30 days"
)

var (
	confirmedColor = tcell.ColorRed
	activeColor    = tcell.ColorYellow
	recoveredColor = tcell.ColorLime
	fatalColor     = tcell.ColorGray
	chartColor     = tcell.ColorAqua
)

// Placement pairs a region with the widget drawn into it.
type Placement struct {
	Name   string
	Area   Rect
	Widget Widget
}

// Dashboard renders one immutable snapshot.
type Dashboard struct {
	snapshot *casedata.Snapshot
	widgets  []Widget
}

// NewDashboard builds the widget set once; the snapshot never changes, so every
// frame reuses it.
func NewDashboard(snapshot *casedata.Snapshot) *Dashboard {
	return &Dashboard{
		snapshot: snapshot,
		widgets:  buildWidgets(snapshot),
	}
}

func (d *Dashboard) Snapshot() *casedata.Snapshot {
	return d.snapshot
}

var placementNames = [...]string{"title", "confirmed", "active", "recovered", "fatal", "chart"}

// Layout maps each widget onto its region for the given viewport.
func (d *Dashboard) Layout(viewport Rect) []Placement {
	leaves := ComputeRegions(viewport).Leaves()
	out := make([]Placement, len(leaves))
	for i, area := range leaves {
		out[i] = Placement{Name: placementNames[i], Area: area, Widget: d.widgets[i]}
	}
	return out
}

// Draw implements Surface.
func (d *Dashboard) Draw(screen tcell.Screen) {
	width, height := screen.Size()
	for _, p := range d.Layout(Rect{Width: width, Height: height}) {
		Render(screen, p.Area, p.Widget)
	}
}

func buildWidgets(snapshot *casedata.Snapshot) []Widget {
	var latest casedata.Totals
	if snapshot != nil {
		latest = snapshot.Latest
	}
	return []Widget{
		TextWidget("", Line{Text: dashboardTitle}),
		tile("Confirmed Cases", latest.Confirmed, confirmedColor),
		tile("Active Cases", latest.Active(), activeColor),
		tile("Recovered Cases", latest.Recovered, recoveredColor),
		tile("Fatal Cases", latest.Deaths, fatalColor),
		BarChartWidget(chartTitle, chartBars(snapshot.ChartPoints()), snapshot.ChartMax(), chartColor),
	}
}

func tile(label string, value uint64, color tcell.Color) Widget {
	return TextWidget("",
		Line{Text: label},
		Line{Text: strconv.FormatUint(value, 10), Color: color},
	)
}

func chartBars(points []casedata.Point) []Bar {
	bars := make([]Bar, len(points))
	for i, p := range points {
		bars[i] = Bar{Label: p.Label(), Value: p.Count}
	}
	return bars
}
