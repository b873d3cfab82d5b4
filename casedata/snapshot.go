// Package casedata holds the immutable case-statistics snapshot for one location
// and the helpers the dashboard needs to read it.
package casedata

import (
	"math"
	"time"
)

const (
	// ChartWindow is the number of most recent timeline points shown as bars.
	ChartWindow = 22
	// ChartHeadroom is added to the confirmed total to get the chart's vertical maximum.
	ChartHeadroom = 1000
)

// Snapshot is a fetched case-statistics document for a single location.
// It is immutable once returned by Decode.
type Snapshot struct {
	Location    Location
	LastUpdated time.Time
	Latest      Totals
	Timelines   Timelines
	Source      Source
}

// Location carries the descriptive, display-only fields of the snapshot.
type Location struct {
	ID                uint64
	Country           string
	CountryCode       string
	CountryPopulation uint64
	County            string
	Province          string
	Coordinates       Coordinates
}

type Coordinates struct {
	Latitude  string
	Longitude string
}

// Totals are cumulative counts as of LastUpdated.
type Totals struct {
	Confirmed uint64
	Deaths    uint64
	Recovered uint64
}

// Active returns confirmed minus recovered, clamped at zero when the upstream
// data reports more recoveries than confirmations.
func (t Totals) Active() uint64 {
	if t.Recovered >= t.Confirmed {
		return 0
	}
	return t.Confirmed - t.Recovered
}

type Timelines struct {
	Confirmed Timeline
	Deaths    Timeline
	Recovered Timeline
}

// Timeline is a chronologically ascending series of cumulative counts.
// Latest is the source's own current figure and is authoritative for display;
// it is not derived from the last point.
type Timeline struct {
	Latest uint64
	Points []Point
}

// Point is one dated cumulative count.
type Point struct {
	Date  time.Time
	Count uint64
}

// Label formats the point's date as month/day for chart bars.
func (p Point) Label() string {
	return p.Date.UTC().Format("01/02")
}

// Len reports the number of points in the series.
func (t Timeline) Len() int {
	return len(t.Points)
}

// Window returns the most recent n points in ascending date order. The result is
// a copy; a shorter series yields fewer points and n <= 0 yields none.
func (t Timeline) Window(n int) []Point {
	if n <= 0 || len(t.Points) == 0 {
		return []Point{}
	}
	start := len(t.Points) - n
	if start < 0 {
		start = 0
	}
	out := make([]Point, len(t.Points)-start)
	copy(out, t.Points[start:])
	return out
}

// ChartPoints returns the confirmed-case window plotted by the dashboard.
func (s *Snapshot) ChartPoints() []Point {
	if s == nil {
		return []Point{}
	}
	return s.Timelines.Confirmed.Window(ChartWindow)
}

// ChartMax returns the bar chart's vertical maximum: the confirmed total plus a
// fixed headroom, saturating instead of wrapping.
func (s *Snapshot) ChartMax() uint64 {
	if s == nil {
		return ChartHeadroom
	}
	if s.Latest.Confirmed > math.MaxUint64-ChartHeadroom {
		return math.MaxUint64
	}
	return s.Latest.Confirmed + ChartHeadroom
}

// Source records where and when the raw document was obtained.
type Source struct {
	URL       string
	FetchedAt time.Time
	Bytes     int64
	Digest    uint64
}

// WithSource returns a shallow copy of s carrying src. Timelines are shared;
// snapshots are never mutated after decoding.
func (s *Snapshot) WithSource(src Source) *Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Source = src
	return &out
}
