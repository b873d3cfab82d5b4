package casedata

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNoLocation is returned when the document has no "location" object.
var ErrNoLocation = errors.New("casedata: document has no location")

type locationDocument struct {
	Location *locationEntry `json:"location"`
}

type locationEntry struct {
	ID                uint64          `json:"id"`
	Country           string          `json:"country"`
	CountryCode       string          `json:"country_code"`
	CountryPopulation uint64          `json:"country_population"`
	County            string          `json:"county"`
	Province          string          `json:"province"`
	LastUpdated       time.Time       `json:"last_updated"`
	Coordinates       coordinateEntry `json:"coordinates"`
	Latest            totalsEntry     `json:"latest"`
	Timelines         timelinesEntry  `json:"timelines"`
}

type coordinateEntry struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	// Some tracker deployments publish the misspelled key.
	Longtitude string `json:"longtitude"`
}

type totalsEntry struct {
	Confirmed uint64 `json:"confirmed"`
	Deaths    uint64 `json:"deaths"`
	Recovered uint64 `json:"recovered"`
}

type timelinesEntry struct {
	Confirmed timelineEntry `json:"confirmed"`
	Deaths    timelineEntry `json:"deaths"`
	Recovered timelineEntry `json:"recovered"`
}

type timelineEntry struct {
	Latest   uint64            `json:"latest"`
	Timeline map[string]uint64 `json:"timeline"`
}

// Decode parses a single-location tracker document into a Snapshot.
// Timeline keys must be RFC 3339 timestamps; they are normalized to UTC and
// sorted ascending.
func Decode(body []byte) (*Snapshot, error) {
	var doc locationDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("casedata: decode document: %w", err)
	}
	if doc.Location == nil {
		return nil, ErrNoLocation
	}
	loc := doc.Location

	confirmed, err := decodeTimeline("confirmed", loc.Timelines.Confirmed)
	if err != nil {
		return nil, err
	}
	deaths, err := decodeTimeline("deaths", loc.Timelines.Deaths)
	if err != nil {
		return nil, err
	}
	recovered, err := decodeTimeline("recovered", loc.Timelines.Recovered)
	if err != nil {
		return nil, err
	}

	longitude := strings.TrimSpace(loc.Coordinates.Longitude)
	if longitude == "" {
		longitude = strings.TrimSpace(loc.Coordinates.Longtitude)
	}

	return &Snapshot{
		Location: Location{
			ID:                loc.ID,
			Country:           loc.Country,
			CountryCode:       loc.CountryCode,
			CountryPopulation: loc.CountryPopulation,
			County:            loc.County,
			Province:          loc.Province,
			Coordinates: Coordinates{
				Latitude:  strings.TrimSpace(loc.Coordinates.Latitude),
				Longitude: longitude,
			},
		},
		LastUpdated: loc.LastUpdated.UTC(),
		Latest: Totals{
			Confirmed: loc.Latest.Confirmed,
			Deaths:    loc.Latest.Deaths,
			Recovered: loc.Latest.Recovered,
		},
		Timelines: Timelines{
			Confirmed: confirmed,
			Deaths:    deaths,
			Recovered: recovered,
		},
	}, nil
}

func decodeTimeline(name string, entry timelineEntry) (Timeline, error) {
	points := make([]Point, 0, len(entry.Timeline))
	for key, count := range entry.Timeline {
		ts, err := time.Parse(time.RFC3339, strings.TrimSpace(key))
		if err != nil {
			return Timeline{}, fmt.Errorf("casedata: %s timeline key %q: %w", name, key, err)
		}
		points = append(points, Point{Date: ts.UTC(), Count: count})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Date.Equal(points[j].Date) {
			return points[i].Count > points[j].Count
		}
		return points[i].Date.Before(points[j].Date)
	})
	// Keys with different offsets can name the same instant; keep the larger count.
	out := points[:0]
	for _, p := range points {
		if n := len(out); n > 0 && out[n-1].Date.Equal(p.Date) {
			continue
		}
		out = append(out, p)
	}
	return Timeline{Latest: entry.Latest, Points: out}, nil
}
