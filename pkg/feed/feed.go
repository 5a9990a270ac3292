package feed

import (
	"fmt"
	"slices"

	"ecovoiceapi/pkg/config"
	"ecovoiceapi/pkg/geo"
	"ecovoiceapi/pkg/schemas"
)

type SortMode string

const (
	SortByPoints   SortMode = "points"
	SortByDistance SortMode = "distance"
)

const UnknownLocation = "Unknown"

type Entry struct {
	*schemas.Report
	LocationLabel string   `json:"locationLabel"`
	DistanceKm    *float64 `json:"distanceKm"`
}

// WorkingSet holds the unattended reports shown by the feed together with the
// caller's position, if one was provided.
type WorkingSet struct {
	entries  []*Entry
	observer *geo.Coordinate
}

func NewWorkingSet(reports []*schemas.Report, observer *geo.Coordinate) *WorkingSet {

	ws := &WorkingSet{observer: observer}
	for _, report := range reports {
		if report.Status != config.STATUS_UNATTENDED {
			continue
		}
		ws.entries = append(ws.entries, ws.newEntry(report))
	}
	return ws

}

func (ws *WorkingSet) newEntry(report *schemas.Report) *Entry {

	entry := &Entry{Report: report, LocationLabel: LocationLabel(report)}
	if report.Location != nil && ws.observer != nil {
		d := geo.DistanceKm(*ws.observer, geo.Coordinate{Lat: report.Location.Lat, Lng: report.Location.Lng})
		entry.DistanceKm = &d
	}
	return entry

}

// LocationLabel renders a report's coordinate as "lat, lng".
func LocationLabel(report *schemas.Report) string {
	if report.Location == nil {
		return UnknownLocation
	}
	return fmt.Sprintf("%g, %g", report.Location.Lat, report.Location.Lng)
}

func (ws *WorkingSet) Len() int {
	return len(ws.entries)
}

// Sorted returns the entries ordered by mode. Distance mode without an
// observer keeps store order. Entries with unknown distance sort last.
func (ws *WorkingSet) Sorted(mode SortMode) []*Entry {

	sorted := slices.Clone(ws.entries)
	if sorted == nil {
		sorted = []*Entry{}
	}

	switch mode {
	case SortByPoints:
		slices.SortStableFunc(sorted, func(a, b *Entry) int {
			return b.Points - a.Points
		})
	case SortByDistance:
		if ws.observer == nil {
			return sorted
		}
		slices.SortStableFunc(sorted, compareDistance)
	}

	return sorted

}

func compareDistance(a, b *Entry) int {

	switch {
	case a.DistanceKm == nil && b.DistanceKm == nil:
		return 0
	case a.DistanceKm == nil:
		return 1
	case b.DistanceKm == nil:
		return -1
	case *a.DistanceKm < *b.DistanceKm:
		return -1
	case *a.DistanceKm > *b.DistanceKm:
		return 1
	}
	return 0

}
