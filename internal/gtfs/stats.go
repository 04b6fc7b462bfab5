package gtfs

import (
	"sort"
	"time"
)

const dateLayout = "20060102"

// RouteStats summarizes the scheduling footprint of a single route.
type RouteStats struct {
	RouteID                   string `json:"route_id"`
	TotalTrips                int    `json:"total_trips"`
	TotalStops                int    `json:"total_stops"`
	Directions                int    `json:"directions"`
	ServiceIDs                int    `json:"service_ids"`
	HasShapes                 bool   `json:"has_shapes"`
	WheelchairAccessibleTrips int    `json:"wheelchair_accessible_trips"`
	BikesAllowedTrips         int    `json:"bikes_allowed_trips"`
}

// CalculateRouteStats computes trip, stop, direction and service counts for
// one route. ok is false when the route has no trips. Counts that depend on
// an optional trips column (direction_id, wheelchair_accessible,
// bikes_allowed) fall back to their defaults when the column is absent from
// the feed.
func (p *Processor) CalculateRouteStats(routeID string) (RouteStats, bool) {
	trips := p.Trips(routeID)
	if len(trips) == 0 {
		return RouteStats{}, false
	}

	stats := RouteStats{
		RouteID:    routeID,
		TotalTrips: len(trips),
		TotalStops: len(p.RouteStops(routeID)),
		Directions: 1,
		HasShapes:  len(p.feed.ShapePoints) > 0 && p.feed.HasColumn(TableTrips, "shape_id"),
	}

	services := make(map[string]bool)
	for _, trip := range trips {
		services[trip.ServiceID] = true
	}
	stats.ServiceIDs = len(services)

	if p.feed.HasColumn(TableTrips, "direction_id") {
		directions := make(map[string]bool)
		for _, trip := range trips {
			directions[trip.DirectionID] = true
		}
		stats.Directions = len(directions)
	}

	if p.feed.HasColumn(TableTrips, "wheelchair_accessible") {
		for _, trip := range trips {
			if trip.WheelchairAccessible == 1 {
				stats.WheelchairAccessibleTrips++
			}
		}
	}

	if p.feed.HasColumn(TableTrips, "bikes_allowed") {
		for _, trip := range trips {
			if trip.BikesAllowed == 1 {
				stats.BikesAllowedTrips++
			}
		}
	}

	return stats, true
}

// ServiceDates enumerates every date in the calendar row's [start, end]
// range whose weekday the service runs on, in ascending order. The result is
// empty when no calendar row matches or its dates fail to parse.
//
// The walk is O(days in range); transit calendars span months, so this stays
// cheap, but nothing below caps the range arithmetically. calendar_dates
// add/remove exceptions are deliberately not applied here.
func (p *Processor) ServiceDates(serviceID string) []time.Time {
	rows := p.Calendar(serviceID)
	if len(rows) == 0 {
		return nil
	}
	service := rows[0]

	start, err := time.Parse(dateLayout, service.StartDate)
	if err != nil {
		return nil
	}
	end, err := time.Parse(dateLayout, service.EndDate)
	if err != nil {
		return nil
	}

	active := map[time.Weekday]bool{
		time.Monday:    service.Monday == 1,
		time.Tuesday:   service.Tuesday == 1,
		time.Wednesday: service.Wednesday == 1,
		time.Thursday:  service.Thursday == 1,
		time.Friday:    service.Friday == 1,
		time.Saturday:  service.Saturday == 1,
		time.Sunday:    service.Sunday == 1,
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if active[d.Weekday()] {
			dates = append(dates, d)
		}
	}
	return dates
}

// Summary describes the size and table coverage of the loaded feed.
type Summary struct {
	FeedInfo         *FeedInfo `json:"feed_info,omitempty"`
	Agencies         int       `json:"agencies"`
	Routes           int       `json:"routes"`
	Stops            int       `json:"stops"`
	Trips            int       `json:"trips"`
	StopTimes        int       `json:"stop_times"`
	Shapes           int       `json:"shapes"`
	CalendarServices int       `json:"calendar_services"`
	HasFrequencies   bool      `json:"has_frequencies"`
	HasTransfers     bool      `json:"has_transfers"`
	HasFeedInfo      bool      `json:"has_feed_info"`
	RouteTypes       []int     `json:"route_types"`
}

// Summary returns feed-wide counts, optional-table presence flags, the
// distinct route types in use, and the first feed_info row when one exists.
func (p *Processor) Summary() Summary {
	summary := Summary{
		Agencies:         len(p.feed.Agencies),
		Routes:           len(p.feed.Routes),
		Stops:            len(p.feed.Stops),
		Trips:            len(p.feed.Trips),
		StopTimes:        len(p.feed.StopTimes),
		Shapes:           len(p.feed.ShapePoints),
		CalendarServices: len(p.feed.Calendars),
		HasFrequencies:   p.feed.Has(TableFrequencies),
		HasTransfers:     p.feed.Has(TableTransfers),
		HasFeedInfo:      p.feed.Has(TableFeedInfo),
		RouteTypes:       []int{},
	}

	if p.feed.HasColumn(TableRoutes, "route_type") {
		seen := make(map[int]bool)
		for _, route := range p.feed.Routes {
			if !seen[route.Type] {
				seen[route.Type] = true
				summary.RouteTypes = append(summary.RouteTypes, route.Type)
			}
		}
		sort.Ints(summary.RouteTypes)
	}

	if len(p.feed.FeedInfos) > 0 {
		info := p.feed.FeedInfos[0]
		summary.FeedInfo = &info
	}

	return summary
}
