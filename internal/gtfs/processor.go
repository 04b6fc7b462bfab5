package gtfs

import (
	"log/slog"
	"slices"

	"github.com/tidwall/rtree"

	"github.com/kdsecdev/GHANA-AI-HACKATHON/internal/logging"
	"github.com/kdsecdev/GHANA-AI-HACKATHON/internal/utils"
)

// Processor is the data access layer over one loaded GTFS feed. It holds an
// immutable snapshot of the feed's tables for its whole lifetime, so every
// method is safe for concurrent readers once construction has returned.
type Processor struct {
	path      string
	feed      *Feed
	logger    *slog.Logger
	stopIndex rtree.RTreeG[Stop]
}

// NewProcessor loads the feed at path (zip archive or directory) and returns
// a processor over it. Construction failure is fatal for that feed path; no
// partially loaded processor is ever returned.
func NewProcessor(path string) (*Processor, error) {
	return NewProcessorWithLogger(path, nil)
}

// NewProcessorWithLogger is NewProcessor with an injected logger.
func NewProcessorWithLogger(path string, logger *slog.Logger) (*Processor, error) {
	if logger == nil {
		logger = slog.Default().With(slog.String("component", "gtfs_processor"))
	}

	feed, err := LoadFeed(path, logger)
	if err != nil {
		logging.LogError(logger, "failed to load GTFS feed", err, slog.String("source", path))
		return nil, err
	}

	p := &Processor{path: path, feed: feed, logger: logger}
	for _, stop := range feed.Stops {
		point := [2]float64{stop.Longitude, stop.Latitude}
		p.stopIndex.Insert(point, point, stop)
	}
	return p, nil
}

// Path returns the feed source path the processor was constructed from.
func (p *Processor) Path() string {
	return p.path
}

// Feed exposes the underlying tabular snapshot, e.g. for the offline demand
// simulation which joins tables its own way.
func (p *Processor) Feed() *Feed {
	return p.feed
}

// Routes returns every route in the feed.
func (p *Processor) Routes() []Route {
	return slices.Clone(p.feed.Routes)
}

// Stops returns every stop in the feed.
func (p *Processor) Stops() []Stop {
	return slices.Clone(p.feed.Stops)
}

// Trips returns the trips table, narrowed to one route when routeID is
// non-empty.
func (p *Processor) Trips(routeID string) []Trip {
	if routeID == "" {
		return slices.Clone(p.feed.Trips)
	}
	var trips []Trip
	for _, trip := range p.feed.Trips {
		if trip.RouteID == routeID {
			trips = append(trips, trip)
		}
	}
	return trips
}

// StopTimes returns the stop_times table, narrowed to one trip when tripID
// is non-empty.
func (p *Processor) StopTimes(tripID string) []StopTime {
	if tripID == "" {
		return slices.Clone(p.feed.StopTimes)
	}
	var stopTimes []StopTime
	for _, stopTime := range p.feed.StopTimes {
		if stopTime.TripID == tripID {
			stopTimes = append(stopTimes, stopTime)
		}
	}
	return stopTimes
}

// Shapes returns shape points, narrowed to one shape when shapeID is
// non-empty. Points come back in feed order; callers that need a polyline
// must sort by Sequence.
func (p *Processor) Shapes(shapeID string) []ShapePoint {
	if shapeID == "" {
		return slices.Clone(p.feed.ShapePoints)
	}
	var points []ShapePoint
	for _, point := range p.feed.ShapePoints {
		if point.ShapeID == shapeID {
			points = append(points, point)
		}
	}
	return points
}

// Calendar returns calendar rows, narrowed to one service when serviceID is
// non-empty.
func (p *Processor) Calendar(serviceID string) []Calendar {
	if serviceID == "" {
		return slices.Clone(p.feed.Calendars)
	}
	var calendars []Calendar
	for _, calendar := range p.feed.Calendars {
		if calendar.ServiceID == serviceID {
			calendars = append(calendars, calendar)
		}
	}
	return calendars
}

// Frequencies returns frequency rows, narrowed to one trip when tripID is
// non-empty.
func (p *Processor) Frequencies(tripID string) []Frequency {
	if tripID == "" {
		return slices.Clone(p.feed.Frequencies)
	}
	var frequencies []Frequency
	for _, frequency := range p.feed.Frequencies {
		if frequency.TripID == tripID {
			frequencies = append(frequencies, frequency)
		}
	}
	return frequencies
}

// Transfers returns transfer rules, narrowed by origin and/or destination
// stop when the corresponding argument is non-empty.
func (p *Processor) Transfers(fromStopID, toStopID string) []Transfer {
	var transfers []Transfer
	for _, transfer := range p.feed.Transfers {
		if fromStopID != "" && transfer.FromStopID != fromStopID {
			continue
		}
		if toStopID != "" && transfer.ToStopID != toStopID {
			continue
		}
		transfers = append(transfers, transfer)
	}
	return transfers
}

// RouteStops returns the distinct stops served by a route, joining the
// route's trips through stop_times to the stops table. A stop served by
// several of the route's trips appears once, in stops-table order. Any empty
// intermediate step short-circuits to an empty result.
func (p *Processor) RouteStops(routeID string) []Stop {
	trips := p.Trips(routeID)
	if len(trips) == 0 {
		return nil
	}

	tripIDs := make(map[string]bool, len(trips))
	for _, trip := range trips {
		tripIDs[trip.ID] = true
	}

	stopIDs := make(map[string]bool)
	for _, stopTime := range p.feed.StopTimes {
		if tripIDs[stopTime.TripID] {
			stopIDs[stopTime.StopID] = true
		}
	}
	if len(stopIDs) == 0 {
		return nil
	}

	var stops []Stop
	for _, stop := range p.feed.Stops {
		if stopIDs[stop.ID] {
			stops = append(stops, stop)
		}
	}
	return stops
}

// StopsWithin returns every stop within radiusMeters of (lat, lon). The
// r-tree index narrows candidates to a bounding box; haversine distance
// makes the final cut.
func (p *Processor) StopsWithin(lat, lon, radiusMeters float64) []Stop {
	bounds := utils.CalculateBounds(lat, lon, radiusMeters)

	var stops []Stop
	p.stopIndex.Search(
		[2]float64{bounds.MinLon, bounds.MinLat},
		[2]float64{bounds.MaxLon, bounds.MaxLat},
		func(min, max [2]float64, stop Stop) bool {
			if utils.Distance(lat, lon, stop.Latitude, stop.Longitude) <= radiusMeters {
				stops = append(stops, stop)
			}
			return true
		},
	)
	return stops
}
