package demand

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/kdsecdev/GHANA-AI-HACKATHON/internal/gtfs"
)

// SimulatedRate is the single Poisson rate used when deriving demand from a
// real feed; unlike the synthetic generator there is no time-of-day shaping.
const SimulatedRate = 20.0

// FromFeed derives a demand dataset from a real feed's schedule structure.
// Every stop_times row whose trip has a calendar row becomes one record:
// the hour comes from the arrival time (rows with malformed times are
// dropped), the weekday is drawn uniformly, and the passenger count is
// Poisson(SimulatedRate) clipped to [0, MaxPassengerCount]. Deterministic
// for a fixed seed.
func FromFeed(feed *gtfs.Feed, seed int64) []Record {
	services := make(map[string]bool, len(feed.Calendars))
	for _, calendar := range feed.Calendars {
		services[calendar.ServiceID] = true
	}

	// Inner join trips to calendar: trips whose service has no weekly
	// pattern contribute nothing.
	routeByTrip := make(map[string]string, len(feed.Trips))
	for _, trip := range feed.Trips {
		if services[trip.ServiceID] {
			routeByTrip[trip.ID] = trip.RouteID
		}
	}

	rng := rand.New(rand.NewSource(seed))

	var records []Record
	for _, stopTime := range feed.StopTimes {
		routeID, ok := routeByTrip[stopTime.TripID]
		if !ok {
			continue
		}
		hour, ok := parseHour(stopTime.ArrivalTime)
		if !ok {
			continue
		}
		records = append(records, Record{
			RouteID:        routeID,
			StopID:         stopTime.StopID,
			Hour:           hour,
			Weekday:        rng.Intn(7),
			PassengerCount: clip(poisson(rng, SimulatedRate), 0, MaxPassengerCount),
		})
	}
	return records
}

// parseHour extracts the hour of day from a GTFS HH:MM:SS time. Hours past
// 23 denote after-midnight service and wrap around.
func parseHour(value string) (int, bool) {
	head := value
	if i := strings.IndexByte(value, ':'); i >= 0 {
		head = value[:i]
	}
	hour, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || hour < 0 {
		return 0, false
	}
	return hour % 24, true
}
