// Package demand fabricates passenger demand datasets used to train the
// demand prediction model. Two generators exist: Synthetic enumerates a
// configurable route/stop universe, FromFeed derives records from a real
// GTFS feed's schedule structure. Both are fully deterministic for a fixed
// seed.
package demand

// Record is one passenger count observation for a route and stop at an hour
// of day, on a weekday numbered 0 (Monday) through 6 (Sunday).
type Record struct {
	RouteID        string `csv:"route_id"`
	StopID         string `csv:"stop_id"`
	Hour           int    `csv:"hour"`
	Weekday        int    `csv:"weekday"`
	PassengerCount int    `csv:"passenger_count"`
}

// MaxPassengerCount caps generated counts; the Poisson tail above the cap is
// clipped rather than resampled.
const MaxPassengerCount = 100

func clip(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
