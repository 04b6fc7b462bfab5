package gtfs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRouteStats(t *testing.T) {
	p := basicProcessor(t)

	stats, ok := p.CalculateRouteStats("R1")
	require.True(t, ok)
	assert.Equal(t, RouteStats{
		RouteID:                   "R1",
		TotalTrips:                2,
		TotalStops:                3,
		Directions:                2,
		ServiceIDs:                1,
		HasShapes:                 true,
		WheelchairAccessibleTrips: 1,
		BikesAllowedTrips:         1,
	}, stats)

	stats, ok = p.CalculateRouteStats("R2")
	require.True(t, ok)
	assert.Equal(t, 1, stats.TotalTrips)
	assert.Equal(t, 2, stats.TotalStops)
	assert.Equal(t, 1, stats.Directions)
}

func TestCalculateRouteStatsUnknownRoute(t *testing.T) {
	p := basicProcessor(t)

	_, ok := p.CalculateRouteStats("R9")
	assert.False(t, ok)
}

func TestCalculateRouteStatsOptionalColumnsAbsent(t *testing.T) {
	tables := basicFeed()
	tables["trips.txt"] = "route_id,service_id,trip_id\n" +
		"R1,WK,T1\n" +
		"R1,SAT,T2\n"
	tables["stop_times.txt"] = "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
		"T1,06:00:00,06:00:00,S1,1\n" +
		"T2,07:00:00,07:00:00,S2,1\n"
	delete(tables, "shapes.txt")

	p, err := NewProcessor(writeFeedZip(t, tables))
	require.NoError(t, err)

	stats, ok := p.CalculateRouteStats("R1")
	require.True(t, ok)

	// With direction_id absent every route reports one direction, and the
	// accessibility counters stay zero rather than counting parsed defaults.
	assert.Equal(t, 1, stats.Directions)
	assert.Equal(t, 2, stats.ServiceIDs)
	assert.False(t, stats.HasShapes)
	assert.Zero(t, stats.WheelchairAccessibleTrips)
	assert.Zero(t, stats.BikesAllowedTrips)
}

func TestServiceDatesWeeklyPattern(t *testing.T) {
	p := basicProcessor(t)

	// MON runs Mondays only between 2024-01-01 and 2024-01-14.
	dates := p.ServiceDates("MON")
	require.Len(t, dates, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), dates[1])
}

func TestServiceDatesWeekdayService(t *testing.T) {
	p := basicProcessor(t)

	// January 2024 has 23 weekdays.
	dates := p.ServiceDates("WK")
	assert.Len(t, dates, 23)
	for _, date := range dates {
		assert.NotEqual(t, time.Saturday, date.Weekday())
		assert.NotEqual(t, time.Sunday, date.Weekday())
	}
}

func TestServiceDatesDegenerateInputs(t *testing.T) {
	tables := basicFeed()
	tables["calendar.txt"] = "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
		"BAD,1,1,1,1,1,1,1,2024-01-01,20240131\n" +
		"INV,1,1,1,1,1,1,1,20240131,20240101\n" +
		"OFF,0,0,0,0,0,0,0,20240101,20240131\n"

	p, err := NewProcessor(writeFeedZip(t, tables))
	require.NoError(t, err)

	assert.Empty(t, p.ServiceDates("UNKNOWN"))
	assert.Empty(t, p.ServiceDates("BAD"), "malformed dates yield no service days")
	assert.Empty(t, p.ServiceDates("INV"), "inverted range yields no service days")
	assert.Empty(t, p.ServiceDates("OFF"), "no active weekday yields no service days")
}

func TestSummary(t *testing.T) {
	p := basicProcessor(t)

	summary := p.Summary()
	assert.Equal(t, 1, summary.Agencies)
	assert.Equal(t, 3, summary.Routes)
	assert.Equal(t, 3, summary.Stops)
	assert.Equal(t, 4, summary.Trips)
	assert.Equal(t, 9, summary.StopTimes)
	assert.Equal(t, 4, summary.Shapes)
	assert.Equal(t, 2, summary.CalendarServices)
	assert.True(t, summary.HasFrequencies)
	assert.True(t, summary.HasTransfers)
	assert.True(t, summary.HasFeedInfo)
	assert.Equal(t, []int{3}, summary.RouteTypes)

	require.NotNil(t, summary.FeedInfo)
	assert.Equal(t, "Accra Metro Transit", summary.FeedInfo.PublisherName)
	assert.Equal(t, "2024.01", summary.FeedInfo.Version)
}

func TestSummarySparseFeed(t *testing.T) {
	tables := basicFeed()
	delete(tables, "shapes.txt")
	delete(tables, "frequencies.txt")
	delete(tables, "transfers.txt")
	delete(tables, "feed_info.txt")

	p, err := NewProcessor(writeFeedZip(t, tables))
	require.NoError(t, err)

	summary := p.Summary()
	assert.Zero(t, summary.Shapes)
	assert.False(t, summary.HasFrequencies)
	assert.False(t, summary.HasTransfers)
	assert.False(t, summary.HasFeedInfo)
	assert.Nil(t, summary.FeedInfo)
}
