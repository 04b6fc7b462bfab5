package gtfs

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/klauspost/compress/flate"

	"github.com/kdsecdev/GHANA-AI-HACKATHON/internal/logging"
)

// ExportFiltered writes a new GTFS zip archive at outputPath containing only
// the rows transitively reachable from the given routes: the routes
// themselves, their trips, those trips' stop_times, the stops they call at
// (with parent stations), the shapes, calendars, calendar exceptions,
// frequencies, transfers between kept stops, and fare rules. Tables the
// source feed never had are not invented; required tables are written even
// when their filtered subset is empty so the output is still a well-formed
// feed.
func (p *Processor) ExportFiltered(outputPath string, routeIDs []string) error {
	keepRoutes := make(map[string]bool, len(routeIDs))
	for _, id := range routeIDs {
		keepRoutes[id] = true
	}

	var routes []Route
	agencyIDs := make(map[string]bool)
	for _, route := range p.feed.Routes {
		if keepRoutes[route.ID] {
			routes = append(routes, route)
			agencyIDs[route.AgencyID] = true
		}
	}

	var trips []Trip
	tripIDs := make(map[string]bool)
	serviceIDs := make(map[string]bool)
	shapeIDs := make(map[string]bool)
	for _, trip := range p.feed.Trips {
		if !keepRoutes[trip.RouteID] {
			continue
		}
		trips = append(trips, trip)
		tripIDs[trip.ID] = true
		serviceIDs[trip.ServiceID] = true
		if trip.ShapeID != "" {
			shapeIDs[trip.ShapeID] = true
		}
	}

	var stopTimes []StopTime
	stopIDs := make(map[string]bool)
	for _, stopTime := range p.feed.StopTimes {
		if tripIDs[stopTime.TripID] {
			stopTimes = append(stopTimes, stopTime)
			stopIDs[stopTime.StopID] = true
		}
	}

	stops := p.stopsWithParents(stopIDs)

	// Routes without an agency_id leave the reference ambiguous; keep the
	// whole agency table in that case.
	var agencies []Agency
	if agencyIDs[""] {
		agencies = p.feed.Agencies
	} else {
		for _, agency := range p.feed.Agencies {
			if agencyIDs[agency.ID] {
				agencies = append(agencies, agency)
			}
		}
	}

	var calendars []Calendar
	for _, calendar := range p.feed.Calendars {
		if serviceIDs[calendar.ServiceID] {
			calendars = append(calendars, calendar)
		}
	}
	var calendarDates []CalendarDate
	for _, calendarDate := range p.feed.CalendarDates {
		if serviceIDs[calendarDate.ServiceID] {
			calendarDates = append(calendarDates, calendarDate)
		}
	}

	var shapePoints []ShapePoint
	for _, point := range p.feed.ShapePoints {
		if shapeIDs[point.ShapeID] {
			shapePoints = append(shapePoints, point)
		}
	}

	var frequencies []Frequency
	for _, frequency := range p.feed.Frequencies {
		if tripIDs[frequency.TripID] {
			frequencies = append(frequencies, frequency)
		}
	}

	var transfers []Transfer
	for _, transfer := range p.feed.Transfers {
		if stopIDs[transfer.FromStopID] && stopIDs[transfer.ToStopID] {
			transfers = append(transfers, transfer)
		}
	}

	var fareRules []FareRule
	fareIDs := make(map[string]bool)
	for _, fareRule := range p.feed.FareRules {
		if keepRoutes[fareRule.RouteID] {
			fareRules = append(fareRules, fareRule)
			fareIDs[fareRule.FareID] = true
		}
	}
	var fareAttributes []FareAttribute
	for _, fareAttribute := range p.feed.FareAttributes {
		if fareIDs[fareAttribute.FareID] {
			fareAttributes = append(fareAttributes, fareAttribute)
		}
	}

	tables := []struct {
		table Table
		rows  interface{}
		count int
	}{
		{TableAgency, &agencies, len(agencies)},
		{TableStops, &stops, len(stops)},
		{TableRoutes, &routes, len(routes)},
		{TableTrips, &trips, len(trips)},
		{TableStopTimes, &stopTimes, len(stopTimes)},
		{TableCalendar, &calendars, len(calendars)},
		{TableCalendarDates, &calendarDates, len(calendarDates)},
		{TableFareAttributes, &fareAttributes, len(fareAttributes)},
		{TableFareRules, &fareRules, len(fareRules)},
		{TableShapes, &shapePoints, len(shapePoints)},
		{TableFrequencies, &frequencies, len(frequencies)},
		{TableTransfers, &transfers, len(transfers)},
		{TableFeedInfo, &p.feed.FeedInfos, len(p.feed.FeedInfos)},
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating export archive: %w", err)
	}

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestSpeed)
	})

	for _, entry := range tables {
		if !p.feed.Has(entry.table) {
			continue
		}
		if entry.count == 0 && !entry.table.Required() {
			continue
		}
		data, err := gocsv.MarshalBytes(entry.rows)
		if err != nil {
			closeExport(zw, out, p.logger)
			return fmt.Errorf("encoding %s: %w", entry.table.FileName(), err)
		}
		w, err := zw.Create(entry.table.FileName())
		if err != nil {
			closeExport(zw, out, p.logger)
			return fmt.Errorf("adding %s to archive: %w", entry.table.FileName(), err)
		}
		if _, err := w.Write(data); err != nil {
			closeExport(zw, out, p.logger)
			return fmt.Errorf("writing %s: %w", entry.table.FileName(), err)
		}
	}

	if err := zw.Close(); err != nil {
		logging.SafeCloseWithLogging(out, p.logger, "export_file")
		return fmt.Errorf("finalizing export archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing export archive: %w", err)
	}

	logging.LogOperation(p.logger, "filtered_gtfs_exported",
		slog.String("output", outputPath),
		slog.Int("routes", len(routes)),
		slog.Int("trips", len(trips)),
		slog.Int("stops", len(stops)))

	return nil
}

// stopsWithParents expands the kept stop set with parent stations, then
// returns the matching rows in stops-table order.
func (p *Processor) stopsWithParents(stopIDs map[string]bool) []Stop {
	byID := make(map[string]Stop, len(p.feed.Stops))
	for _, stop := range p.feed.Stops {
		byID[stop.ID] = stop
	}

	for id := range stopIDs {
		parent := byID[id].ParentStation
		for parent != "" && !stopIDs[parent] {
			stopIDs[parent] = true
			parent = byID[parent].ParentStation
		}
	}

	var stops []Stop
	for _, stop := range p.feed.Stops {
		if stopIDs[stop.ID] {
			stops = append(stops, stop)
		}
	}
	return stops
}

func closeExport(zw *zip.Writer, out *os.File, logger *slog.Logger) {
	logging.SafeCloseWithLogging(zw, logger, "export_zip_writer")
	logging.SafeCloseWithLogging(out, logger, "export_file")
}
