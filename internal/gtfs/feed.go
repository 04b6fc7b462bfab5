// Package gtfs loads GTFS static feeds into tabular snapshots and exposes
// the read-only data access layer the demand and optimization services are
// built on.
package gtfs

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/kdsecdev/GHANA-AI-HACKATHON/internal/logging"
)

// Table identifies one GTFS text table by its base name (without ".txt").
type Table string

const (
	TableAgency         Table = "agency"
	TableStops          Table = "stops"
	TableRoutes         Table = "routes"
	TableTrips          Table = "trips"
	TableStopTimes      Table = "stop_times"
	TableCalendar       Table = "calendar"
	TableCalendarDates  Table = "calendar_dates"
	TableFareAttributes Table = "fare_attributes"
	TableFareRules      Table = "fare_rules"
	TableShapes         Table = "shapes"
	TableFrequencies    Table = "frequencies"
	TableTransfers      Table = "transfers"
	TableFeedInfo       Table = "feed_info"
)

// RequiredTables are the tables a feed must carry to pass validation.
var RequiredTables = []Table{
	TableAgency,
	TableStops,
	TableRoutes,
	TableTrips,
	TableStopTimes,
	TableCalendar,
}

// OptionalTables may be absent from a feed without making it unusable.
var OptionalTables = []Table{
	TableCalendarDates,
	TableFareAttributes,
	TableFareRules,
	TableShapes,
	TableFrequencies,
	TableTransfers,
	TableFeedInfo,
}

// FileName returns the file name of the table inside a feed, e.g. "stops.txt".
func (t Table) FileName() string {
	return string(t) + ".txt"
}

// Required reports whether the table is one of the six required GTFS tables.
func (t Table) Required() bool {
	for _, required := range RequiredTables {
		if t == required {
			return true
		}
	}
	return false
}

func allTables() []Table {
	tables := make([]Table, 0, len(RequiredTables)+len(OptionalTables))
	tables = append(tables, RequiredTables...)
	tables = append(tables, OptionalTables...)
	return tables
}

// LoadError is returned when a feed cannot be read at all: the path is
// neither a zip archive nor a directory, or a present table fails to parse.
// A processor is never handed out in a partially loaded state.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading GTFS feed from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Feed is the tabular snapshot of one parsed GTFS feed. The slices are not
// mutated after LoadFeed returns; accessors on Processor hand out copies and
// subsets, never views the caller could use to alter the snapshot.
type Feed struct {
	Agencies       []Agency
	Stops          []Stop
	Routes         []Route
	Trips          []Trip
	StopTimes      []StopTime
	Calendars      []Calendar
	CalendarDates  []CalendarDate
	FareAttributes []FareAttribute
	FareRules      []FareRule
	ShapePoints    []ShapePoint
	Frequencies    []Frequency
	Transfers      []Transfer
	FeedInfos      []FeedInfo

	present map[Table]bool
	columns map[Table]map[string]bool
}

// Has reports whether the table was present in the source feed. A present
// table may still hold zero rows.
func (f *Feed) Has(table Table) bool {
	return f.present[table]
}

// HasColumn reports whether the table declared the given column header.
// Route statistics use this to tell an absent optional column apart from a
// column full of zero values.
func (f *Feed) HasColumn(table Table, column string) bool {
	return f.columns[table][column]
}

// RowCount returns the number of rows loaded for the table.
func (f *Feed) RowCount(table Table) int {
	switch table {
	case TableAgency:
		return len(f.Agencies)
	case TableStops:
		return len(f.Stops)
	case TableRoutes:
		return len(f.Routes)
	case TableTrips:
		return len(f.Trips)
	case TableStopTimes:
		return len(f.StopTimes)
	case TableCalendar:
		return len(f.Calendars)
	case TableCalendarDates:
		return len(f.CalendarDates)
	case TableFareAttributes:
		return len(f.FareAttributes)
	case TableFareRules:
		return len(f.FareRules)
	case TableShapes:
		return len(f.ShapePoints)
	case TableFrequencies:
		return len(f.Frequencies)
	case TableTransfers:
		return len(f.Transfers)
	case TableFeedInfo:
		return len(f.FeedInfos)
	}
	return 0
}

func (f *Feed) destination(table Table) interface{} {
	switch table {
	case TableAgency:
		return &f.Agencies
	case TableStops:
		return &f.Stops
	case TableRoutes:
		return &f.Routes
	case TableTrips:
		return &f.Trips
	case TableStopTimes:
		return &f.StopTimes
	case TableCalendar:
		return &f.Calendars
	case TableCalendarDates:
		return &f.CalendarDates
	case TableFareAttributes:
		return &f.FareAttributes
	case TableFareRules:
		return &f.FareRules
	case TableShapes:
		return &f.ShapePoints
	case TableFrequencies:
		return &f.Frequencies
	case TableTransfers:
		return &f.Transfers
	case TableFeedInfo:
		return &f.FeedInfos
	}
	return nil
}

func init() {
	// Real-world feeds routinely carry rows with missing trailing columns;
	// gocsv matches fields by header, so relax the record length check.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		return r
	})
}

// LoadFeed reads a GTFS feed from a zip archive or an exploded directory of
// .txt tables. A missing required table logs a warning and leaves the slot
// absent; a missing optional table is only noted at info level. Any parse
// failure of a table that is present aborts the load with a *LoadError.
func LoadFeed(path string, logger *slog.Logger) (*Feed, error) {
	if logger == nil {
		logger = slog.Default().With(slog.String("component", "gtfs_feed"))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var tables map[Table][]byte
	switch {
	case info.IsDir():
		tables, err = readDirTables(path)
	case strings.HasSuffix(path, ".zip"):
		tables, err = readZipTables(path, logger)
	default:
		err = errors.New("path is neither a zip archive nor a directory")
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	feed := &Feed{
		present: make(map[Table]bool),
		columns: make(map[Table]map[string]bool),
	}

	for _, table := range RequiredTables {
		data, ok := tables[table]
		if !ok {
			logger.Warn("required GTFS table not found in feed",
				slog.String("table", table.FileName()))
			continue
		}
		if err := feed.decodeTable(table, data); err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
	}

	for _, table := range OptionalTables {
		data, ok := tables[table]
		if !ok {
			logging.LogOperation(logger, "optional_gtfs_table_not_found",
				slog.String("table", table.FileName()))
			continue
		}
		if err := feed.decodeTable(table, data); err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
	}

	logging.LogOperation(logger, "gtfs_feed_loaded",
		slog.String("source", path),
		slog.Int("tables", len(feed.present)))

	return feed, nil
}

func (f *Feed) decodeTable(table Table, data []byte) error {
	err := gocsv.UnmarshalBytes(data, f.destination(table))
	if err != nil && !errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return fmt.Errorf("parsing %s: %w", table.FileName(), err)
	}
	f.present[table] = true
	f.columns[table] = headerSet(data)
	return nil
}

// headerSet extracts the column names from the first CSV record.
func headerSet(data []byte) map[string]bool {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil
	}
	set := make(map[string]bool, len(header))
	for _, column := range header {
		column = strings.TrimSpace(strings.TrimPrefix(column, "\ufeff"))
		set[column] = true
	}
	return set
}

func readZipTables(path string, logger *slog.Logger) (map[Table][]byte, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer logging.SafeCloseWithLogging(archive, logger, "gtfs_zip_archive")

	known := make(map[string]Table, len(allTables()))
	for _, table := range allTables() {
		known[table.FileName()] = table
	}

	tables := make(map[Table][]byte)
	for _, zipFile := range archive.File {
		table, ok := known[filepath.Base(zipFile.Name)]
		if !ok {
			continue
		}
		rc, err := zipFile.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", zipFile.Name, err)
		}
		data, err := io.ReadAll(rc)
		if closeErr := rc.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", zipFile.Name, err)
		}
		tables[table] = data
	}
	return tables, nil
}

func readDirTables(dir string) (map[Table][]byte, error) {
	tables := make(map[Table][]byte)
	for _, table := range allTables() {
		data, err := os.ReadFile(filepath.Join(dir, table.FileName()))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", table.FileName(), err)
		}
		tables[table] = data
	}
	return tables, nil
}
