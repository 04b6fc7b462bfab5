package gtfs

import (
	"fmt"
	"sort"
	"strings"
)

// maxReportedIDs caps how many offending identifiers a single validation
// error names; the report is a diagnostic summary, not an exhaustive dump.
const maxReportedIDs = 5

// ValidationResult is the outcome of a structural lint pass over the feed.
// Validation is a query, not a guard: problems are collected here and never
// raised from read operations.
type ValidationResult struct {
	Valid      bool          `json:"valid"`
	Errors     []string      `json:"errors"`
	Warnings   []string      `json:"warnings"`
	FileCounts map[Table]int `json:"file_counts"`
}

// Validate checks the feed for completeness and referential consistency.
// Required tables must be present and non-empty; only when all of them are
// does the pass go on to the cross-table reference checks. Every check runs
// independently, so the result can carry several errors at once.
func (p *Processor) Validate() ValidationResult {
	result := ValidationResult{
		Valid:      true,
		Errors:     []string{},
		Warnings:   []string{},
		FileCounts: make(map[Table]int),
	}

	for _, table := range RequiredTables {
		if !p.feed.Has(table) || p.feed.RowCount(table) == 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("missing required file: %s", table.FileName()))
			result.Valid = false
			continue
		}
		result.FileCounts[table] = p.feed.RowCount(table)
	}

	if result.Valid {
		p.validateReferences(&result)
	}

	return result
}

func (p *Processor) validateReferences(result *ValidationResult) {
	routeIDs := make(map[string]bool, len(p.feed.Routes))
	for _, route := range p.feed.Routes {
		routeIDs[route.ID] = true
	}
	stopIDs := make(map[string]bool, len(p.feed.Stops))
	for _, stop := range p.feed.Stops {
		stopIDs[stop.ID] = true
	}
	tripIDs := make(map[string]bool, len(p.feed.Trips))
	for _, trip := range p.feed.Trips {
		tripIDs[trip.ID] = true
	}

	missingRoutes := make(map[string]bool)
	for _, trip := range p.feed.Trips {
		if !routeIDs[trip.RouteID] {
			missingRoutes[trip.RouteID] = true
		}
	}
	if len(missingRoutes) > 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("trips reference missing routes: %s", summarizeIDs(missingRoutes)))
		result.Valid = false
	}

	missingStops := make(map[string]bool)
	missingTrips := make(map[string]bool)
	for _, stopTime := range p.feed.StopTimes {
		if !stopIDs[stopTime.StopID] {
			missingStops[stopTime.StopID] = true
		}
		if !tripIDs[stopTime.TripID] {
			missingTrips[stopTime.TripID] = true
		}
	}
	if len(missingStops) > 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("stop_times reference missing stops: %s", summarizeIDs(missingStops)))
		result.Valid = false
	}
	if len(missingTrips) > 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("stop_times reference missing trips: %s", summarizeIDs(missingTrips)))
		result.Valid = false
	}
}

// summarizeIDs renders a set of identifiers as a sorted, truncated list.
func summarizeIDs(ids map[string]bool) string {
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	if len(sorted) > maxReportedIDs {
		sorted = sorted[:maxReportedIDs]
	}
	return strings.Join(sorted, ", ")
}
