// Package utils provides geographic math shared by the GTFS layer.
package utils

import "math"

// RadiusOfEarthInMeters is the mean Earth radius.
const RadiusOfEarthInMeters = 6371010.0

const degToRad = math.Pi / 180

// CoordinateBounds represents a bounding box with min/max latitude and longitude.
type CoordinateBounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether the point lies inside the bounds.
func (b CoordinateBounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Distance returns the great-circle distance in meters between two points
// using the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * RadiusOfEarthInMeters * math.Asin(math.Sqrt(a))
}

// CalculateBounds returns a bounding box containing every point within
// distance meters of (lat, lon).
func CalculateBounds(lat, lon, distance float64) CoordinateBounds {
	latOffset := (distance / RadiusOfEarthInMeters) / degToRad

	lonRadius := math.Cos(lat*degToRad) * RadiusOfEarthInMeters
	lonOffset := (distance / lonRadius) / degToRad

	return CoordinateBounds{
		MinLat: lat - latOffset,
		MaxLat: lat + latOffset,
		MinLon: lon - lonOffset,
		MaxLon: lon + lonOffset,
	}
}
