package gtfs

import (
	"sort"

	geojson "github.com/paulmach/go.geojson"
	"github.com/twpayne/go-polyline"
)

// RouteGeometry derives a route's line from the shape of its first trip.
// GTFS does not promise one shape per route (directions often differ), so
// the first trip is an arbitrary but deterministic pick. Returns nil when
// the route has no trips, the chosen trip carries no shape_id, or the shape
// has fewer than two points. Coordinates are (longitude, latitude) pairs.
func (p *Processor) RouteGeometry(routeID string) *geojson.Geometry {
	coords := p.routeShapeCoords(routeID)
	if coords == nil {
		return nil
	}
	return geojson.NewLineStringGeometry(coords)
}

// EncodedRouteGeometry returns the same line as RouteGeometry as a Google
// encoded polyline, or the empty string when the route has no usable shape.
func (p *Processor) EncodedRouteGeometry(routeID string) string {
	coords := p.routeShapeCoords(routeID)
	if coords == nil {
		return ""
	}
	latLng := make([][]float64, len(coords))
	for i, coord := range coords {
		latLng[i] = []float64{coord[1], coord[0]}
	}
	return string(polyline.EncodeCoords(latLng))
}

// StopGeometry returns the point for a stop as (longitude, latitude), or nil
// when the stop is unknown.
func (p *Processor) StopGeometry(stopID string) *geojson.Geometry {
	for _, stop := range p.feed.Stops {
		if stop.ID == stopID {
			return geojson.NewPointGeometry([]float64{stop.Longitude, stop.Latitude})
		}
	}
	return nil
}

// routeShapeCoords resolves a route to the ordered (lon, lat) coordinates of
// its first trip's shape, or nil when no line can be formed.
func (p *Processor) routeShapeCoords(routeID string) [][]float64 {
	trips := p.Trips(routeID)
	if len(trips) == 0 {
		return nil
	}

	shapeID := trips[0].ShapeID
	if shapeID == "" {
		return nil
	}

	points := p.Shapes(shapeID)
	// A single point is not a line.
	if len(points) < 2 {
		return nil
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Sequence < points[j].Sequence
	})

	coords := make([][]float64, len(points))
	for i, point := range points {
		coords[i] = []float64{point.Longitude, point.Latitude}
	}
	return coords
}
