package gtfs

import (
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
)

func TestRouteGeometry(t *testing.T) {
	p := basicProcessor(t)

	geometry := p.RouteGeometry("R1")
	require.NotNil(t, geometry)
	assert.Equal(t, geojson.GeometryLineString, geometry.Type)

	// SH1's rows are stored out of order; the line must follow
	// shape_pt_sequence, as (lon, lat) pairs.
	require.Len(t, geometry.LineString, 3)
	assert.Equal(t, []float64{-0.2107, 5.5717}, geometry.LineString[0])
	assert.Equal(t, []float64{-0.2200, 5.5900}, geometry.LineString[1])
	assert.Equal(t, []float64{-0.2303, 5.6146}, geometry.LineString[2])
}

func TestRouteGeometryUnusable(t *testing.T) {
	p := basicProcessor(t)

	tests := []struct {
		name    string
		routeID string
	}{
		{"trip without shape_id", "R2"},
		{"shape with a single point", "R3"},
		{"unknown route", "R9"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, p.RouteGeometry(tc.routeID))
			assert.Empty(t, p.EncodedRouteGeometry(tc.routeID))
		})
	}
}

func TestEncodedRouteGeometry(t *testing.T) {
	p := basicProcessor(t)

	encoded := p.EncodedRouteGeometry("R1")
	require.NotEmpty(t, encoded)

	// Round-trip through the decoder to check ordering and axis order.
	decoded, _, err := polyline.DecodeCoords([]byte(encoded))
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	assert.InDelta(t, 5.5717, decoded[0][0], 1e-5)
	assert.InDelta(t, -0.2107, decoded[0][1], 1e-5)
	assert.InDelta(t, 5.6146, decoded[2][0], 1e-5)
}

func TestStopGeometry(t *testing.T) {
	p := basicProcessor(t)

	geometry := p.StopGeometry("S2")
	require.NotNil(t, geometry)
	assert.Equal(t, geojson.GeometryPoint, geometry.Type)
	assert.Equal(t, []float64{-0.2459, 5.5673}, geometry.Point)

	assert.Nil(t, p.StopGeometry("S9"))
}
