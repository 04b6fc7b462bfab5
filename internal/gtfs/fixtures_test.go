package gtfs

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// basicFeed returns the table contents of a small but complete feed: three
// routes, three stops, four trips, two services, two shapes (one with a
// single point), plus frequencies, transfers and feed_info. SH1's points are
// deliberately out of sequence order.
func basicFeed() map[string]string {
	return map[string]string{
		"agency.txt": "agency_id,agency_name,agency_url,agency_timezone\n" +
			"1,Accra Metro Transit,https://transit.example.com,Africa/Accra\n",
		"stops.txt": "stop_id,stop_name,stop_lat,stop_lon,parent_station\n" +
			"S1,Circle Interchange,5.5717,-0.2107,\n" +
			"S2,Kaneshie Market,5.5673,-0.2459,\n" +
			"S3,Achimota Terminal,5.6146,-0.2303,\n",
		"routes.txt": "route_id,agency_id,route_short_name,route_long_name,route_type\n" +
			"R1,1,1,Circle - Achimota,3\n" +
			"R2,1,2,Kaneshie Loop,3\n" +
			"R3,1,3,Airport Shuttle,3\n",
		"trips.txt": "route_id,service_id,trip_id,direction_id,shape_id,wheelchair_accessible,bikes_allowed\n" +
			"R1,WK,T1,0,SH1,1,0\n" +
			"R1,WK,T2,1,SH1,0,1\n" +
			"R2,WK,T3,0,,0,0\n" +
			"R3,WK,T4,0,SH2,0,0\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"T1,06:00:00,06:00:00,S1,1\n" +
			"T1,06:10:00,06:10:00,S2,2\n" +
			"T1,06:20:00,06:20:00,S3,3\n" +
			"T2,07:00:00,07:00:00,S3,1\n" +
			"T2,07:10:00,07:10:00,S2,2\n" +
			"T2,07:20:00,07:20:00,S1,3\n" +
			"T3,08:00:00,08:00:00,S2,1\n" +
			"T3,08:05:00,08:05:00,S1,2\n" +
			"T4,09:00:00,09:00:00,S1,1\n",
		"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
			"WK,1,1,1,1,1,0,0,20240101,20240131\n" +
			"MON,1,0,0,0,0,0,0,20240101,20240114\n",
		"shapes.txt": "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n" +
			"SH1,5.5900,-0.2200,2\n" +
			"SH1,5.5717,-0.2107,1\n" +
			"SH1,5.6146,-0.2303,3\n" +
			"SH2,5.6051,-0.1668,1\n",
		"frequencies.txt": "trip_id,start_time,end_time,headway_secs\n" +
			"T1,06:00:00,09:00:00,600\n",
		"transfers.txt": "from_stop_id,to_stop_id,transfer_type,min_transfer_time\n" +
			"S1,S2,0,120\n" +
			"S2,S3,2,300\n",
		"feed_info.txt": "feed_publisher_name,feed_publisher_url,feed_lang,feed_version\n" +
			"Accra Metro Transit,https://transit.example.com,en,2024.01\n",
	}
}

// writeFeedZip packs the tables into a zip archive under t.TempDir and
// returns its path.
func writeFeedZip(t *testing.T, tables map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range tables {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "feed.zip")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// writeFeedDir writes the tables as .txt files in a fresh temp directory.
func writeFeedDir(t *testing.T, tables map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range tables {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// basicProcessor loads the basic fixture feed from a zip archive.
func basicProcessor(t *testing.T) *Processor {
	t.Helper()

	processor, err := NewProcessor(writeFeedZip(t, basicFeed()))
	require.NoError(t, err)
	return processor
}
