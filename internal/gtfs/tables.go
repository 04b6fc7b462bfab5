package gtfs

// Row types for the GTFS static tables. Cross-table references stay raw ID
// strings so that dangling references survive parsing and are observable by
// Validate; resolution into an object graph is left to consumers that want it.

// Agency corresponds to a single row in agency.txt.
type Agency struct {
	ID       string `csv:"agency_id"`
	Name     string `csv:"agency_name"`
	URL      string `csv:"agency_url"`
	Timezone string `csv:"agency_timezone"`
	Language string `csv:"agency_lang"`
	Phone    string `csv:"agency_phone"`
	FareURL  string `csv:"agency_fare_url"`
	Email    string `csv:"agency_email"`
}

// Stop corresponds to a single row in stops.txt.
type Stop struct {
	ID            string  `csv:"stop_id"`
	Code          string  `csv:"stop_code"`
	Name          string  `csv:"stop_name"`
	Description   string  `csv:"stop_desc"`
	Latitude      float64 `csv:"stop_lat"`
	Longitude     float64 `csv:"stop_lon"`
	ZoneID        string  `csv:"zone_id"`
	URL           string  `csv:"stop_url"`
	LocationType  string  `csv:"location_type"`
	ParentStation string  `csv:"parent_station"`
	Timezone      string  `csv:"stop_timezone"`
	Wheelchair    string  `csv:"wheelchair_boarding"`
	PlatformCode  string  `csv:"platform_code"`
}

// Route corresponds to a single row in routes.txt. Type follows the GTFS
// route_type enumeration (0 tram, 1 subway, 2 rail, 3 bus, 4 ferry, 5 cable
// tram, 6 aerial lift, 7 funicular).
type Route struct {
	ID          string `csv:"route_id"`
	AgencyID    string `csv:"agency_id"`
	ShortName   string `csv:"route_short_name"`
	LongName    string `csv:"route_long_name"`
	Description string `csv:"route_desc"`
	Type        int    `csv:"route_type"`
	URL         string `csv:"route_url"`
	Color       string `csv:"route_color"`
	TextColor   string `csv:"route_text_color"`
	SortOrder   int    `csv:"route_sort_order"`
}

// Trip corresponds to a single row in trips.txt. DirectionID is kept as the
// raw field value ("0", "1" or empty) because the column is optional.
type Trip struct {
	RouteID              string `csv:"route_id"`
	ServiceID            string `csv:"service_id"`
	ID                   string `csv:"trip_id"`
	Headsign             string `csv:"trip_headsign"`
	ShortName            string `csv:"trip_short_name"`
	DirectionID          string `csv:"direction_id"`
	BlockID              string `csv:"block_id"`
	ShapeID              string `csv:"shape_id"`
	WheelchairAccessible int    `csv:"wheelchair_accessible"`
	BikesAllowed         int    `csv:"bikes_allowed"`
}

// StopTime corresponds to a single row in stop_times.txt. Arrival and
// departure stay as the raw HH:MM:SS strings; GTFS hours can exceed 23 for
// after-midnight service so they do not fit time.Time.
type StopTime struct {
	TripID        string `csv:"trip_id"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
	StopID        string `csv:"stop_id"`
	StopSequence  int    `csv:"stop_sequence"`
	Headsign      string `csv:"stop_headsign"`
	PickupType    int    `csv:"pickup_type"`
	DropOffType   int    `csv:"drop_off_type"`
}

// Calendar corresponds to a single row in calendar.txt: a weekly service
// pattern valid between StartDate and EndDate (both YYYYMMDD).
type Calendar struct {
	ServiceID string `csv:"service_id"`
	Monday    int    `csv:"monday"`
	Tuesday   int    `csv:"tuesday"`
	Wednesday int    `csv:"wednesday"`
	Thursday  int    `csv:"thursday"`
	Friday    int    `csv:"friday"`
	Saturday  int    `csv:"saturday"`
	Sunday    int    `csv:"sunday"`
	StartDate string `csv:"start_date"`
	EndDate   string `csv:"end_date"`
}

// CalendarDate corresponds to a single row in calendar_dates.txt.
// ExceptionType is 1 for an added service date, 2 for a removed one.
type CalendarDate struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType int    `csv:"exception_type"`
}

// ShapePoint corresponds to a single row in shapes.txt. A shape is the set
// of points sharing a ShapeID, ordered by Sequence.
type ShapePoint struct {
	ShapeID      string  `csv:"shape_id"`
	Latitude     float64 `csv:"shape_pt_lat"`
	Longitude    float64 `csv:"shape_pt_lon"`
	Sequence     int     `csv:"shape_pt_sequence"`
	DistTraveled float64 `csv:"shape_dist_traveled"`
}

// Frequency corresponds to a single row in frequencies.txt.
type Frequency struct {
	TripID      string `csv:"trip_id"`
	StartTime   string `csv:"start_time"`
	EndTime     string `csv:"end_time"`
	HeadwaySecs int    `csv:"headway_secs"`
	ExactTimes  int    `csv:"exact_times"`
}

// Transfer corresponds to a single row in transfers.txt.
type Transfer struct {
	FromStopID      string `csv:"from_stop_id"`
	ToStopID        string `csv:"to_stop_id"`
	Type            int    `csv:"transfer_type"`
	MinTransferTime int    `csv:"min_transfer_time"`
}

// FareAttribute corresponds to a single row in fare_attributes.txt.
type FareAttribute struct {
	FareID           string  `csv:"fare_id"`
	Price            float64 `csv:"price"`
	CurrencyType     string  `csv:"currency_type"`
	PaymentMethod    int     `csv:"payment_method"`
	Transfers        string  `csv:"transfers"`
	TransferDuration int     `csv:"transfer_duration"`
}

// FareRule corresponds to a single row in fare_rules.txt.
type FareRule struct {
	FareID        string `csv:"fare_id"`
	RouteID       string `csv:"route_id"`
	OriginID      string `csv:"origin_id"`
	DestinationID string `csv:"destination_id"`
	ContainsID    string `csv:"contains_id"`
}

// FeedInfo corresponds to a single row in feed_info.txt.
type FeedInfo struct {
	PublisherName string `csv:"feed_publisher_name"`
	PublisherURL  string `csv:"feed_publisher_url"`
	Language      string `csv:"feed_lang"`
	StartDate     string `csv:"feed_start_date"`
	EndDate       string `csv:"feed_end_date"`
	Version       string `csv:"feed_version"`
}
