package repository

// Flight is one flight row joined with its airline name.
//
// Delay is nil for flights without a recorded departure (cancelled).
type Flight struct {
	ID                 int64  `db:"id" json:"id"`
	FlightNumber       int64  `db:"flight_number" json:"flight_number"`
	Year               int    `db:"year" json:"year"`
	Month              int    `db:"month" json:"month"`
	Day                int    `db:"day" json:"day"`
	OriginAirport      string `db:"origin_airport" json:"origin_airport"`
	DestinationAirport string `db:"destination_airport" json:"destination_airport"`
	Airline            string `db:"airline" json:"airline"`
	ScheduledDeparture int    `db:"scheduled_departure" json:"scheduled_departure"`
	Delay              *int64 `db:"delay" json:"delay"`
}

// AirlineDelay is the share of an airline's flights that were delayed.
type AirlineDelay struct {
	Airline         string  `db:"airline" json:"airline"`
	DelayPercentage float64 `db:"delay_percentage" json:"delay_percentage"`
}

// HourDelay is the share of flights delayed per scheduled departure hour.
type HourDelay struct {
	Hour            int     `db:"hour" json:"hour"`
	DelayPercentage float64 `db:"delay_percentage" json:"delay_percentage"`
}

// RouteDelay is the share of flights delayed on one directed route.
// FlightRoute is "ORIGIN → DESTINATION".
type RouteDelay struct {
	Origin          string  `db:"origin" json:"origin"`
	Destination     string  `db:"destination" json:"destination"`
	FlightRoute     string  `db:"flight_route" json:"flight_route"`
	DelayPercentage float64 `db:"delay_percentage" json:"delay_percentage"`
}

// RouteLocationDelay is a RouteDelay with both endpoints' coordinates.
//
// A coordinate is nil when the airport is known but has no recorded
// position.
type RouteLocationDelay struct {
	RouteDelay
	OriginLat      *float64 `db:"origin_lat" json:"origin_lat"`
	OriginLon      *float64 `db:"origin_lon" json:"origin_lon"`
	DestinationLat *float64 `db:"destination_lat" json:"destination_lat"`
	DestinationLon *float64 `db:"destination_lon" json:"destination_lon"`
}
