package repository

// DelayThreshold is the departure delay, in minutes, above which a flight
// counts as delayed. Every delayed/aggregate statement binds it as
// :threshold.
const DelayThreshold = 20

// Statements are written in the SQL subset shared by SQLite and
// PostgreSQL: lowercase identifiers, named parameters rebound per driver,
// and explicit lowercase aliases so result keys never depend on how the
// backend folds identifier case.
const (
	flightColumns = `
	f.id                  AS id,
	f.flight_number       AS flight_number,
	f.year                AS year,
	f.month               AS month,
	f.day                 AS day,
	f.origin_airport      AS origin_airport,
	f.destination_airport AS destination_airport,
	a.airline             AS airline,
	f.scheduled_departure AS scheduled_departure,
	f.departure_delay     AS delay`

	// delayPercentage divides in floating point; groups only exist when they
	// have at least one row, so COUNT(*) is never zero.
	delayPercentage = `
	CAST(100.0 * SUM(CASE WHEN f.departure_delay > :threshold THEN 1 ELSE 0 END) / COUNT(*)
		AS DOUBLE PRECISION) AS delay_percentage`

	queryFlightByID = `
SELECT` + flightColumns + `
FROM flights f
JOIN airlines a ON f.airline = a.id
WHERE f.id = :id;`

	queryFlightsByDate = `
SELECT` + flightColumns + `
FROM flights f
JOIN airlines a ON f.airline = a.id
WHERE f.day = :day AND f.month = :month AND f.year = :year
ORDER BY f.scheduled_departure, f.id;`

	queryDelayedFlightsByAirline = `
SELECT` + flightColumns + `
FROM flights f
JOIN airlines a ON f.airline = a.id
WHERE f.departure_delay > :threshold AND LOWER(a.airline) = LOWER(:airline)
ORDER BY f.year, f.month, f.day, f.scheduled_departure, f.id;`

	queryDelayedFlightsByAirport = `
SELECT` + flightColumns + `
FROM flights f
JOIN airlines a ON f.airline = a.id
JOIN airports ap ON f.origin_airport = ap.iata_code
WHERE f.departure_delay > :threshold AND f.origin_airport = :airport
ORDER BY f.year, f.month, f.day, f.scheduled_departure, f.id;`

	queryDelayedFlightsByAirlines = `
SELECT
	a.airline AS airline,` + delayPercentage + `
FROM flights f
JOIN airlines a ON f.airline = a.id
GROUP BY a.id, a.airline
ORDER BY a.airline;`

	queryDelayedFlightsByHours = `
SELECT
	CAST(f.scheduled_departure AS INTEGER) / 100 AS hour,` + delayPercentage + `
FROM flights f
WHERE f.scheduled_departure IS NOT NULL
GROUP BY CAST(f.scheduled_departure AS INTEGER) / 100
ORDER BY hour;`

	queryDelayedRoutes = `
SELECT
	f.origin_airport AS origin,
	f.destination_airport AS destination,
	f.origin_airport || ' → ' || f.destination_airport AS flight_route,` + delayPercentage + `
FROM flights f
GROUP BY f.origin_airport, f.destination_airport
ORDER BY f.origin_airport, f.destination_airport;`

	queryDelayedRoutesWithLonLat = `
SELECT
	f.origin_airport AS origin,
	f.destination_airport AS destination,
	f.origin_airport || ' → ' || f.destination_airport AS flight_route,` + delayPercentage + `,
	o.latitude AS origin_lat,
	o.longitude AS origin_lon,
	d.latitude AS destination_lat,
	d.longitude AS destination_lon
FROM flights f
JOIN airports o ON f.origin_airport = o.iata_code
JOIN airports d ON f.destination_airport = d.iata_code
GROUP BY f.origin_airport, f.destination_airport, o.latitude, o.longitude, d.latitude, d.longitude
ORDER BY f.origin_airport, f.destination_airport;`
)
