package service

import (
	"net/url"
)

// Query-string parameter names accepted by the dispatcher.
const (
	ParamID                 = "id"
	ParamDate               = "date"
	ParamAirport            = "airport"
	ParamAirline            = "airline"
	ParamAllAirlines        = "all_airlines"
	ParamHourlyDelays       = "hourly_delays"
	ParamDelaysRoutes       = "delays_routes"
	ParamRoutesWithLocation = "routes_with_location"
)

// Params is the flat set of named string parameters of one request.
// Missing and empty parameters are the same thing.
type Params map[string]string

// ParamsFromValues keeps the first value of every recognised parameter.
func ParamsFromValues(values url.Values) Params {
	params := Params{}
	for _, mode := range modes {
		if v := values.Get(mode.Param); v != "" {
			params[mode.Param] = v
		}
	}
	return params
}

// Get returns the value of name, or "" when it was not given.
func (p Params) Get(name string) string {
	return p[name]
}
