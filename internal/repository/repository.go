// Package repository handles all interactions with the flight store.
//
// It contains the predefined SQL statements and the FlightRepository
// that runs them, one scoped connection per call, returning typed
// records whose JSON keys are the column names of the result set.
package repository
