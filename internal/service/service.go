// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives request parameters from the handler, picks the one
// query mode they select, validates it, and calls the repository
// to run it
package service
