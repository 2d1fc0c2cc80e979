// Package sqlerr specifically handles database driver errors.
//
// It normalises errors from the PostgreSQL (pgx) and SQLite
// (modernc) drivers into one Error type and converts them into
// the QUERY_EXECUTION client error, so the dispatcher never has
// to know which store it is talking to.
package sqlerr
