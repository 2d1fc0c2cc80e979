package sqlerr

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/flightdelays/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrCode reports the mapped Code for err, or Other when err does not wrap
// a normalised *Error.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError converts a raw PostgreSQL error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:         MapCode(src.Code),
		Severity:     MapSeverity(src.Severity),
		DatabaseCode: src.Code,
		Message:      src.Message,
		TableName:    src.TableName,
		ColumnName:   src.ColumnName,
		driverErr:    src,
	}
}

var (
	sqliteNoTable  = regexp.MustCompile(`no such table: ([\w.]+)`)
	sqliteNoColumn = regexp.MustCompile(`no such column: ([\w.]+)`)
)

// ConvertSQLiteError converts a modernc SQLite error into an *Error.
//
// SQLite reports most schema problems as the generic SQLITE_ERROR, so the
// message text is inspected to tell a missing table from a missing column.
func ConvertSQLiteError(src *sqlite.Error) *Error {
	primary := src.Code() & 0xff
	message := src.Error()

	out := &Error{
		Code:         Other,
		Severity:     SeverityError,
		DatabaseCode: fmt.Sprintf("SQLITE_%d", src.Code()),
		Message:      message,
		driverErr:    src,
	}

	switch primary {
	case sqlite3.SQLITE_ERROR:
		switch {
		case sqliteNoTable.MatchString(message):
			out.Code = UndefinedTable
			out.TableName = sqliteNoTable.FindStringSubmatch(message)[1]
		case sqliteNoColumn.MatchString(message):
			out.Code = UndefinedColumn
			out.ColumnName = sqliteNoColumn.FindStringSubmatch(message)[1]
		case strings.Contains(message, "syntax error"):
			out.Code = SyntaxError
		}
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		out.Code = Busy
	case sqlite3.SQLITE_READONLY:
		out.Code = ReadOnlyViolation
	case sqlite3.SQLITE_PERM, sqlite3.SQLITE_AUTH:
		out.Code = PermissionDenied
	case sqlite3.SQLITE_INTERRUPT, sqlite3.SQLITE_ABORT:
		out.Code = QueryCanceled
	case sqlite3.SQLITE_MISMATCH, sqlite3.SQLITE_RANGE:
		out.Code = InvalidParameter
	case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CORRUPT:
		out.Code = StoreUnavailable
		out.Severity = SeverityFatal
	}

	return out
}

// formatUserFriendlyMessage produces the client-facing part of the message:
// a short description of the failure followed by the driver's own text.
func formatUserFriendlyMessage(sqlErr *Error) string {
	return withCause(describe(sqlErr), sqlErr.Message)
}

// withCause appends cause to summary unless it would only repeat it.
func withCause(summary, cause string) string {
	if cause == "" || cause == summary {
		return summary
	}
	return summary + ": " + cause
}

func describe(sqlErr *Error) string {
	switch sqlErr.Code {
	case UndefinedTable:
		if sqlErr.TableName != "" {
			return fmt.Sprintf("the flight store has no %s table", humanizeText(sqlErr.TableName))
		}
		return "the flight store is missing a required table"
	case UndefinedColumn:
		if sqlErr.ColumnName != "" {
			return fmt.Sprintf("the flight store has no %s column", humanizeText(sqlErr.ColumnName))
		}
		return "the flight store is missing a required column"
	case InvalidParameter:
		return "a query parameter has an invalid value"
	case ConnectionFailure, StoreUnavailable:
		return "the flight store is unavailable"
	case Busy:
		return "the flight store is busy, try again"
	case QueryCanceled:
		return "the query was canceled"
	case PermissionDenied:
		return "the flight store refused the query"
	default:
		return sqlErr.Message
	}
}

// humanizeText converts snake_case identifiers into Title Case.
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts a low-level error into the QUERY_EXECUTION client
// error.
//
//   - *errs.HTTPError: returned unchanged.
//   - PostgreSQL / SQLite driver errors: normalised, then wrapped.
//   - context cancellation, dead connections: wrapped with a fixed summary.
//   - anything else: wrapped with its own message.
//
// The client message always ends with the underlying error text. The
// returned error always unwraps to the original so logs keep it.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		sqlErr := ConvertPgError(pgErr)
		return errs.NewQueryExecutionError(formatUserFriendlyMessage(sqlErr), sqlErr)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		sqlErr := ConvertSQLiteError(liteErr)
		return errs.NewQueryExecutionError(formatUserFriendlyMessage(sqlErr), sqlErr)
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return errs.NewQueryExecutionError(withCause("the query was canceled", err.Error()), err)
	case errors.Is(err, sql.ErrConnDone), errors.Is(err, driver.ErrBadConn):
		return errs.NewQueryExecutionError(withCause("the flight store is unavailable", err.Error()), err)
	}

	return errs.NewQueryExecutionError(err.Error(), err)
}
