package sqlerr

import "strings"

// Code is a driver-independent category of database failure.
type Code string

const (
	Other             Code = "other"
	UndefinedTable    Code = "undefined_table"
	UndefinedColumn   Code = "undefined_column"
	SyntaxError       Code = "syntax_error"
	InvalidParameter  Code = "invalid_parameter"
	ConnectionFailure Code = "connection_failure"
	QueryCanceled     Code = "query_canceled"
	PermissionDenied  Code = "permission_denied"
	Busy              Code = "busy"
	StoreUnavailable  Code = "store_unavailable"
	ReadOnlyViolation Code = "read_only_violation"
)

// Severity mirrors the PostgreSQL severity levels.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a normalised database error.
type Error struct {
	Code         Code
	Severity     Severity
	DatabaseCode string
	Message      string
	TableName    string
	ColumnName   string

	driverErr error
}

func (e *Error) Error() string {
	return string(e.Severity) + ": " + e.Message + " (" + e.DatabaseCode + ")"
}

// Unwrap returns the original driver error.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a PostgreSQL SQLSTATE onto a Code. Only the states a
// read-only query workload can produce are distinguished.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "42P01":
		return UndefinedTable
	case "42703":
		return UndefinedColumn
	case "42601":
		return SyntaxError
	case "42501":
		return PermissionDenied
	case "57014":
		return QueryCanceled
	case "25006":
		return ReadOnlyViolation
	}

	switch {
	case strings.HasPrefix(sqlState, "22"):
		return InvalidParameter
	case strings.HasPrefix(sqlState, "08"), strings.HasPrefix(sqlState, "57P"):
		return ConnectionFailure
	case strings.HasPrefix(sqlState, "53"):
		return Busy
	}

	return Other
}

// MapSeverity maps a PostgreSQL severity string onto a Severity.
func MapSeverity(severity string) Severity {
	switch strings.ToUpper(severity) {
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	case "NOTICE":
		return SeverityNotice
	case "DEBUG":
		return SeverityDebug
	case "INFO":
		return SeverityInfo
	case "LOG":
		return SeverityLog
	default:
		return SeverityError
	}
}
