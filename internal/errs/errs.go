// Package errs defines the client-facing error type and the
// error kinds the query service can report.
//
// Every failure that reaches a client is an *HTTPError. The
// dispatcher and repository layers only ever produce the three
// kinds below, and the HTTP layer renders all of them with the
// same ["error", "<message>"] body.
package errs
