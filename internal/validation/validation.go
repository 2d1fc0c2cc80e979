// Package validation binds request data and runs the payload's own
// validation, turning every failure into a client error.
package validation
