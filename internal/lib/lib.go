// Packages lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It contains shared utilities used by the HTTP server and the CLI.
package lib
