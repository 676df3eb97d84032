// Package api handles incoming HTTP requests for the artist endpoints. It
// parses and validates path and query parameters, calls the artist service
// and maps every outcome, including errors and panics, onto the response
// envelope with a fixed HTTP status and internal code.
package api
