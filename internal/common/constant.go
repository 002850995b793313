// Package common contains shared constants and sentinel errors used across
// the service components.
package common

// RequestIDHeaderName is the HTTP header carrying the request correlation id.
// The server echoes it back (generating one when absent) and the CLI client
// sends one with every call.
const RequestIDHeaderName = "X-Request-ID"
