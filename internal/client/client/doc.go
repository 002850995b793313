// Package client talks to the botofarm HTTP API.
//
// The Client interface lists the operations the operator CLI needs;
// HTTPClient implements it over JSON/HTTP. Transport failures surface as
// ErrUnavailable, a taken login as ErrDuplicateLogin and 422 responses as a
// *ValidationError (matching ErrValidation). Other unexpected statuses
// yield a *StatusError.
package client
