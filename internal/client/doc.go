// Package client sends queries to the REST server.
//
// # Overview
//
// Commands talk to the server through the Executor interface:
//
//	Send(ctx, method, path, fragments, timeout) (returnCode, body, error)
//
// fragments are ordered key=value strings as produced by the filter package.
// GET and DELETE carry them in the query string; PUT and POST send them as a
// form encoded body.
//
// # Response Wrapper
//
// The server wraps every answer as
//
//	{"Status": "F", "Result": "<payload>"}
//
// Status "F" is success (return code 0), "FE" is a handled failure whose
// payload still renders (return code 1) and "E" is an error returned as a
// *ServerError. A body that is not a wrapper is also a *ServerError.
//
// # Failures
//
// Transport failures are returned as *TransportError, classified as refused,
// timeout, malformed or unknown. When the first response has a non-OK status
// other than 400 and below 500, typically a proxy rejecting the request, the
// request is retried once with proxy environment variables ignored.
package client
