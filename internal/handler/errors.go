package handler

import "errors"

// errNoTransport means the configuration enables neither the HTTP API nor
// the gRPC health endpoint.
var errNoTransport = errors.New("no transport is configured")
