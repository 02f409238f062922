package server

import "errors"

// errNoListenAddress is returned by NewServer when neither transport has
// both an address and a handler.
var errNoListenAddress = errors.New("no listen address configured")
