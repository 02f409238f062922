package server

// Server owns the HTTP and gRPC transports of the process.
type Server interface {
	// RunServer serves until a termination signal arrives, then shuts down.
	RunServer()

	// Shutdown stops accepting requests and waits, up to a fixed timeout,
	// for in-flight ones to finish.
	Shutdown()
}
