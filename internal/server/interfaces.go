package server

// Server defines the lifecycle contract of the backend server.
//
// Implementations block in [RunServer] until shutdown is requested and
// release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until SIGINT, SIGTERM or
	// SIGQUIT arrives.
	RunServer()

	// Shutdown gracefully stops the server.
	Shutdown()
}
