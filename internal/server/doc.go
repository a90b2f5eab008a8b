// Package server runs the reference backend's HTTP server, including signal
// handling and graceful shutdown.
package server
