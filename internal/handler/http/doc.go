// Package http implements the REST transport of the reference backend.
//
// Every first path segment names a resource collection:
//
//	GET    /{resource}?q=&_start=&_limit=&field=value
//	GET    /{resource}/{id}
//	PUT    /{resource}
//	DELETE /{resource}/{id}
//
// List responses are bare JSON arrays with the total number of matches in
// the X-Total-Count header. Errors are JSON objects carrying a "message".
package http
