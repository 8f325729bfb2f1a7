// Package core holds the HTTP boundary types shared by the middleware and the
// service: HTTPError with its stable keys, the JSON response envelope, and a
// HandlerFunc adapter for handlers that return a Response.
package core
