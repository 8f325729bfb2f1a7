// Package clientip resolves the client address of an HTTP request from proxy
// headers or the connection, keeping only values that parse as IP addresses.
package clientip
