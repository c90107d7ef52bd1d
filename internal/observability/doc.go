// Package observability holds the logger and Prometheus metrics shared by the
// bridge client, the transports and the binaries.
package observability
