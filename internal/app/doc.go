// Package app wires sodiumbridge's dependencies for the binaries.
//
// Config is assembled from defaults, an optional TOML file and SODIUMBRIDGE_*
// environment variables, then validated. NewWire turns it into a bridge
// Client over the selected backend; NewDaemon turns it into the HTTP,
// WebSocket and gRPC listeners that serve the local backend.
package app
