// Command sodiumd serves the in-process backend to remote bridge clients.
//
// It loads an optional .env file, then the TOML config named by --config,
// then SODIUMBRIDGE_* environment overrides, and listens on:
//
//   - server.http_addr   POST /exec, GET /healthz, /metrics and the /ws socket
//   - server.grpc_addr   the sodiumbridge.v1.Bridge gRPC service
//
// SIGINT or SIGTERM triggers a graceful shutdown.
package main
