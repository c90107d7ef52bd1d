// Package transport holds what the remote backends share: a blocking helper
// for serving any domain.Backend and the error a client reports when the
// serving side fails a call.
//
// The transports themselves live in the subpackages:
//
//   - httpx: one JSON POST per call
//   - ws: many concurrent calls over one WebSocket, matched by request id
//   - grpcx: a unary gRPC method over protobuf well-known types
//
// Each provides a client that is itself a domain.Backend and a server that
// exposes any domain.Backend.
package transport
