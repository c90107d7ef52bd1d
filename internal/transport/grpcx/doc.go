// Package grpcx serves and calls a domain.Backend over gRPC.
//
// The service is sodiumbridge.v1.Bridge with a single unary method, Exec,
// taking and returning google.protobuf.Struct so no code generation step is
// needed. A request is {"op": string, "args": [string|number...]} and a
// reply is {"result": value-or-record}. Backend failures come back as
// codes.Aborted carrying the backend's message; malformed requests as
// codes.InvalidArgument. The client hands status errors to the caller
// unchanged.
package grpcx
