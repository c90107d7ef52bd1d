// Package bridge is the public call surface of sodiumbridge.
//
// A Client exposes one method per cataloged operation. Each call:
//
//   - panics with domain.ErrNilCompletion when done is nil;
//   - validates its arguments and, on failure, calls done synchronously with a
//     *domain.Error without contacting the backend;
//   - otherwise hex-encodes buffer arguments, hands the request to the
//     backend, rehydrates the reply according to the operation's declared
//     shape and calls done exactly once.
//
// Backend errors reach done unchanged. Await adapts the completion style to a
// blocking call for callers that prefer one.
package bridge
