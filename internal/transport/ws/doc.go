// Package ws multiplexes bridge calls over a single WebSocket connection.
//
// Every request frame {"id", "op", "args"} carries a fresh UUID; the server
// answers with {"id", "result"} or {"id", "error"} as each call finishes, so
// replies may arrive in any order. When the connection drops, every call still
// pending fails once with transport.ErrClosed.
package ws
