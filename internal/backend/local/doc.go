// Package local is an in-process domain.Backend that executes every
// implemented catalog operation with the primitives in internal/crypto.
//
// Each Exec call runs on its own goroutine. A weighted semaphore bounds how
// many run at once; the rest wait for a slot or for their context to end.
// Decoded secret arguments are wiped once an operation returns.
package local
