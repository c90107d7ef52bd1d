// Package catalog declares every operation the bridge can dispatch.
//
// An Op names the backend operation, lists its parameters in wire order with
// the rule each must satisfy, and declares the shape of its result. Ops are
// immutable package-level values and may be read from any goroutine.
package catalog
