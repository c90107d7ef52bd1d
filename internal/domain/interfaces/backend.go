package interfaces

import (
	"context"

	domaintypes "sodiumbridge/internal/domain/types"
)

// Backend executes a named operation and replies asynchronously.
//
// Exec must invoke exactly one of success or failure, exactly once, possibly
// on another goroutine and possibly before Exec returns. Replies to concurrent
// calls may arrive in any order.
type Backend interface {
	Exec(
		ctx context.Context,
		req domaintypes.Request,
		success func(domaintypes.Reply),
		failure func(error),
	)
}
