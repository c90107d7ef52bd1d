package grpcx

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"sodiumbridge/internal/domain"
	"sodiumbridge/internal/transport"
)

// Client is a domain.Backend over the Bridge gRPC service.
type Client struct {
	cc     *grpc.ClientConn
	client BridgeClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

var _ domain.Backend = (*Client)(nil)

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int

	// Extra is appended to the default dial options.
	Extra []grpc.DialOption
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}
	dialOpts = append(dialOpts, opts.Extra...)

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewBridgeClient(cc)}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// Exec issues the RPC on its own goroutine. Backend failures, carried as
// Aborted, reach failure as *transport.RemoteError; other status errors are
// passed through as returned by grpc.
func (c *Client) Exec(ctx context.Context, req domain.Request, success func(domain.Reply), failure func(error)) {
	go func() {
		in, err := requestToStruct(req)
		if err != nil {
			failure(err)
			return
		}
		if c.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.Timeout)
			defer cancel()
		}
		out, err := c.client.Exec(ctx, in)
		if err != nil {
			if st, ok := status.FromError(err); ok && st.Code() == codes.Aborted {
				err = &transport.RemoteError{Op: req.Op, Status: int(codes.Aborted), Message: st.Message()}
			}
			failure(err)
			return
		}
		reply, err := replyFromStruct(out)
		if err != nil {
			failure(err)
			return
		}
		success(reply)
	}()
}
