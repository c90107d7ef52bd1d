package grpcx

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"sodiumbridge/internal/domain"
	"sodiumbridge/internal/transport"
)

// Server exposes a domain.Backend over the Bridge gRPC service.
type Server struct {
	UnimplementedBridgeServer
	Backend domain.Backend
	Logger  zerolog.Logger
}

func (s *Server) Exec(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if s == nil || s.Backend == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing backend")
	}
	req, err := requestFromStruct(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed request: "+err.Error())
	}
	reply, err := transport.Do(ctx, s.Backend, req)
	if err != nil {
		s.Logger.Debug().Str("op", req.Op).Err(err).Msg("grpc exec failed")
		return nil, mapErr(err)
	}
	out, err := replyToStruct(reply)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Aborted, err.Error())
	}
}
