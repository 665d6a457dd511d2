package rpc

import (
	"context"
	"errors"

	"github.com/danielpatrickdp/slot-bandit/internal/casino"
	"github.com/danielpatrickdp/slot-bandit/internal/server"
	"github.com/danielpatrickdp/slot-bandit/internal/trial"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// #region service
// Service implements CasinoServer on top of a shared Session.
type Service struct {
	session *server.Session
	log     logrus.FieldLogger
}

// NewService serves session.
func NewService(session *server.Session, log logrus.FieldLogger) *Service {
	return &Service{session: session, log: log.WithField("component", "grpc")}
}
// #endregion service

// #region handlers
// Start begins a game; a numeric max_trials field bounds it.
func (s *Service) Start(_ context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	n, bounded, err := maxTrials(in)
	if err != nil {
		s.log.WithError(err).Warn("start rejected")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	budget := trial.Unbounded()
	if bounded {
		budget = trial.Bounded(n)
	}
	s.session.Start(budget)
	return &emptypb.Empty{}, nil
}

// Play pulls the requested arm.
func (s *Service) Play(_ context.Context, in *wrapperspb.UInt32Value) (*wrapperspb.DoubleValue, error) {
	r, err := s.session.Play(int(in.GetValue()))
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.Double(r), nil
}

// Score reports score, play_count and, once available, mean.
func (s *Service) Score(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	sum := s.session.Score()
	fields := map[string]*structpb.Value{
		keyScore:     structpb.NewNumberValue(sum.Score),
		keyPlayCount: structpb.NewNumberValue(float64(sum.PlayCount)),
	}
	if sum.Mean != nil {
		fields[keyMean] = structpb.NewNumberValue(*sum.Mean)
	}
	return &structpb.Struct{Fields: fields}, nil
}

// Reset rewinds every machine's reward stream.
func (s *Service) Reset(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	s.session.Reset()
	return &emptypb.Empty{}, nil
}

// Profiles lists each machine's hidden probability.
func (s *Service) Profiles(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	profiles := s.session.Profiles()
	values := make([]*structpb.Value, len(profiles))
	for i, p := range profiles {
		values[i] = structpb.NewNumberValue(p)
	}
	return &structpb.ListValue{Values: values}, nil
}
// #endregion handlers

// #region status
func toStatus(err error) error {
	switch {
	case errors.Is(err, casino.ErrIndexOutOfRange):
		return status.Error(codes.OutOfRange, err.Error())
	case errors.Is(err, casino.ErrNotStarted):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, casino.ErrTrialLimit):
		return status.Error(codes.ResourceExhausted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// fromStatus maps a status error back onto the casino sentinels.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	var sentinel error
	switch st.Code() {
	case codes.OutOfRange:
		sentinel = casino.ErrIndexOutOfRange
	case codes.FailedPrecondition:
		sentinel = casino.ErrNotStarted
	case codes.ResourceExhausted:
		sentinel = casino.ErrTrialLimit
	default:
		return err
	}
	return &remoteError{msg: st.Message(), sentinel: sentinel}
}

// remoteError carries the server's message and matches the sentinel with
// errors.Is.
type remoteError struct {
	msg      string
	sentinel error
}

func (e *remoteError) Error() string { return "remote: " + e.msg }
func (e *remoteError) Unwrap() error { return e.sentinel }
// #endregion status
