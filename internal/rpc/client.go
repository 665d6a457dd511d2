package rpc

import (
	"context"
	"fmt"
	"math"

	"github.com/danielpatrickdp/slot-bandit/internal/casino"
	"github.com/danielpatrickdp/slot-bandit/internal/server"
	"github.com/danielpatrickdp/slot-bandit/internal/trial"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// #region client-struct
// Client talks to a remote slotbandit.v1.Casino.
type Client struct {
	conn *grpc.ClientConn
	cc   grpc.ClientConnInterface
}
// #endregion client-struct

// #region constructor
// NewClient connects to the casino gRPC server at addr.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn, cc: conn}, nil
}

// NewClientWithConn builds a Client over an existing connection. Close does
// not close cc.
func NewClientWithConn(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}
// #endregion constructor

// Close shuts down a connection opened by NewClient.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #region calls
// Start begins a game on the remote casino under b.
func (c *Client) Start(ctx context.Context, b trial.Budget) error {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{}}
	if n, ok := b.Max(); ok {
		in.Fields[keyMaxTrials] = structpb.NewNumberValue(float64(n))
	}
	if err := c.cc.Invoke(ctx, methodStart, in, new(emptypb.Empty)); err != nil {
		return fmt.Errorf("start rpc: %w", fromStatus(err))
	}
	return nil
}

// Play pulls arm idx remotely. Errors match the casino sentinels.
func (c *Client) Play(ctx context.Context, idx int) (float64, error) {
	if idx < 0 || uint64(idx) > math.MaxUint32 {
		return 0, fmt.Errorf("arm %d: %w", idx, casino.ErrIndexOutOfRange)
	}
	out := new(wrapperspb.DoubleValue)
	if err := c.cc.Invoke(ctx, methodPlay, wrapperspb.UInt32(uint32(idx)), out); err != nil {
		return 0, fmt.Errorf("play rpc: %w", fromStatus(err))
	}
	return out.GetValue(), nil
}

// Score fetches the remote score summary.
func (c *Client) Score(ctx context.Context) (server.Summary, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodScore, new(emptypb.Empty), out); err != nil {
		return server.Summary{}, fmt.Errorf("score rpc: %w", fromStatus(err))
	}
	fields := out.GetFields()
	sum := server.Summary{
		Score:     fields[keyScore].GetNumberValue(),
		PlayCount: int(fields[keyPlayCount].GetNumberValue()),
	}
	if v, ok := fields[keyMean]; ok {
		mean := v.GetNumberValue()
		sum.Mean = &mean
	}
	return sum, nil
}

// Reset rewinds the remote machines' reward streams.
func (c *Client) Reset(ctx context.Context) error {
	if err := c.cc.Invoke(ctx, methodReset, new(emptypb.Empty), new(emptypb.Empty)); err != nil {
		return fmt.Errorf("reset rpc: %w", fromStatus(err))
	}
	return nil
}

// Profiles fetches each remote machine's hidden probability.
func (c *Client) Profiles(ctx context.Context) ([]float64, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, methodProfiles, new(emptypb.Empty), out); err != nil {
		return nil, fmt.Errorf("profiles rpc: %w", fromStatus(err))
	}
	profiles := make([]float64, len(out.GetValues()))
	for i, v := range out.GetValues() {
		profiles[i] = v.GetNumberValue()
	}
	return profiles, nil
}
// #endregion calls
