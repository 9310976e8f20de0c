package tagger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/codeready-toolchain/contractmask/pkg/config"
	"github.com/codeready-toolchain/contractmask/pkg/metrics"
	"github.com/codeready-toolchain/contractmask/pkg/models"
	"github.com/codeready-toolchain/contractmask/pkg/version"
)

const transportGRPC = "grpc"

// Methods served by the tagger. Requests and responses are
// google.protobuf.Struct values carrying the JSON wire format.
const (
	MethodDetect      = "/contractmask.tagger.v1.Tagger/Detect"
	MethodDetectBatch = "/contractmask.tagger.v1.Tagger/DetectBatch"
)

// GRPCClient calls a tagger over gRPC.
type GRPCClient struct {
	conn    *grpc.ClientConn
	timeout time.Duration
	offsets config.OffsetUnit
}

// NewGRPCClient connects lazily to the tagger at addr. Extra dial options
// are appended after the defaults (insecure transport, User-Agent).
func NewGRPCClient(addr string, timeout time.Duration, offsets config.OffsetUnit, opts ...grpc.DialOption) (*GRPCClient, error) {
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUserAgent(version.Full()),
	}, opts...)
	conn, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to tagger: %w", err)
	}
	return &GRPCClient{conn: conn, timeout: timeout, offsets: offsets}, nil
}

// Close closes the gRPC connection
func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

// Detect implements Tagger.
func (c *GRPCClient) Detect(ctx context.Context, text string) ([]models.EntitySpan, error) {
	metrics.TaggerCalls.WithLabelValues(transportGRPC, "single").Inc()

	var resp detectResponse
	if err := c.invoke(ctx, MethodDetect, map[string]any{"text": text}, &resp); err != nil {
		metrics.TaggerFailures.WithLabelValues(transportGRPC).Inc()
		return nil, err
	}
	return toSpans(text, resp.Spans, c.offsets), nil
}

// DetectBatch implements BatchTagger.
func (c *GRPCClient) DetectBatch(ctx context.Context, texts []string) ([][]models.EntitySpan, error) {
	metrics.TaggerCalls.WithLabelValues(transportGRPC, "batch").Inc()

	list := make([]any, len(texts))
	for i, t := range texts {
		list[i] = t
	}
	var resp detectBatchResponse
	if err := c.invoke(ctx, MethodDetectBatch, map[string]any{"texts": list}, &resp); err != nil {
		metrics.TaggerFailures.WithLabelValues(transportGRPC).Inc()
		return nil, err
	}
	if len(resp.Results) != len(texts) {
		metrics.TaggerFailures.WithLabelValues(transportGRPC).Inc()
		return nil, fmt.Errorf("%w: batch returned %d results for %d texts", ErrUnavailable, len(resp.Results), len(texts))
	}
	out := make([][]models.EntitySpan, len(texts))
	for i, r := range resp.Results {
		out[i] = toSpans(texts[i], r.Spans, c.offsets)
	}
	return out, nil
}

func (c *GRPCClient) invoke(ctx context.Context, method string, in map[string]any, out any) error {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return fmt.Errorf("encode tagger request: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, method, req, resp); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, method, err)
	}

	// Struct -> JSON -> wire types keeps one decoder for both transports.
	raw, err := protojson.Marshal(resp)
	if err != nil {
		return fmt.Errorf("%w: encode %s response: %v", ErrUnavailable, method, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrUnavailable, method, err)
	}
	return nil
}
