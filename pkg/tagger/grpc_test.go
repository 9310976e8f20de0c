package tagger

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/codeready-toolchain/contractmask/pkg/config"
	"github.com/codeready-toolchain/contractmask/pkg/models"
)

type structHandler func(method string, req *structpb.Struct) (*structpb.Struct, error)

// startTaggerServer serves every method with handler over an in-memory
// listener and returns a client connected to it.
func startTaggerServer(t *testing.T, handler structHandler) *GRPCClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnknownServiceHandler(func(_ any, stream grpc.ServerStream) error {
		method, _ := grpc.MethodFromServerStream(stream)
		req := &structpb.Struct{}
		if err := stream.RecvMsg(req); err != nil {
			return err
		}
		resp, err := handler(method, req)
		if err != nil {
			return err
		}
		return stream.SendMsg(resp)
	}))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c, err := NewGRPCClient("passthrough:///bufnet", time.Second, config.OffsetUnitByte,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func orgSpans(text string) []any {
	i := strings.Index(text, "Deniz A.Ş.")
	if i < 0 {
		return []any{}
	}
	return []any{map[string]any{"label": "ORG", "start": i, "end": i + len("Deniz A.Ş."), "score": 0.8}}
}

func TestGRPCClient_Detect(t *testing.T) {
	var gotMethod string
	c := startTaggerServer(t, func(method string, req *structpb.Struct) (*structpb.Struct, error) {
		gotMethod = method
		return structpb.NewStruct(map[string]any{"spans": orgSpans(req.Fields["text"].GetStringValue())})
	})

	text := "Alıcı Deniz A.Ş. olarak anılacaktır."
	spans, err := c.Detect(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, MethodDetect, gotMethod)
	require.Len(t, spans, 1)
	assert.Equal(t, models.LabelOrganization, spans[0].Label)
	assert.Equal(t, "Deniz A.Ş.", text[spans[0].Start:spans[0].End])
	assert.InDelta(t, 0.8, spans[0].Confidence, 1e-9)
}

func TestGRPCClient_DetectBatch(t *testing.T) {
	c := startTaggerServer(t, func(method string, req *structpb.Struct) (*structpb.Struct, error) {
		if method != MethodDetectBatch {
			return nil, status.Error(codes.Unimplemented, method)
		}
		var results []any
		for _, v := range req.Fields["texts"].GetListValue().GetValues() {
			results = append(results, map[string]any{"spans": orgSpans(v.GetStringValue())})
		}
		return structpb.NewStruct(map[string]any{"results": results})
	})

	out, err := c.DetectBatch(context.Background(), []string{"Deniz A.Ş. ödeme yapar.", "Diğer taraf onaylar."})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Len(t, out[0], 1)
	assert.Empty(t, out[1])
}

func TestGRPCClient_Failures(t *testing.T) {
	t.Run("status error", func(t *testing.T) {
		c := startTaggerServer(t, func(string, *structpb.Struct) (*structpb.Struct, error) {
			return nil, status.Error(codes.Unavailable, "model loading")
		})
		_, err := c.Detect(context.Background(), "metin")
		require.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("batch length mismatch", func(t *testing.T) {
		c := startTaggerServer(t, func(string, *structpb.Struct) (*structpb.Struct, error) {
			return structpb.NewStruct(map[string]any{"results": []any{}})
		})
		_, err := c.DetectBatch(context.Background(), []string{"a"})
		require.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("unexpected shape", func(t *testing.T) {
		c := startTaggerServer(t, func(string, *structpb.Struct) (*structpb.Struct, error) {
			return structpb.NewStruct(map[string]any{"spans": "none"})
		})
		_, err := c.Detect(context.Background(), "metin")
		require.ErrorIs(t, err, ErrUnavailable)
	})
}
