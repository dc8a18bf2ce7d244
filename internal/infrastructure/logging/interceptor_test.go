package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/asakaida/edurecords/internal/infrastructure/config"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestUnaryServerInterceptor(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantMsg   string
	}{
		{
			name:      "success",
			err:       nil,
			wantLevel: "level=DEBUG",
			wantMsg:   "request handled",
		},
		{
			name:      "invalid argument",
			err:       status.Error(codes.InvalidArgument, "bad type"),
			wantLevel: "level=WARN",
			wantMsg:   "request rejected",
		},
		{
			name:      "internal",
			err:       status.Error(codes.Internal, "storage failure"),
			wantLevel: "level=ERROR",
			wantMsg:   "request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(config.LogConfig{Level: "debug", Format: "text"}, &buf)
			interceptor := UnaryServerInterceptor(logger)

			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return nil, tt.err
			}
			info := &grpc.UnaryServerInfo{FullMethod: "/edurecords.v1.PersonService/SavePerson"}

			_, err := interceptor(context.Background(), nil, info, handler)
			if err != tt.err {
				t.Fatalf("interceptor returned %v, want %v", err, tt.err)
			}

			out := buf.String()
			if !strings.Contains(out, tt.wantLevel) {
				t.Errorf("log output %q missing %q", out, tt.wantLevel)
			}
			if !strings.Contains(out, tt.wantMsg) {
				t.Errorf("log output %q missing %q", out, tt.wantMsg)
			}
			if !strings.Contains(out, "/edurecords.v1.PersonService/SavePerson") {
				t.Errorf("log output %q missing method", out)
			}
		})
	}
}
