package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestInitLevelAndOutput(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() {
		mu.Lock()
		logger = prev
		mu.Unlock()
	})

	var buf bytes.Buffer
	l, err := Init(Options{Level: "warn", Output: &buf})
	require.NoError(t, err)
	require.Equal(t, logrus.WarnLevel, l.GetLevel())

	Info(Fields{"session_id": "s1"}, "hidden")
	Warn(Fields{"session_id": "s1"}, "shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), "s1")
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	_, err := Init(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestWithRequestID(t *testing.T) {
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-7")
	require.Equal(t, "req-7", WithRequestID(ctx).Data["request_id"])
	require.Equal(t, "unknown", WithRequestID(context.Background()).Data["request_id"])
}
