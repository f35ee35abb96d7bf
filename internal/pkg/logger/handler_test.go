package logger

import (
	"bytes"
	"context"
	log "log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteFilterOnlyShipsTracedRecords(t *testing.T) {
	var local, remote bytes.Buffer
	h := &ContextHandler{NewTeeHandler(
		log.NewJSONHandler(&local, nil),
		NewRemoteFilterHandler(log.NewJSONHandler(&remote, nil)),
	)}
	l := log.New(h)

	l.InfoContext(context.Background(), "boot")
	l.InfoContext(WithTraceID(context.Background(), "job-1"), "sync done", "account_id", 7)

	assert.Contains(t, local.String(), "boot")
	assert.Contains(t, local.String(), "sync done")
	assert.NotContains(t, remote.String(), "boot")
	assert.Contains(t, remote.String(), `"trace_id":"job-1"`)
}

func TestTeeHandlerRespectsLevels(t *testing.T) {
	var info, errOnly bytes.Buffer
	l := log.New(NewTeeHandler(
		log.NewJSONHandler(&info, &log.HandlerOptions{Level: log.LevelInfo}),
		log.NewJSONHandler(&errOnly, &log.HandlerOptions{Level: log.LevelError}),
	).WithAttrs([]log.Attr{log.String("svc", "tracker")}))

	l.Info("hello")
	l.Error("boom")

	assert.Contains(t, info.String(), "hello")
	assert.Contains(t, info.String(), `"svc":"tracker"`)
	assert.NotContains(t, errOnly.String(), "hello")
	assert.Contains(t, errOnly.String(), "boom")
}

func TestTraceIDRoundTrip(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))
	assert.Equal(t, "abc", TraceID(WithTraceID(context.Background(), "abc")))
}
