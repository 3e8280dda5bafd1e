package logging

import (
	"context"
	"remindchat/internal/core/domain/logging"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDIsAttached(t *testing.T) {
	// Setup ---
	require := require.New(t)
	core, logs := observer.New(zap.DebugLevel)
	log := newZapLogger(zap.New(core))
	ctx := logging.WithRequestID(context.Background(), "req-1")

	// Exercise ---
	log.Info(ctx, "Reminder fired.", logging.Entry("reminderID", 42))

	// Verify ---
	require.Equal(1, logs.Len())
	entry := logs.All()[0]
	require.Equal("Reminder fired.", entry.Message)
	fields := entry.ContextMap()
	require.Equal("req-1", fields["requestID"])
	require.EqualValues(42, fields["reminderID"])
}

func TestNoRequestID(t *testing.T) {
	// Setup ---
	require := require.New(t)
	core, logs := observer.New(zap.DebugLevel)
	log := newZapLogger(zap.New(core))

	// Exercise ---
	log.Warning(context.Background(), "Unknown repeat type.", logging.Entry("repeat", "fortnightly"))
	log.Error(context.Background(), "boom")

	// Verify ---
	require.Equal(2, logs.Len())
	require.NotContains(logs.All()[0].ContextMap(), "requestID")
	require.Equal("fortnightly", logs.All()[0].ContextMap()["repeat"])
	require.Equal(zap.ErrorLevel, logs.All()[1].Level)
}
