package logging

import (
	"context"
	"errors"
)

type LogEntry struct {
	Key   string
	Value interface{}
}

func Entry(k string, v interface{}) LogEntry {
	return LogEntry{Key: k, Value: v}
}

type Logger interface {
	Debug(ctx context.Context, msg string, entries ...LogEntry)
	Info(ctx context.Context, msg string, entries ...LogEntry)
	Warning(ctx context.Context, msg string, entries ...LogEntry)
	Error(ctx context.Context, msg string, entries ...LogEntry)
}

// Error logs err with its message as the log message.
func Error(ctx context.Context, log Logger, err error, entries ...LogEntry) {
	if err == nil {
		err = errors.New("unknown error")
	}
	entries = append(entries, Entry("err", err))
	log.Error(ctx, err.Error(), entries...)
}

type contextRequestID string

const CONTEXT_REQUEST_ID_KEY = contextRequestID("requestID")

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CONTEXT_REQUEST_ID_KEY, requestID)
}

func RequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(CONTEXT_REQUEST_ID_KEY).(string)
	return requestID, ok
}
