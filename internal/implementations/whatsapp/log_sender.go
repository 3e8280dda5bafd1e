package whatsapp

import (
	"context"
	c "remindchat/internal/core/domain/common"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/logging"
)

// LogSender writes outgoing messages to the log instead of sending them.
// It is used in test mode when no Twilio account is configured.
type LogSender struct {
	log logging.Logger
}

func NewLogSender(log logging.Logger) *LogSender {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, to c.PhoneHandle, text string) error {
	s.log.Info(
		ctx,
		"WhatsApp message not sent, sender runs in log mode.",
		logging.Entry("to", to),
		logging.Entry("text", truncate(text)),
	)
	return nil
}
