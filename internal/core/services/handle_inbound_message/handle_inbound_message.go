package handleinboundmessage

import (
	"context"
	"errors"
	"remindchat/internal/core/domain/chat"
	c "remindchat/internal/core/domain/common"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/reply"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	dispatchintent "remindchat/internal/core/services/dispatch_intent"
	"strings"
	"time"
)

type Input struct {
	From c.PhoneHandle
	Body string
}

func NewInput(from string, body string) Input {
	return Input{From: c.NewPhoneHandle(from), Body: strings.TrimSpace(body)}
}

func (i Input) GetRateLimitKey() string {
	return "inbound-message::" + string(i.From)
}

type Result struct {
	Intent chat.Intent
	Reply  string
	Sent   bool
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	extractor      chat.Extractor
	dispatcher     services.Service[dispatchintent.Input, dispatchintent.Result]
	polisher       chat.ReplyPolisher
	sender         chat.MessageSender
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	extractor chat.Extractor,
	dispatcher services.Service[dispatchintent.Input, dispatchintent.Result],
	polisher chat.ReplyPolisher,
	sender chat.MessageSender,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if extractor == nil {
		panic(e.NewNilArgumentError("extractor"))
	}
	if dispatcher == nil {
		panic(e.NewNilArgumentError("dispatcher"))
	}
	if polisher == nil {
		panic(e.NewNilArgumentError("polisher"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		extractor:      extractor,
		dispatcher:     dispatcher,
		polisher:       polisher,
		sender:         sender,
		now:            now,
	}
}

// Run answers one inbound message with exactly one send attempt. Messages
// without a sender or a body are ignored.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.From == "" || input.Body == "" {
		s.log.Info(ctx, "Inbound message ignored, sender or body is empty.", logging.Entry("from", input.From))
		return result, nil
	}

	result.Intent = chat.IntentUnknown
	u, err := s.userRepository.GetByPhone(ctx, input.From)
	switch {
	case errors.Is(err, user.ErrUserDoesNotExist):
		s.log.Info(ctx, "Inbound message from unregistered phone.", logging.Entry("from", input.From))
		result.Reply = reply.NotRegistered
		result.Sent = s.send(ctx, input.From, result.Reply)
		return result, nil
	case err != nil:
		logging.Error(ctx, s.log, err, logging.Entry("from", input.From))
		result.Reply = reply.TechnicalIssue
		result.Sent = s.send(ctx, input.From, result.Reply)
		return result, nil
	}

	extraction, err := s.extractor.Extract(ctx, chat.ExtractInput{
		Text:     input.Body,
		Now:      s.now(),
		Location: u.Location(),
	})
	if err != nil {
		s.log.Warning(
			ctx,
			"Could not extract intent, falling back to unknown.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		extraction = chat.UnknownExtraction()
	}

	dispatched, err := s.dispatcher.Run(ctx, dispatchintent.Input{User: u, Text: input.Body, Extraction: extraction})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		dispatched.Reply = reply.TechnicalIssue
	}
	result.Intent = dispatched.Intent
	result.Reply = s.polish(ctx, dispatched.Reply, input.Body)
	result.Sent = s.send(ctx, input.From, result.Reply)
	return result, nil
}

func (s *service) polish(ctx context.Context, base string, userText string) string {
	polished, err := s.polisher.Polish(ctx, base, userText)
	if err != nil {
		s.log.Warning(ctx, "Could not polish reply, keeping the original.", logging.Entry("err", err))
		return base
	}
	if strings.TrimSpace(polished) == "" {
		return base
	}
	return polished
}

func (s *service) send(ctx context.Context, to c.PhoneHandle, text string) bool {
	if err := s.sender.Send(ctx, to, text); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("to", to))
		return false
	}
	return true
}
