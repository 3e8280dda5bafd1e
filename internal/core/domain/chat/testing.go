package chat

import (
	"context"
	"fmt"
	c "remindchat/internal/core/domain/common"
	"sync"
)

type FakeExtractor struct {
	Extraction Extraction
	Error      error
	Inputs     []ExtractInput
	lock       sync.Mutex
}

func NewFakeExtractor(extraction Extraction) *FakeExtractor {
	return &FakeExtractor{Extraction: extraction}
}

func (e *FakeExtractor) Extract(ctx context.Context, input ExtractInput) (Extraction, error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.Inputs = append(e.Inputs, input)
	if e.Error != nil {
		return Extraction{}, e.Error
	}
	return e.Extraction, nil
}

type SentMessage struct {
	To   c.PhoneHandle
	Text string
}

type FakeMessageSender struct {
	Sent        []SentMessage
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeMessageSender() *FakeMessageSender {
	return &FakeMessageSender{}
}

func (s *FakeMessageSender) Send(ctx context.Context, to c.PhoneHandle, text string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, SentMessage{To: to, Text: text})
	if s.ReturnError {
		return fmt.Errorf("could not send message to %s", to)
	}
	return nil
}

func (s *FakeMessageSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

func (s *FakeMessageSender) LastSent() SentMessage {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}

type FakePolisher struct {
	Result string
	Error  error
}

func (p *FakePolisher) Polish(ctx context.Context, reply string, userText string) (string, error) {
	if p.Error != nil {
		return "", p.Error
	}
	return p.Result, nil
}
