package chat

import (
	"context"
	c "remindchat/internal/core/domain/common"
	"time"
)

type RepeatDetails struct {
	Interval  uint32
	TimeOfDay string
	EndDate   string
}

// Extraction is what the language model made of a message. Every slot is
// optional and untrusted.
type Extraction struct {
	Intent             Intent
	Title              string
	DueAtWIB           string
	TimeType           string
	Repeat             string
	RepeatDetails      RepeatDetails
	IsRecurring        bool
	RecipientUsernames []string
	Reply              string
	StopNumber         c.Optional[int]
}

func UnknownExtraction() Extraction {
	return Extraction{Intent: IntentUnknown}
}

type ExtractInput struct {
	Text     string
	Now      time.Time
	Location *time.Location
}

type Extractor interface {
	Extract(ctx context.Context, input ExtractInput) (Extraction, error)
}

// ReplyPolisher may rephrase a composed reply; an empty result means keep the original.
type ReplyPolisher interface {
	Polish(ctx context.Context, reply string, userText string) (string, error)
}

type MessageSender interface {
	Send(ctx context.Context, to c.PhoneHandle, text string) error
}

type NopPolisher struct{}

func (NopPolisher) Polish(ctx context.Context, reply string, userText string) (string, error) {
	return reply, nil
}
