package extractor

import (
	"context"
	"fmt"
	"remindchat/internal/core/domain/chat"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/user"
	"strings"
)

// Completer runs a single system + user turn against a language model.
type Completer interface {
	Complete(ctx context.Context, system string, prompt string) (string, error)
}

type LLMExtractor struct {
	log       logging.Logger
	completer Completer
}

func NewLLMExtractor(log logging.Logger, completer Completer) *LLMExtractor {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if completer == nil {
		panic(e.NewNilArgumentError("completer"))
	}
	return &LLMExtractor{log: log, completer: completer}
}

func (x *LLMExtractor) Extract(ctx context.Context, input chat.ExtractInput) (chat.Extraction, error) {
	loc := input.Location
	if loc == nil {
		loc = user.WIB
	}
	output, err := x.completer.Complete(ctx, extractionPrompt(input.Now, loc), input.Text)
	if err != nil {
		return chat.UnknownExtraction(), fmt.Errorf("could not extract intent: %w", err)
	}
	extraction, err := ParseExtraction(output)
	if err != nil {
		x.log.Warning(
			ctx,
			"Could not parse model output.",
			logging.Entry("output", output),
			logging.Entry("err", err),
		)
		return chat.UnknownExtraction(), nil
	}
	x.log.Debug(
		ctx,
		"Extracted intent.",
		logging.Entry("intent", extraction.Intent.String()),
		logging.Entry("repeat", extraction.Repeat),
	)
	return extraction, nil
}

type LLMPolisher struct {
	completer Completer
}

func NewLLMPolisher(completer Completer) *LLMPolisher {
	if completer == nil {
		panic(e.NewNilArgumentError("completer"))
	}
	return &LLMPolisher{completer: completer}
}

func (p *LLMPolisher) Polish(ctx context.Context, reply string, userText string) (string, error) {
	output, err := p.completer.Complete(ctx, polishInstructions, polishPrompt(reply, userText))
	if err != nil {
		return "", fmt.Errorf("could not polish reply: %w", err)
	}
	return strings.TrimSpace(output), nil
}
