package common

import (
	"fmt"
	"strings"
)

type Optional[T any] struct {
	Value     T
	IsPresent bool
}

func (p *Optional[T]) String() string {
	if !p.IsPresent {
		return "[-]"
	}
	return fmt.Sprintf("[%v]", p.Value)
}

func NewOptional[T any](value T, isPresent bool) Optional[T] {
	return Optional[T]{Value: value, IsPresent: isPresent}
}

// Handle is a user-facing username, always lower-case and without the mention marker.
type Handle string

func NewHandle(raw string) Handle {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimLeft(raw, "@")
	return Handle(strings.ToLower(raw))
}

func (h Handle) Mention() string {
	return "@" + string(h)
}

// PhoneHandle is the transport address of a user, e.g. "+6281234567890".
type PhoneHandle string

const WHATSAPP_PREFIX = "whatsapp:"

func NewPhoneHandle(raw string) PhoneHandle {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, WHATSAPP_PREFIX)
	return PhoneHandle(strings.ReplaceAll(raw, " ", ""))
}
