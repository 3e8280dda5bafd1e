package extractor

import (
	"context"
	"regexp"
	"remindchat/internal/core/domain/chat"
	c "remindchat/internal/core/domain/common"
	"strconv"
	"strings"
)

var (
	listPattern     = regexp.MustCompile(`^(list|daftar|lihat)( (pengingat|reminder|reminders))?$`)
	stopPattern     = regexp.MustCompile(`^(stop|hapus|batal|batalkan|cancel)( (nomor|no\.?|#))? ?([0-9]+)$`)
	greetingPattern = regexp.MustCompile(`^(hai|halo|hallo|hi|hello|hey|pagi|siang|sore|malam|selamat (pagi|siang|sore|malam))\b`)
)

// Keyword recognizes the handful of fixed commands without a language model.
// Everything else is unknown.
type Keyword struct{}

func NewKeyword() *Keyword {
	return &Keyword{}
}

func (k *Keyword) Extract(ctx context.Context, input chat.ExtractInput) (chat.Extraction, error) {
	text := strings.ToLower(strings.Join(strings.Fields(input.Text), " "))
	switch {
	case listPattern.MatchString(text):
		return chat.Extraction{Intent: chat.IntentList}, nil
	case stopPattern.MatchString(text):
		match := stopPattern.FindStringSubmatch(text)
		n, err := strconv.Atoi(match[len(match)-1])
		if err != nil {
			return chat.UnknownExtraction(), nil
		}
		return chat.Extraction{Intent: chat.IntentStopNumber, StopNumber: c.NewOptional(n, true)}, nil
	case greetingPattern.MatchString(text):
		return chat.Extraction{Intent: chat.IntentGreeting}, nil
	default:
		return chat.UnknownExtraction(), nil
	}
}
