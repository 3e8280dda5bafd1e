package extractor

import (
	"context"
	"remindchat/internal/core/domain/chat"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyword(t *testing.T) {
	cases := []struct {
		text       string
		intent     chat.Intent
		stopNumber int
	}{
		{text: "list", intent: chat.IntentList},
		{text: "  Daftar   Pengingat ", intent: chat.IntentList},
		{text: "stop 2", intent: chat.IntentStopNumber, stopNumber: 2},
		{text: "hapus nomor 13", intent: chat.IntentStopNumber, stopNumber: 13},
		{text: "batal #1", intent: chat.IntentStopNumber, stopNumber: 1},
		{text: "Halo bot", intent: chat.IntentGreeting},
		{text: "selamat pagi", intent: chat.IntentGreeting},
		{text: "ingatkan minum obat jam 7", intent: chat.IntentUnknown},
		{text: "stop", intent: chat.IntentUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			require := require.New(t)

			extraction, err := NewKeyword().Extract(context.Background(), chat.ExtractInput{Text: tc.text})

			require.Nil(err)
			require.Equal(tc.intent, extraction.Intent)
			if tc.stopNumber > 0 {
				require.True(extraction.StopNumber.IsPresent)
				require.Equal(tc.stopNumber, extraction.StopNumber.Value)
			}
		})
	}
}
