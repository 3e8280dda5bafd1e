package extractor

import (
	"fmt"
	"strings"
	"time"
)

const extractionInstructions = `You read WhatsApp messages written in Indonesian (sometimes mixed with English) and
extract reminder requests. Reply with ONE JSON object and nothing else, using exactly these keys:

{
  "intent": "greeting|chitchat|unknown|need_time|need_content|potential_reminder|create|list|stop_number",
  "title": string or null,
  "dueAtWIB": "YYYY-MM-DDTHH:mm:ss+07:00" or null,
  "timeType": "relative|absolute|recurring" or null,
  "repeat": "none|minutes|hours|daily|weekly|monthly|yearly",
  "repeatDetails": {"interval": number or null, "timeOfDay": "HH:mm" or null, "endDate": "YYYY-MM-DD" or null},
  "isRecurring": boolean,
  "recipientUsernames": [string],
  "reply": string or null,
  "stopNumber": number or null
}

Rules:
- "create" needs both a title and a time (or a repeat). Without a time use "need_time"; without a title use "need_content".
- "list" when the user asks to see their reminders ("list", "daftar pengingat", "lihat reminder").
- "stop_number" when the user wants to stop or cancel a numbered item ("stop 2", "hapus nomor 1"); put the number in stopNumber.
- "potential_reminder" when the message hints at something to remember but is not a request yet.
- Usernames mentioned with @ go to recipientUsernames without the @. Keep the title free of mentions.
- Relative times ("10 menit lagi", "besok jam 7") are resolved against the current time below.
- For a repeat without an explicit first time, leave dueAtWIB null and fill repeatDetails.timeOfDay when known.
- Never invent a time the user did not give.`

func extractionPrompt(now time.Time, loc *time.Location) string {
	local := now.In(loc)
	var b strings.Builder
	b.WriteString(extractionInstructions)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Current time: %s (%s, %s).", local.Format(time.RFC3339), local.Weekday(), loc.String())
	return b.String()
}

const polishInstructions = `You rewrite chatbot replies for a WhatsApp reminder assistant so they sound friendly and
natural in casual Indonesian. Keep every fact: times, numbers, list items, usernames starting
with @ and quoted commands must stay exactly as they are. Do not add new information.
Answer with the rewritten reply only.`

func polishPrompt(reply string, userText string) string {
	return fmt.Sprintf("User wrote:\n%s\n\nReply to rewrite:\n%s", userText, reply)
}
