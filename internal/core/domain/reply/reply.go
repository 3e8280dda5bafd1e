// Package reply renders everything the bot says. Functions here are pure.
package reply

import (
	"fmt"
	c "remindchat/internal/core/domain/common"
	"strings"
	"time"
)

const ABSOLUTE_TIME_LAYOUT = "02 Jan, 15.04"

const (
	NotRegistered  = "Nomor kamu belum terdaftar. Daftar dulu lewat aplikasi, lalu kirim pesan lagi ya."
	TechnicalIssue = "Maaf, lagi ada kendala teknis. Coba lagi sebentar lagi ya."
	SmallTalk      = "Hai! Aku bisa bantu mengingatkan hal penting. Kamu mau bikin pengingat? " +
		"Contoh: \"ingatkan minum obat jam 8 malam\"."
	EmptyList   = "Kamu belum punya pengingat. Kirim pesan seperti \"ingatkan rapat besok jam 9\" untuk membuat satu."
	InvalidTime = "Aku belum bisa memahami waktunya. Coba tulis lagi, misalnya \"besok jam 9 pagi\"."
	TimeInPast  = "Waktu itu sudah lewat. Pilih waktu yang akan datang ya."
)

// TimeUntil phrases the distance from now to dueAt, falling back to an
// absolute date in loc from one day on.
func TimeUntil(now time.Time, dueAt time.Time, loc *time.Location) string {
	seconds := int64(dueAt.Sub(now) / time.Second)
	if seconds < 30 {
		return "sekarang"
	}
	if seconds < 60*60 {
		return fmt.Sprintf("%d menit lagi", roundMinutes(seconds, 59))
	}
	if seconds < 24*60*60 {
		minutes := roundMinutes(seconds, 24*60-1)
		hours, rest := minutes/60, minutes%60
		if rest == 0 {
			return fmt.Sprintf("%d jam lagi", hours)
		}
		return fmt.Sprintf("%d jam %d menit lagi", hours, rest)
	}
	return AbsoluteTime(dueAt, loc)
}

// roundMinutes rounds to the nearest minute capped at limit so it stays in its bucket.
func roundMinutes(seconds int64, limit int64) int64 {
	minutes := (seconds + 30) / 60
	if minutes > limit {
		return limit
	}
	return minutes
}

func AbsoluteTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(ABSOLUTE_TIME_LAYOUT)
}

func Mentions(handles []c.Handle) string {
	mentions := make([]string, 0, len(handles))
	for _, handle := range handles {
		mentions = append(mentions, handle.Mention())
	}
	return strings.Join(mentions, ", ")
}

// WithCanned prefers the extractor's own reply when it gave one.
func WithCanned(canned string, fallback string) string {
	if strings.TrimSpace(canned) != "" {
		return canned
	}
	return fallback
}

func NeedTime(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Kamu mau bikin pengingat? Kapan aku harus mengingatkan kamu?"
	}
	return fmt.Sprintf("Oke, pengingat \"%s\". Kapan aku harus mengingatkan kamu?", title)
}

func NeedContent(canned string) string {
	return WithCanned(canned, "Kamu mau bikin pengingat? Mau diingatkan tentang apa?")
}

func PotentialReminder(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Sepertinya ada yang perlu diingat. Aku bisa bantu bikin pengingat, sebutkan apa dan kapan ya."
	}
	return fmt.Sprintf(
		"Sepertinya kamu perlu diingatkan soal \"%s\". Mau aku bantu bikin pengingat? Sebutkan waktunya ya.",
		title,
	)
}

func RecipientProblems(unknown []c.Handle, notFriends []c.Handle) string {
	lines := make([]string, 0, 2)
	if len(unknown) > 0 {
		lines = append(lines, fmt.Sprintf("Username tidak ditemukan: %s.", Mentions(unknown)))
	}
	if len(notFriends) > 0 {
		lines = append(
			lines,
			fmt.Sprintf("Kamu belum berteman dengan %s. Kirim permintaan pertemanan dulu ya.", Mentions(notFriends)),
		)
	}
	lines = append(lines, "Pengingat belum dibuat.")
	return strings.Join(lines, "\n")
}

type Created struct {
	Title      string
	DueAt      time.Time
	Label      string
	Recipients []c.Handle
}

func Confirmation(created Created, now time.Time, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Siap! Aku akan ingatkan \"%s\" %s", created.Title, when(now, created.DueAt, loc))
	if created.Label != "" {
		fmt.Fprintf(&b, " (%s)", created.Label)
	}
	if len(created.Recipients) > 0 {
		fmt.Fprintf(&b, " untuk kamu dan %s", Mentions(created.Recipients))
	}
	b.WriteString(".")
	return b.String()
}

func when(now time.Time, dueAt time.Time, loc *time.Location) string {
	phrase := TimeUntil(now, dueAt, loc)
	if dueAt.Sub(now) >= 24*time.Hour {
		return "pada " + phrase
	}
	return phrase
}

type ListItem struct {
	Title      string
	DueAt      c.Optional[time.Time]
	Label      string
	Recipients []c.Handle
}

func List(items []ListItem, loc *time.Location) string {
	if len(items) == 0 {
		return EmptyList
	}
	var b strings.Builder
	b.WriteString("Daftar pengingat kamu:\n")
	for ix, item := range items {
		fmt.Fprintf(&b, "%d. %s", ix+1, item.Title)
		if item.DueAt.IsPresent {
			fmt.Fprintf(&b, " - %s", AbsoluteTime(item.DueAt.Value, loc))
		}
		if item.Label != "" {
			fmt.Fprintf(&b, " (%s)", item.Label)
		}
		if len(item.Recipients) > 0 {
			fmt.Fprintf(&b, " untuk %s", Mentions(item.Recipients))
		}
		b.WriteString("\n")
	}
	b.WriteString("\nKirim \"stop <nomor>\" untuk membatalkan pengingat.")
	return b.String()
}

func NotFound(index int) string {
	if index > 0 {
		return fmt.Sprintf(
			"Pengingat nomor %d tidak ditemukan. Coba kirim \"list\" dulu untuk melihat daftar terbaru.",
			index,
		)
	}
	return "Pengingat tidak ditemukan. Coba kirim \"list\" dulu untuk melihat daftar terbaru."
}

func Cancelled(title string, recipients []c.Handle) string {
	text := fmt.Sprintf("Pengingat \"%s\" berhasil dibatalkan.", title)
	if len(recipients) > 0 {
		text += fmt.Sprintf(" %s juga tidak akan diingatkan lagi.", Mentions(recipients))
	}
	return text
}

func Fired(title string, from c.Optional[c.Handle]) string {
	if from.IsPresent {
		return fmt.Sprintf("Pengingat dari %s: %s", from.Value.Mention(), title)
	}
	return fmt.Sprintf("Pengingat: %s", title)
}
