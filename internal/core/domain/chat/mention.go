package chat

import (
	"regexp"
	c "remindchat/internal/core/domain/common"
	"strings"
)

var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_.]+)`)

type Mentions struct {
	Handles []c.Handle
	Cleaned string
}

// ParseMentions extracts "@handle" tokens in first-seen order, deduplicated
// case-insensitively, and returns the text without them. It is total.
func ParseMentions(text string) Mentions {
	result := Mentions{Handles: []c.Handle{}}
	seen := make(map[c.Handle]struct{})
	for _, match := range mentionPattern.FindAllStringSubmatch(text, -1) {
		handle := c.NewHandle(strings.TrimRight(match[1], "."))
		if handle == "" {
			continue
		}
		if _, ok := seen[handle]; ok {
			continue
		}
		seen[handle] = struct{}{}
		result.Handles = append(result.Handles, handle)
	}
	cleaned := mentionPattern.ReplaceAllString(text, " ")
	result.Cleaned = strings.Join(strings.Fields(cleaned), " ")
	return result
}

// NormalizeHandles strips mention markers and drops duplicates and blanks.
func NormalizeHandles(raw []string) []c.Handle {
	result := make([]c.Handle, 0, len(raw))
	seen := make(map[c.Handle]struct{}, len(raw))
	for _, r := range raw {
		handle := c.NewHandle(r)
		if handle == "" {
			continue
		}
		if _, ok := seen[handle]; ok {
			continue
		}
		seen[handle] = struct{}{}
		result = append(result, handle)
	}
	return result
}
