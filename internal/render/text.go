// Package render turns tutor responses into terminal text.
package render

import (
	"fmt"
	"strings"
	"time"
)

const fence = "```"

// Wrap word-wraps markdown-ish text to width. Lines inside ``` fences are
// kept verbatim and indented with 4 spaces; the fence lines are dropped.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	var result strings.Builder
	inFence := false
	for _, paragraph := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(paragraph), fence) {
			inFence = !inFence
			continue
		}
		if inFence {
			result.WriteString("    ")
			result.WriteString(paragraph)
			result.WriteString("\n")
			continue
		}
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}
		indent := leadingIndent(paragraph)
		result.WriteString(indent)
		lineLen := len(indent)
		for i, word := range words {
			wlen := len([]rune(word))
			if i > 0 && lineLen+1+wlen > width {
				result.WriteString("\n")
				result.WriteString(indent)
				lineLen = len(indent)
			} else if i > 0 {
				result.WriteString(" ")
				lineLen++
			}
			result.WriteString(word)
			lineLen += wlen
		}
		result.WriteString("\n")
	}
	return strings.TrimRight(result.String(), "\n")
}

// leadingIndent keeps list items ("- ", "1. ") aligned when wrapped.
func leadingIndent(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	return line[:len(line)-len(trimmed)]
}

// TimeAgo renders an RFC 3339 timestamp relative to now. Unparseable
// input is returned unchanged.
func TimeAgo(timestamp string, now time.Time) string {
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return timestamp
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 30*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	default:
		return t.Format("Jan 2, 2006")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// Percent formats score/total as a whole percentage.
func Percent(score, total int) string {
	if total <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", score*100/total)
}
