package core

import (
	"strings"
	"time"
)

const (
	ParseModeMarkdownV2 = "MarkdownV2"

	// AnonymousPlaceholder is rendered on the From line when no sender is given
	AnonymousPlaceholder = "_Anonymous_"

	// TimestampLayout mirrors the en-US locale date format
	TimestampLayout = "1/2/2006, 3:04:05 PM"
)

// markdownV2Reserved lists the characters Telegram requires to be escaped in
// MarkdownV2 literal text. Backslash comes first so the backslashes added by
// later replacements are not escaped again.
var markdownV2Reserved = []string{
	"\\", "_", "*", "[", "]", "(", ")", "~", "`", ">", "#", "+", "-", "=", "|", "{", "}", ".", "!",
}

// EscapeMarkdownV2 escapes special characters in text for Telegram's MarkdownV2 format
func EscapeMarkdownV2(text string) string {
	result := text
	for _, char := range markdownV2Reserved {
		result = strings.ReplaceAll(result, char, "\\"+char)
	}

	return result
}

// FormatConfession renders a normalized submission as a MarkdownV2 message.
// Only field values and the timestamp are escaped; the template itself is
// valid MarkdownV2.
func FormatConfession(req SubmissionRequest, at time.Time) string {
	from := AnonymousPlaceholder
	if !req.IsAnonymous() {
		from = EscapeMarkdownV2(req.Sender)
	}

	lines := []string{
		"📣 *New Confession*",
		"*To:* " + EscapeMarkdownV2(req.Receiver),
		"*From:* " + from,
		"*Message:*",
		EscapeMarkdownV2(req.Message),
		"\n_meta: " + EscapeMarkdownV2(req.Source) + " \\(" + EscapeMarkdownV2(at.Format(TimestampLayout)) + "\\)_",
	}

	return strings.Join(lines, "\n")
}
