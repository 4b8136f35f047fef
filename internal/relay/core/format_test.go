package core_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/unsaidthoughts120-ctrl/Confesssion-Wall-System/internal/relay/core"
)

func TestEscapeMarkdownV2(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text", input: "hello world", expected: "hello world"},
		{name: "backslash", input: `a\b`, expected: `a\\b`},
		{name: "asterisk", input: "a*b", expected: `a\*b`},
		{name: "escaped asterisk input", input: `\*`, expected: `\\\*`},
		{name: "every reserved character", input: "_*[]()~`>#+-=|{}.!", expected: "\\_\\*\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\=\\|\\{\\}\\.\\!"},
		{name: "unreserved punctuation", input: "Hi: you, me? @x/y", expected: "Hi: you, me? @x/y"},
		{name: "emoji and accents", input: "café ❤️", expected: "café ❤️"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, core.EscapeMarkdownV2(tc.input))
		})
	}
}

func TestEscapeMarkdownV2_AppliedOnce(t *testing.T) {
	once := core.EscapeMarkdownV2("1.5")
	assert.Equal(t, `1\.5`, once)

	// escaping twice is observable, so callers must escape exactly once
	assert.Equal(t, `1\\\.5`, core.EscapeMarkdownV2(once))
}

func TestFormatConfession(t *testing.T) {
	at := time.Date(2026, time.October, 17, 15, 4, 5, 0, time.UTC)

	text := core.FormatConfession(core.SubmissionRequest{
		Receiver: "Alex (3B)",
		Message:  "I ate your lunch. Sorry!",
		Sender:   "m_k",
		Source:   "wall-web",
	}, at)

	expected := strings.Join([]string{
		"📣 *New Confession*",
		`*To:* Alex \(3B\)`,
		`*From:* m\_k`,
		"*Message:*",
		`I ate your lunch\. Sorry\!`,
		"",
		`_meta: wall\-web \(10/17/2026, 3:04:05 PM\)_`,
	}, "\n")

	assert.Equal(t, expected, text)
}

func TestFormatConfession_AnonymousSender(t *testing.T) {
	at := time.Date(2026, time.January, 2, 9, 0, 0, 0, time.UTC)

	text := core.FormatConfession(core.SubmissionRequest{
		Receiver: "Sam",
		Message:  "hi",
	}, at)

	assert.Contains(t, text, "*From:* _Anonymous_\n")
	assert.Contains(t, text, `_meta:  \(1/2/2026, 9:00:00 AM\)_`)
}
