package telegram

import (
	"fmt"
	"strings"
	"time"

	"golang-stock-signal/pkg/utils"
)

var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"`", "\\`",
	"[", "\\[",
)

// EscapeMarkdown escapes the characters that legacy Telegram Markdown treats as markup.
func EscapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

// FormatSignalAlert wraps a signal message into the Telegram alert layout.
func FormatSignalAlert(message string, at time.Time) string {
	var builder strings.Builder

	emoji := "🔔"
	switch {
	case strings.Contains(message, "-> BUY"):
		emoji = "🟢"
	case strings.Contains(message, "-> SELL"):
		emoji = "🔴"
	}

	builder.WriteString(fmt.Sprintf("%s *Signal Alert*\n", emoji))
	builder.WriteString(fmt.Sprintf("%s\n", EscapeMarkdown(message)))
	builder.WriteString(utils.PrettyDate(at))
	return builder.String()
}
