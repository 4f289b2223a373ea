// Package alert turns monitor alert events into Telegram notifications.
package alert

import (
	"fmt"

	"rsi-alert-bot/internal/monitor"
	"rsi-alert-bot/internal/telegram"
	"rsi-alert-bot/lib/helpers"
	"rsi-alert-bot/lib/translation"
)

// Notifier delivers alert events to their recipients over Telegram. It
// implements monitor.Sink.
type Notifier struct {
	bot *telegram.Bot
}

func NewNotifier(bot *telegram.Bot) *Notifier {
	return &Notifier{bot: bot}
}

// Deliver sends one alert notification. The monitor treats a returned error
// as final: delivery is never retried.
func (n *Notifier) Deliver(event monitor.AlertEvent) error {
	return n.bot.SendMessage(telegram.Message{
		ChatID: int(event.Recipient.ChatID),
		Text:   FormatMessage(event),
	})
}

// FormatMessage renders the MarkdownV2 alert text for an event.
func FormatMessage(event monitor.AlertEvent) string {
	var emoji, condition, action string
	if event.Kind == monitor.Oversold {
		emoji = "📉"
		condition = translation.Translate("oversold")
		action = translation.Translate("potential buying opportunity")
	} else {
		emoji = "📈"
		condition = translation.Translate("overbought")
		action = translation.Translate("potential selling opportunity")
	}

	return fmt.Sprintf(
		"%s *RSI Alert*\n\n*%s*: RSI \\= *%s*\n\n%s",
		emoji,
		helpers.EscapeMarkdownV2(event.Symbol),
		helpers.EscapeMarkdownV2(helpers.FormatRSI(event.RSIValue)),
		helpers.EscapeMarkdownV2(fmt.Sprintf(
			translation.Translate("This indicates an %s condition - %s!"),
			condition, action,
		)),
	)
}
