package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"rsi-alert-bot/internal/database"
	"rsi-alert-bot/lib/helpers"
	"rsi-alert-bot/lib/translation"
)

const alertHistoryLimit = 10

// CommandAlerts lists the most recent alerts triggered for the chat.
func CommandAlerts(chatID int64) (string, error) {
	userID, err := database.GetOrCreateUser(chatID)
	if err != nil {
		return "", errors.Wrap(err, "command /alerts")
	}

	alerts, err := database.GetRecentAlertsByUser(userID, alertHistoryLimit)
	if err != nil {
		return "", errors.Wrap(err, "command /alerts")
	}
	if len(alerts) == 0 {
		return translation.Translate("No alerts triggered yet\\."), nil
	}

	var list strings.Builder
	list.WriteString(translation.Translate("*Recent alerts:*\n"))
	for _, a := range alerts {
		emoji := "📉"
		if a.AlertType == "overbought" {
			emoji = "📈"
		}
		list.WriteString(fmt.Sprintf(
			"%s %s RSI \\= %s \\(%s\\)\n",
			emoji,
			helpers.EscapeMarkdownV2(a.Symbol),
			helpers.EscapeMarkdownV2(helpers.FormatRSI(a.RSIValue)),
			helpers.EscapeMarkdownV2(formatTriggeredAt(a.TriggeredAt)),
		))
	}
	return list.String(), nil
}

// formatTriggeredAt renders a stored timestamp as a relative time; the raw
// value is shown when it does not parse.
func formatTriggeredAt(stored string) string {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, stored); err == nil {
			return humanize.Time(t)
		}
	}
	return stored
}
