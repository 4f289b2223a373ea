package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"rsi-alert-bot/internal/database"
	"rsi-alert-bot/lib/helpers"
	"rsi-alert-bot/lib/translation"
)

// CommandThresholds shows the current RSI alert thresholds, or sets new
// ones when called with two values.
func CommandThresholds(argument string) (string, error) {
	log.Debugf("processing command /thresholds with argument: %s", argument)

	fields := strings.Fields(argument)
	if len(fields) == 0 {
		thresholds, err := database.GetThresholds()
		if err != nil {
			return "", errors.Wrap(err, "command /thresholds")
		}
		return fmt.Sprintf(
			translation.Translate("Current thresholds: oversold *%s*, overbought *%s*\\.\nUse `/thresholds LOW HIGH` to change them\\."),
			helpers.EscapeMarkdownV2(helpers.FormatRSI(thresholds.Oversold)),
			helpers.EscapeMarkdownV2(helpers.FormatRSI(thresholds.Overbought)),
		), nil
	}

	if len(fields) != 2 {
		return translation.Translate("Usage: `/thresholds LOW HIGH`, e\\.g\\. `/thresholds 30 70`"), nil
	}

	oversold, err1 := strconv.ParseFloat(fields[0], 64)
	overbought, err2 := strconv.ParseFloat(fields[1], 64)
	if err1 != nil || err2 != nil {
		return translation.Translate("Thresholds must be numbers between 0 and 100\\."), nil
	}

	if err := database.SetThresholds(oversold, overbought); err != nil {
		return translation.Translate("Thresholds must satisfy 0 ≤ LOW \\< HIGH ≤ 100\\."), nil
	}

	return fmt.Sprintf(
		translation.Translate("⚙️ Thresholds updated: oversold *%s*, overbought *%s*\\."),
		helpers.EscapeMarkdownV2(helpers.FormatRSI(oversold)),
		helpers.EscapeMarkdownV2(helpers.FormatRSI(overbought)),
	), nil
}
