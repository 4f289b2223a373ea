package commands

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"rsi-alert-bot/internal/database"
	"rsi-alert-bot/internal/rsi"
	"rsi-alert-bot/lib/helpers"
	"rsi-alert-bot/lib/translation"
)

// CommandRSI computes the current RSI for a symbol on demand from REST
// kline history.
func CommandRSI(argument string) (string, error) {
	symbol := helpers.NormalizeSymbol(argument)
	log.Debugf("processing command /rsi with argument: %s", symbol)

	if symbol == "" {
		return translation.Translate("Usage: `/rsi SYMBOL`, e\\.g\\. `/rsi BTCUSDT`"), nil
	}

	klines, err := binanceClient.GetKlines(symbol, klineInterval(), 100)
	if err != nil {
		return "", errors.Wrap(err, "command /rsi")
	}

	closes := make([]float64, 0, len(klines))
	for _, k := range klines {
		closes = append(closes, k.Close)
	}

	values := rsi.Calculate(closes, rsi.DefaultPeriod)
	if len(values) == 0 {
		return fmt.Sprintf(
			translation.Translate("Not enough price history for *%s* yet\\."),
			helpers.EscapeMarkdownV2(symbol),
		), nil
	}
	current := values[len(values)-1]

	thresholds, err := database.GetThresholds()
	if err != nil {
		return "", errors.Wrap(err, "command /rsi")
	}

	signal := translation.Translate("neutral")
	if rsi.IsOversold(current, thresholds.Oversold) {
		signal = translation.Translate("oversold 📉")
	} else if rsi.IsOverbought(current, thresholds.Overbought) {
		signal = translation.Translate("overbought 📈")
	}

	return fmt.Sprintf(
		"*%s* RSI\\(%d, %s\\) \\= *%s* — %s",
		helpers.EscapeMarkdownV2(symbol),
		rsi.DefaultPeriod,
		helpers.EscapeMarkdownV2(klineInterval()),
		helpers.EscapeMarkdownV2(helpers.FormatRSI(current)),
		helpers.EscapeMarkdownV2(signal),
	), nil
}
