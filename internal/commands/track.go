package commands

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"rsi-alert-bot/internal/database"
	"rsi-alert-bot/lib/helpers"
	"rsi-alert-bot/lib/translation"
)

// CommandStart registers the chat as a user.
func CommandStart(chatID int64, username string) (string, error) {
	log.Debugf("processing command /start for chat %d", chatID)

	if _, err := database.GetOrCreateUser(chatID); err != nil {
		return "", errors.Wrap(err, "command /start")
	}

	if username == "" {
		username = translation.Translate("trader")
	}
	return fmt.Sprintf(
		translation.Translate("Welcome %s\\! Use /track SYMBOL to get RSI alerts, e\\.g\\. `/track BTCUSDT`\\."),
		helpers.EscapeMarkdownV2(username),
	), nil
}

// CommandTrack starts tracking a symbol for the chat. The symbol is
// validated against the exchange before it is persisted.
func CommandTrack(chatID int64, argument string) (string, error) {
	symbol := helpers.NormalizeSymbol(argument)
	log.Debugf("processing command /track with argument: %s", symbol)

	if symbol == "" {
		return translation.Translate("Usage: `/track SYMBOL`, e\\.g\\. `/track BTCUSDT`"), nil
	}

	price, err := binanceClient.GetCurrentPrice(symbol)
	if err != nil {
		return "", errors.Wrapf(err, "command /track: unknown symbol %s", symbol)
	}

	userID, err := database.GetOrCreateUser(chatID)
	if err != nil {
		return "", errors.Wrap(err, "command /track")
	}
	if err := database.AddUserSymbol(userID, symbol); err != nil {
		return "", errors.Wrap(err, "command /track")
	}

	return fmt.Sprintf(
		translation.Translate("✅ Now tracking *%s* \\(current price: $%s\\)"),
		helpers.EscapeMarkdownV2(symbol),
		helpers.FormatPriceUS(price, true),
	), nil
}

// CommandUntrack stops tracking a symbol for the chat.
func CommandUntrack(chatID int64, argument string) (string, error) {
	symbol := helpers.NormalizeSymbol(argument)
	log.Debugf("processing command /untrack with argument: %s", symbol)

	if symbol == "" {
		return translation.Translate("Usage: `/untrack SYMBOL`"), nil
	}

	userID, err := database.GetOrCreateUser(chatID)
	if err != nil {
		return "", errors.Wrap(err, "command /untrack")
	}

	removed, err := database.RemoveUserSymbol(userID, symbol)
	if err != nil {
		return "", errors.Wrap(err, "command /untrack")
	}
	if !removed {
		return fmt.Sprintf(
			translation.Translate("You are not tracking *%s*\\."),
			helpers.EscapeMarkdownV2(symbol),
		), nil
	}

	return fmt.Sprintf(
		translation.Translate("🗑 Stopped tracking *%s*\\."),
		helpers.EscapeMarkdownV2(symbol),
	), nil
}

// CommandList shows the chat's tracked symbols.
func CommandList(chatID int64) (string, error) {
	userID, err := database.GetOrCreateUser(chatID)
	if err != nil {
		return "", errors.Wrap(err, "command /list")
	}

	symbols, err := database.GetUserSymbols(userID)
	if err != nil {
		return "", errors.Wrap(err, "command /list")
	}
	if len(symbols) == 0 {
		return translation.Translate("You are not tracking any symbols yet\\. Use `/track SYMBOL` to start\\."), nil
	}

	var list strings.Builder
	list.WriteString(translation.Translate("*Tracked symbols:*\n"))
	for _, symbol := range symbols {
		list.WriteString(fmt.Sprintf("▫️ %s\n", helpers.EscapeMarkdownV2(symbol)))
	}
	return list.String(), nil
}
