package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"rsi-alert-bot/internal/commands"
	"rsi-alert-bot/lib/translation"
)

// NewBot creates new telegram bot
func NewBot(c BotConfig) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(c.Token)
	if err != nil {
		return nil, errors.Wrap(err, "could not create telegram bot")
	}

	bot.Debug = c.Debug

	return &Bot{
		Bot:    bot,
		Config: c,
	}, nil
}

// GetUpdatesChannel gets new updates
func (b *Bot) GetUpdatesChannel() (tgbotapi.UpdatesChannel, error) {
	updatesConfig := tgbotapi.NewUpdate(0)
	if b.Config.UpdatesTimeout > 0 {
		updatesConfig.Timeout = b.Config.UpdatesTimeout
	}
	return b.Bot.GetUpdatesChan(updatesConfig), nil
}

// SendMessage sends a telegram message
func (b *Bot) SendMessage(m Message) error {
	msg := tgbotapi.NewMessage(int64(m.ChatID), m.Text)
	msg.ReplyToMessageID = m.MessageID
	msg.DisableWebPagePreview = true
	msg.ParseMode = "MarkdownV2"
	_, err := b.Bot.Send(msg)
	return errors.Wrapf(err, "could not send message: %v", m)
}

// HandleUpdate processes Telegram updates and returns the reply text. An
// empty return means the reply was already sent (photo replies).
func (b *Bot) HandleUpdate(u tgbotapi.Update) string {
	text := translation.Translate(
		"*Commands:*\n" +
			"`/track SYMBOL` — get RSI alerts for a pair\n" +
			"`/untrack SYMBOL` — stop alerts for a pair\n" +
			"`/list` — your tracked pairs\n" +
			"`/rsi SYMBOL` — current RSI on demand\n" +
			"`/chart SYMBOL` — price \\+ RSI chart\n" +
			"`/thresholds [LOW HIGH]` — view or set alert levels\n" +
			"`/alerts` — recent alerts")
	log.Debugf("received command: %s", u.Message.Command())

	var err error = nil

	switch u.Message.Command() {
	case "start":
		username := ""
		if u.Message.From != nil {
			username = u.Message.From.UserName
		}
		if text, err = commands.CommandStart(u.Message.Chat.ID, username); err != nil {
			text = translation.Translate("Something went wrong, please try again later\\.")
			log.Error(err)
		}
	case "track":
		if text, err = commands.CommandTrack(u.Message.Chat.ID, u.Message.CommandArguments()); err != nil {
			text = translation.Translate("Symbol not found on Binance\\.")
			log.Error(err)
		}
	case "untrack":
		if text, err = commands.CommandUntrack(u.Message.Chat.ID, u.Message.CommandArguments()); err != nil {
			text = translation.Translate("Something went wrong, please try again later\\.")
			log.Error(err)
		}
	case "list":
		if text, err = commands.CommandList(u.Message.Chat.ID); err != nil {
			text = translation.Translate("Something went wrong, please try again later\\.")
			log.Error(err)
		}
	case "rsi":
		if text, err = commands.CommandRSI(u.Message.CommandArguments()); err != nil {
			text = translation.Translate("Symbol not found on Binance\\.")
			log.Error(err)
		}
	case "chart":
		chartData, caption, err := commands.CommandChart(u.Message.CommandArguments())
		if err != nil {
			text = translation.Translate("Symbol not found on Binance\\.")
			log.Error(err)
		} else if chartData != nil {
			photo := tgbotapi.NewPhoto(u.Message.Chat.ID, tgbotapi.FileBytes{
				Name:  "chart.png",
				Bytes: chartData,
			})
			photo.Caption = caption
			photo.ParseMode = "MarkdownV2"
			photo.ReplyToMessageID = u.Message.MessageID
			if _, err = b.Bot.Send(photo); err != nil {
				log.Error("error sending chart:", err)
			}
			return ""
		} else {
			text = caption
		}
	case "thresholds":
		if text, err = commands.CommandThresholds(u.Message.CommandArguments()); err != nil {
			text = translation.Translate("Something went wrong, please try again later\\.")
			log.Error(err)
		}
	case "alerts":
		if text, err = commands.CommandAlerts(u.Message.Chat.ID); err != nil {
			text = translation.Translate("Something went wrong, please try again later\\.")
			log.Error(err)
		}
	}

	return text
}
