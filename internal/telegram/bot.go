package telegram

import (
	"strings"

	"cryptoalert-telegram-bot/internal/commands"
	"cryptoalert-telegram-bot/lib/helpers"
	"cryptoalert-telegram-bot/lib/translation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// NewBot creates new telegram bot
func NewBot(c BotConfig, h *commands.Handler) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(c.Token)
	if err != nil {
		return nil, errors.Wrap(err, "could not create telegram bot")
	}

	bot.Debug = c.Debug

	return &Bot{
		Bot:     bot,
		Config:  c,
		handler: h,
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
	msg := tgbotapi.NewMessage(m.ChatID, m.Text)
	msg.ReplyToMessageID = m.MessageID
	msg.DisableWebPagePreview = true
	msg.ParseMode = "MarkdownV2"
	_, err := b.Bot.Send(msg)
	return errors.Wrapf(err, "could not send message to chat %d", m.ChatID)
}

// HandleUpdate processes Telegram updates and returns the reply text.
func (b *Bot) HandleUpdate(u tgbotapi.Update) string {
	log.Debugf("received command: %s", u.Message.Command())

	chatID := u.Message.Chat.ID
	args := strings.Fields(u.Message.CommandArguments())

	switch u.Message.Command() {
	case "start":
		return b.handler.CommandStart()
	case "price":
		return b.handler.CommandPrice(args)
	case "alert":
		return b.handler.CommandSetAlert(chatID, args)
	case "alerts":
		return b.handler.CommandListAlerts(chatID)
	case "del":
		return b.handler.CommandDeleteAlert(chatID, args)
	}

	return helpers.EscapeMarkdownV2(translation.Translate(
		"Unknown command. Available commands: /start, /price, /alert, /alerts, /del"))
}
