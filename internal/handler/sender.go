package handler

import (
	tele "gopkg.in/telebot.v3"
)

// BotSender delivers broadcast messages through the bot API. It
// satisfies the broadcast service's Sender without the service ever
// seeing a telebot type.
type BotSender struct {
	bot *tele.Bot
}

// NewBotSender wraps a bot for broadcast delivery
func NewBotSender(bot *tele.Bot) *BotSender {
	return &BotSender{bot: bot}
}

// Send delivers one message to one recipient
func (s *BotSender) Send(telegramID int64, text string) error {
	_, err := s.bot.Send(&tele.User{ID: telegramID}, text)
	return err
}
