package handler

import (
	"context"
	"strings"
	"unicode"

	"realmbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Buttons are built with markup.Data(label, key), so the key comes
	// back in Unique; raw data is the fallback for older messages
	key := callback.Unique
	if key == "" {
		key = cleanCallbackData(callback.Data)
	}

	h.logger.Debug("Processing callback",
		zap.String("key", key),
		zap.String("id", callback.ID),
		zap.Int64("user_id", c.Sender().ID),
	)

	if key == "" {
		return c.Respond()
	}

	reply := h.dispatcher.Dispatch(context.Background(), c.Sender().ID, domain.NewChoice(key))

	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	return h.send(c, reply)
}
