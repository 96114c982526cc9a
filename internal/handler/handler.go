package handler

import (
	"context"

	"realmbot/internal/dispatcher"
	"realmbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler connects the Telegram transport to the dispatcher. It does no
// dialogue logic of its own: every update becomes one event, every
// event yields one reply to render.
type Handler struct {
	bot        *tele.Bot
	dispatcher *dispatcher.Dispatcher
	logger     *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(bot *tele.Bot, d *dispatcher.Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{
		bot:        bot,
		dispatcher: d,
		logger:     logger,
	}
}

// Commands the bot answers to. Admin commands are routed like any
// other; the dialogue engine decides who may use them.
var commands = []string{
	"/start",
	"/register",
	"/reset",
	"/email",
	"/accounts",
	"/delete",
	"/shop",
	"/cancel",
	"/version",
	"/admin",
	"/broadcast",
	"/checkdb",
	"/deleteacc",
	"/reload",
	"/logs",
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	for _, cmd := range commands {
		h.bot.Handle(cmd, h.makeCommandHandler(cmd))
	}

	// Free text feeds the active flow
	h.bot.Handle(tele.OnText, h.handleText)

	// Inline buttons
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

func (h *Handler) makeCommandHandler(cmd string) tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.dispatch(c, domain.NewCommand(cmd))
	}
}

func (h *Handler) handleText(c tele.Context) error {
	return h.dispatch(c, domain.NewText(c.Text()))
}

func (h *Handler) dispatch(c tele.Context, ev domain.Event) error {
	reply := h.dispatcher.Dispatch(context.Background(), c.Sender().ID, ev)
	return h.send(c, reply)
}

// send renders a reply, attaching the choice buttons as an inline
// keyboard when present
func (h *Handler) send(c tele.Context, reply domain.Reply) error {
	if len(reply.Choices) == 0 {
		return c.Send(reply.Text)
	}

	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(reply.Choices))
	for _, choice := range reply.Choices {
		rows = append(rows, markup.Row(markup.Data(choice.Label, choice.Key)))
	}
	markup.Inline(rows...)

	return c.Send(reply.Text, markup)
}
