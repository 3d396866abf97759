// Package home holds the stateless handlers behind the main menu.
package home

import (
	"StreamBot/bot/chat"
	"StreamBot/bot/chat/ui"
	"StreamBot/entity"
	"StreamBot/internal/lib/sl"
	"context"
	"log/slog"
)

type Registrar interface {
	RegisterUser(ctx context.Context, telegramID int64, fullName string, referrerID *int64) (*entity.User, error)
}

// Start registers the user, honoring a "ref_<id>" payload, and greets with the balance.
type Start struct {
	users Registrar
	log   *slog.Logger
}

func NewStart(users Registrar, log *slog.Logger) *Start {
	return &Start{
		users: users,
		log:   log.With(sl.Module("start")),
	}
}

func (h *Start) Match(ev chat.Event) bool {
	return ev.Kind == chat.EventCommand && ev.Command == "start"
}

func (h *Start) Handle(ctx context.Context, m chat.Messenger, ev chat.Event) error {
	referrer := chat.ParseReferral(ev.Args, ev.UserID)

	user, err := h.users.RegisterUser(ctx, ev.UserID, ev.FullName, referrer)
	if err != nil {
		h.log.With(sl.Err(err)).Warn("registration failed", slog.Int64("user_id", ev.UserID))
		_, err = m.Send(ev.ChatID, ui.Home(ui.Unavailable()))
		return err
	}

	if referrer != nil {
		h.log.Info("referred user registered",
			slog.Int64("user_id", ev.UserID),
			slog.Int64("referrer_id", *referrer),
		)
	}

	_, err = m.Send(ev.ChatID, ui.Welcome(ev.FirstName, user.Balance, referrer != nil))
	return err
}
