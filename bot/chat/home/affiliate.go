package home

import (
	"StreamBot/bot/chat"
	"StreamBot/bot/chat/ui"
	"context"
	"strings"
)

// Affiliate replies with the user's personal invite link.
type Affiliate struct {
	botName string
}

func NewAffiliate(botName string) *Affiliate {
	return &Affiliate{botName: botName}
}

func (h *Affiliate) Match(ev chat.Event) bool {
	return ev.Kind == chat.EventText && strings.TrimSpace(ev.Text) == ui.BtnAffiliate
}

func (h *Affiliate) Handle(_ context.Context, m chat.Messenger, ev chat.Event) error {
	_, err := m.Send(ev.ChatID, ui.Affiliate(h.botName, ev.UserID))
	return err
}
