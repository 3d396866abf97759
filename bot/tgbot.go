package bot

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"StreamBot/bot/chat"
	"StreamBot/bot/chat/telegram"
	"StreamBot/internal/lib/sl"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/callbackquery"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/message"
)

// Dispatcher routes normalized updates into the conversations.
type Dispatcher interface {
	Dispatch(ctx context.Context, m chat.Messenger, ev chat.Event) error
}

var commands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Menu principal"},
	{Command: "produtos", Description: "Ver produtos"},
	{Command: "carteira", Description: "Minha carteira e recarga"},
	{Command: "resgatar", Description: "Resgatar gift card"},
	{Command: "suporte", Description: "Abrir ticket de suporte"},
	{Command: "sugerir", Description: "Sugerir um streaming"},
	{Command: chat.CancelCommand, Description: "Cancelar a ação atual"},
}

type TgBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	messenger   *telegram.Messenger
	dispatcher  Dispatcher
	botUsername string
	adminId     int64
}

func NewTgBot(botName, apiKey string, adminId int64, log *slog.Logger) (*TgBot, error) {
	tgBot := &TgBot{
		log:         log.With(sl.Module("tgbot")),
		adminId:     adminId,
		botUsername: botName,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	tgBot.api = api
	tgBot.messenger = telegram.NewMessenger(api)

	return tgBot, nil
}

// Messenger returns the adapter the bot dispatches with.
func (t *TgBot) Messenger() *telegram.Messenger {
	return t.messenger
}

func (t *TgBot) SetDispatcher(d Dispatcher) {
	t.dispatcher = d
}

// Start polls for updates until ctx is done.
func (t *TgBot) Start(ctx context.Context) error {
	if t.dispatcher == nil {
		return fmt.Errorf("dispatcher not set")
	}

	if _, err := t.api.SetMyCommands(commands, nil); err != nil {
		t.log.With(sl.Err(err)).Warn("set bot commands")
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		// If an error is returned by a handler, log it and continue going.
		Error: func(b *tgbotapi.Bot, c *ext.Context, err error) ext.DispatcherAction {
			t.log.With(sl.Err(err)).Error("handling update")
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewCallback(callbackquery.All, func(b *tgbotapi.Bot, c *ext.Context) error {
		return t.dispatch(ctx, telegram.CallbackEvent(c.CallbackQuery))
	}))
	dispatcher.AddHandler(handlers.NewMessage(message.All, func(b *tgbotapi.Bot, c *ext.Context) error {
		if c.EffectiveChat == nil || c.EffectiveChat.Type != "private" {
			return nil
		}
		return t.dispatch(ctx, telegram.MessageEvent(c.EffectiveMessage))
	}))

	err := updater.StartPolling(t.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}

	t.log.Info("bot started", slog.String("username", t.botUsername))

	<-ctx.Done()
	return updater.Stop()
}

func (t *TgBot) dispatch(ctx context.Context, ev chat.Event) error {
	err := t.dispatcher.Dispatch(ctx, t.messenger, ev)
	if err != nil {
		return fmt.Errorf("user %d %s: %w", ev.UserID, ev.Kind, err)
	}
	return nil
}

// SendMessage notifies the administrator.
func (t *TgBot) SendMessage(msg string) {
	if t.adminId == 0 {
		return
	}
	t.plainResponse(t.adminId, msg)
}

func (t *TgBot) plainResponse(chatId int64, text string) {
	sanitized := sanitize(text)
	if sanitized == "" {
		t.log.With(
			slog.Int64("id", chatId),
		).Debug("empty message")
		return
	}

	_, err := t.api.SendMessage(chatId, sanitized, &tgbotapi.SendMessageOpts{
		ParseMode: "MarkdownV2",
	})
	if err == nil {
		return
	}
	// Not through t.log: it may forward back here.
	log.Printf("sending admin message to %d: %v", chatId, err)
	if _, err = t.api.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{}); err != nil {
		log.Printf("sending plain admin message to %d: %v", chatId, err)
	}
}

// sanitize escapes the characters MarkdownV2 reserves.
func sanitize(input string) string {
	const reservedChars = "\\`_*[]{}()~>#+-=|.!"

	var sb strings.Builder
	sb.Grow(len(input))
	for _, char := range input {
		if strings.ContainsRune(reservedChars, char) {
			sb.WriteRune('\\')
		}
		sb.WriteRune(char)
	}
	return sb.String()
}
