package telegram

import (
	"strings"

	"StreamBot/bot/chat"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
)

// MessageEvent normalizes an incoming message. "/cmd@bot args" becomes a
// command event; messages without text are media.
func MessageEvent(msg *tgbotapi.Message) chat.Event {
	ev := chat.Event{
		ChatID:    msg.Chat.Id,
		MessageID: msg.MessageId,
	}
	if msg.From != nil {
		ev.UserID = msg.From.Id
		ev.FirstName = msg.From.FirstName
		ev.FullName = fullName(msg.From)
	} else {
		ev.UserID = msg.Chat.Id
	}

	switch {
	case msg.Text == "":
		ev.Kind = chat.EventMedia
		ev.Text = msg.Caption
	case strings.HasPrefix(msg.Text, "/"):
		ev.Kind = chat.EventCommand
		ev.Command, ev.Args = splitCommand(msg.Text)
		ev.Text = msg.Text
	default:
		ev.Kind = chat.EventText
		ev.Text = msg.Text
	}
	return ev
}

// CallbackEvent normalizes a button press.
func CallbackEvent(cq *tgbotapi.CallbackQuery) chat.Event {
	ev := chat.Event{
		Kind:       chat.EventCallback,
		UserID:     cq.From.Id,
		ChatID:     cq.From.Id,
		FirstName:  cq.From.FirstName,
		FullName:   fullName(&cq.From),
		Data:       cq.Data,
		CallbackID: cq.Id,
	}
	if cq.Message != nil {
		ev.ChatID = cq.Message.GetChat().Id
		ev.MessageID = cq.Message.GetMessageId()
	}
	return ev
}

func splitCommand(text string) (command, args string) {
	head, rest, _ := strings.Cut(strings.TrimPrefix(text, "/"), " ")
	head, _, _ = strings.Cut(head, "@")
	return strings.ToLower(head), strings.TrimSpace(rest)
}

func fullName(u *tgbotapi.User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
