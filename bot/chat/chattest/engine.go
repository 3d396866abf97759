package chattest

import (
	"StreamBot/bot/chat"
	"io"
	"log/slog"
	"time"
)

const AdminID int64 = 999

// NewEngine returns an engine over an in-memory store with a silent logger.
func NewEngine() (*chat.ChatEngine, *chat.SessionStore) {
	store := chat.NewSessionStore(chat.NewMemoryStorage(time.Hour))
	return chat.NewChatEngine(store, AdminID, Logger()), store
}

func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Command(userID int64, command, args string) chat.Event {
	return chat.Event{Kind: chat.EventCommand, UserID: userID, ChatID: userID, Command: command, Args: args, FirstName: "Ana", FullName: "Ana Souza"}
}

func Text(userID int64, text string) chat.Event {
	return chat.Event{Kind: chat.EventText, UserID: userID, ChatID: userID, Text: text, FirstName: "Ana", FullName: "Ana Souza"}
}

func Media(userID, messageID int64) chat.Event {
	return chat.Event{Kind: chat.EventMedia, UserID: userID, ChatID: userID, MessageID: messageID, FirstName: "Ana", FullName: "Ana Souza"}
}

func Callback(userID int64, data string) chat.Event {
	return chat.Event{Kind: chat.EventCallback, UserID: userID, ChatID: userID, MessageID: 7, Data: data, CallbackID: "cb-" + data, FirstName: "Ana", FullName: "Ana Souza"}
}
