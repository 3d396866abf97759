package telegram

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"StreamBot/bot/chat"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
)

const (
	parseMode = "HTML"

	// Telegram rejects photo captions longer than this.
	maxCaption = 1024

	photoName = "pix.png"
)

// TelegramAPI defines the Telegram bot methods needed by the messenger.
// This avoids importing the concrete bot type and prevents circular imports.
type TelegramAPI interface {
	SendMessage(chatId int64, text string, opts *tgbotapi.SendMessageOpts) (*tgbotapi.Message, error)
	SendPhoto(chatId int64, photo tgbotapi.InputFileOrString, opts *tgbotapi.SendPhotoOpts) (*tgbotapi.Message, error)
	EditMessageText(text string, opts *tgbotapi.EditMessageTextOpts) (*tgbotapi.Message, bool, error)
	CopyMessage(chatId int64, fromChatId int64, messageId int64, opts *tgbotapi.CopyMessageOpts) (*tgbotapi.MessageId, error)
	AnswerCallbackQuery(callbackQueryId string, opts *tgbotapi.AnswerCallbackQueryOpts) (bool, error)
}

// Messenger implements chat.Messenger for Telegram using native keyboards.
type Messenger struct {
	api TelegramAPI
}

// NewMessenger creates a new Telegram Messenger.
func NewMessenger(api TelegramAPI) *Messenger {
	return &Messenger{api: api}
}

func (m *Messenger) Send(chatID int64, reply chat.Reply) (int64, error) {
	markup := replyMarkup(reply.Keyboard)

	if len(reply.Photo) > 0 {
		return m.sendPhoto(chatID, reply, markup)
	}

	msg, err := m.api.SendMessage(chatID, reply.Text, &tgbotapi.SendMessageOpts{
		ParseMode:   parseMode,
		ReplyMarkup: markup,
	})
	if err != nil {
		return 0, err
	}
	return msg.MessageId, nil
}

// sendPhoto puts the text into the caption when it fits, otherwise follows
// the photo with a separate text message carrying the keyboard.
func (m *Messenger) sendPhoto(chatID int64, reply chat.Reply, markup tgbotapi.ReplyMarkup) (int64, error) {
	photo := tgbotapi.InputFileByReader(photoName, bytes.NewReader(reply.Photo))

	if utf8.RuneCountInString(reply.Text) <= maxCaption {
		msg, err := m.api.SendPhoto(chatID, photo, &tgbotapi.SendPhotoOpts{
			Caption:     reply.Text,
			ParseMode:   parseMode,
			ReplyMarkup: markup,
		})
		if err != nil {
			return 0, err
		}
		return msg.MessageId, nil
	}

	if _, err := m.api.SendPhoto(chatID, photo, nil); err != nil {
		return 0, err
	}
	return m.Send(chatID, chat.Reply{Text: reply.Text, Keyboard: reply.Keyboard})
}

func (m *Messenger) Edit(chatID, messageID int64, reply chat.Reply) error {
	opts := &tgbotapi.EditMessageTextOpts{
		ChatId:    chatID,
		MessageId: messageID,
		ParseMode: parseMode,
	}
	if len(reply.Keyboard.Inline) > 0 {
		opts.ReplyMarkup = inlineMarkup(reply.Keyboard.Inline)
	}
	_, _, err := m.api.EditMessageText(reply.Text, opts)
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return nil
	}
	return err
}

func (m *Messenger) Copy(toChatID, fromChatID, messageID int64) error {
	_, err := m.api.CopyMessage(toChatID, fromChatID, messageID, nil)
	return err
}

func (m *Messenger) AnswerCallback(callbackID, text string) error {
	var opts *tgbotapi.AnswerCallbackQueryOpts
	if text != "" {
		opts = &tgbotapi.AnswerCallbackQueryOpts{Text: text}
	}
	_, err := m.api.AnswerCallbackQuery(callbackID, opts)
	return err
}

func replyMarkup(k chat.Keyboard) tgbotapi.ReplyMarkup {
	switch {
	case len(k.Inline) > 0:
		return inlineMarkup(k.Inline)
	case len(k.Menu) > 0:
		keyboard := make([][]tgbotapi.KeyboardButton, len(k.Menu))
		for i, row := range k.Menu {
			keyboard[i] = make([]tgbotapi.KeyboardButton, len(row))
			for j, btn := range row {
				keyboard[i][j] = tgbotapi.KeyboardButton{Text: btn.Text}
			}
		}
		return tgbotapi.ReplyKeyboardMarkup{
			Keyboard:       keyboard,
			ResizeKeyboard: true,
		}
	case k.Remove:
		return tgbotapi.ReplyKeyboardRemove{
			RemoveKeyboard: true,
		}
	}
	return nil
}

func inlineMarkup(rows [][]chat.InlineButton) tgbotapi.InlineKeyboardMarkup {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, len(rows))
	for i, row := range rows {
		keyboard[i] = make([]tgbotapi.InlineKeyboardButton, len(row))
		for j, btn := range row {
			keyboard[i][j] = tgbotapi.InlineKeyboardButton{
				Text:         btn.Text,
				CallbackData: btn.Data,
				Url:          btn.URL,
			}
		}
	}
	return tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: keyboard,
	}
}
