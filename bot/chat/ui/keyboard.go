package ui

import (
	"StreamBot/bot/chat"
)

// Main menu button texts double as workflow triggers.
const (
	BtnProducts  = "🛍️ Ver Produtos"
	BtnWallet    = "💳 Carteira"
	BtnRedeem    = "🎁 Resgatar Código"
	BtnSupport   = "🆘 Suporte"
	BtnSuggest   = "💡 Sugerir"
	BtnAffiliate = "👥 Indique e Ganhe"
)

// MainMenu returns the persistent reply keyboard.
func MainMenu() [][]chat.MenuButton {
	return [][]chat.MenuButton{
		{{Text: BtnProducts}, {Text: BtnWallet}},
		{{Text: BtnRedeem}, {Text: BtnSupport}},
		{{Text: BtnSuggest}, {Text: BtnAffiliate}},
	}
}

// Home builds a reply that restores the main menu.
func Home(text string) chat.Reply {
	return chat.Reply{
		Text:     text,
		Keyboard: chat.Keyboard{Menu: MainMenu()},
	}
}

// CancelKeyboard replaces the main menu while a flow waits for typed input.
func CancelKeyboard() chat.Keyboard {
	return chat.Keyboard{Menu: [][]chat.MenuButton{{{Text: chat.CancelButton}}}}
}

// ConfirmCancelRow creates a confirm/cancel pair for a callback namespace.
func ConfirmCancelRow(namespace, confirmText, cancelText string) []chat.InlineButton {
	return []chat.InlineButton{
		{Text: confirmText, Data: chat.CallbackData(namespace, chat.ActionConfirm)},
		{Text: cancelText, Data: chat.CallbackData(namespace, chat.CancelPayload)},
	}
}

// SingleButton creates an inline keyboard with a single button.
func SingleButton(text, data string) chat.Keyboard {
	return chat.Keyboard{Inline: [][]chat.InlineButton{{{Text: text, Data: data}}}}
}

// SelectableItem represents an item that can be selected from a list.
type SelectableItem struct {
	ID   string
	Text string
}

// SelectionRows gives every item its own row with "<namespace>:<id>" data.
func SelectionRows(namespace string, items []SelectableItem) [][]chat.InlineButton {
	rows := make([][]chat.InlineButton, len(items))
	for i, item := range items {
		rows[i] = []chat.InlineButton{
			{Text: item.Text, Data: chat.CallbackData(namespace, item.ID)},
		}
	}
	return rows
}
