package chat

// Messenger is the platform UI adapter interface. Chat and message ids are
// the transport's numeric identifiers.
type Messenger interface {
	// Send delivers a reply and returns the id of the sent message.
	Send(chatID int64, reply Reply) (int64, error)

	// Edit replaces the text and inline keyboard of a sent message.
	Edit(chatID, messageID int64, reply Reply) error

	// Copy re-delivers an existing message to another chat by reference.
	Copy(toChatID, fromChatID, messageID int64) error

	// AnswerCallback acknowledges a button press, optionally with a toast.
	AnswerCallback(callbackID, text string) error
}

// Reply is a renderable message: HTML text, an optional keyboard and an optional photo.
type Reply struct {
	Text     string
	Keyboard Keyboard
	Photo    []byte
}

// Keyboard carries at most one of an inline grid, a reply menu or a removal request.
type Keyboard struct {
	Inline [][]InlineButton
	Menu   [][]MenuButton
	Remove bool
}

func (k Keyboard) Empty() bool {
	return len(k.Inline) == 0 && len(k.Menu) == 0 && !k.Remove
}

// MenuButton represents a button in a reply/menu keyboard.
type MenuButton struct {
	Text string
}

// InlineButton represents an inline button with callback data or a URL.
type InlineButton struct {
	Text string
	Data string
	URL  string
}

// Respond sends r and returns next, or an error result if delivery failed.
func Respond(m Messenger, chatID int64, r Reply, next StepResult) StepResult {
	if _, err := m.Send(chatID, r); err != nil {
		return StepResult{Error: err}
	}
	return next
}
