// Package chattest provides in-memory fakes for exercising workflows.
package chattest

import (
	"StreamBot/bot/chat"
	"sync"
)

type Sent struct {
	ChatID    int64
	MessageID int64
	Reply     chat.Reply
}

type Edit struct {
	ChatID    int64
	MessageID int64
	Reply     chat.Reply
}

type Copied struct {
	ToChatID   int64
	FromChatID int64
	MessageID  int64
}

type Answer struct {
	CallbackID string
	Text       string
}

// Messenger records everything sent through it.
type Messenger struct {
	mu      sync.Mutex
	nextID  int64
	Sent    []Sent
	Edits   []Edit
	Copies  []Copied
	Answers []Answer

	// SendErr, when set, decides the outcome of each Send call.
	SendErr func(reply chat.Reply) error
	// CopyErr, when set, decides the outcome of each Copy call.
	CopyErr func(toChatID int64) error
}

func NewMessenger() *Messenger {
	return &Messenger{nextID: 100}
}

func (m *Messenger) Send(chatID int64, reply chat.Reply) (int64, error) {
	if m.SendErr != nil {
		if err := m.SendErr(reply); err != nil {
			return 0, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.Sent = append(m.Sent, Sent{ChatID: chatID, MessageID: m.nextID, Reply: reply})
	return m.nextID, nil
}

func (m *Messenger) Edit(chatID, messageID int64, reply chat.Reply) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Edits = append(m.Edits, Edit{ChatID: chatID, MessageID: messageID, Reply: reply})
	return nil
}

func (m *Messenger) Copy(toChatID, fromChatID, messageID int64) error {
	if m.CopyErr != nil {
		if err := m.CopyErr(toChatID); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Copies = append(m.Copies, Copied{ToChatID: toChatID, FromChatID: fromChatID, MessageID: messageID})
	return nil
}

func (m *Messenger) AnswerCallback(callbackID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Answers = append(m.Answers, Answer{CallbackID: callbackID, Text: text})
	return nil
}

// LastText returns the text of the most recent sent or edited message.
func (m *Messenger) LastText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return ""
	}
	return m.Sent[len(m.Sent)-1].Reply.Text
}

// LastReply returns the most recent sent message.
func (m *Messenger) LastReply() chat.Reply {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return chat.Reply{}
	}
	return m.Sent[len(m.Sent)-1].Reply
}

// LastEdit returns the most recent edit.
func (m *Messenger) LastEdit() Edit {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Edits) == 0 {
		return Edit{}
	}
	return m.Edits[len(m.Edits)-1]
}

// Texts returns every sent text in order.
func (m *Messenger) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Sent))
	for i, s := range m.Sent {
		out[i] = s.Reply.Text
	}
	return out
}

// CopyCount returns the number of successful copies.
func (m *Messenger) CopyCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Copies)
}
