package broadcast

import (
	"StreamBot/bot/chat"
	"StreamBot/bot/chat/ui"
	"StreamBot/internal/lib/sl"
	fanout "StreamBot/internal/service/broadcast"
	"context"
	"fmt"
	"log/slog"
)

const (
	WorkflowID               chat.WorkflowID = "broadcast"
	StepAwaitingMessage      chat.StepID     = "awaiting_message"
	StepAwaitingConfirmation chat.StepID     = "awaiting_confirmation"

	keyChatID    = "message_chat_id"
	keyMessageID = "message_id"

	msgCancelled = "Broadcast cancelado."
)

type Commerce interface {
	AllUserIDs(ctx context.Context) ([]int64, error)
}

type Broadcaster interface {
	Start(ctx context.Context, job fanout.Job) <-chan fanout.Progress
}

// Publisher receives every progress update of a running broadcast.
type Publisher interface {
	Publish(p fanout.Progress)
}

// Workflow lets the administrator copy one message to every registered user.
type Workflow struct {
	ctx         context.Context
	commerce    Commerce
	broadcaster Broadcaster
	publisher   Publisher
	log         *slog.Logger
}

// NewWorkflow creates the broadcast workflow. Fan-outs it launches live as
// long as ctx.
func NewWorkflow(ctx context.Context, commerce Commerce, broadcaster Broadcaster, publisher Publisher, log *slog.Logger) *Workflow {
	return &Workflow{
		ctx:         ctx,
		commerce:    commerce,
		broadcaster: broadcaster,
		publisher:   publisher,
		log:         log.With(sl.Module("broadcast")),
	}
}

func (w *Workflow) ID() chat.WorkflowID {
	return WorkflowID
}

func (w *Workflow) AdminOnly() bool {
	return true
}

func (w *Workflow) Triggers() chat.Triggers {
	return chat.Triggers{Commands: []string{"broadcast"}}
}

func (w *Workflow) Transitions() []chat.Transition {
	return []chat.Transition{
		{Step: StepAwaitingMessage, On: chat.AnyMessage, Handle: w.handleMessage},
		{Step: StepAwaitingConfirmation, On: chat.EventCallback, Namespace: chat.NsBroadcast, Handle: w.handleConfirmation},
	}
}

func (w *Workflow) Enter(_ context.Context, m chat.Messenger, _ *chat.Session, ev chat.Event) chat.StepResult {
	return chat.Respond(m, ev.ChatID, ui.BroadcastPrompt(), chat.StepResult{NextStep: StepAwaitingMessage})
}

// handleMessage keeps a reference to the message and previews it back.
func (w *Workflow) handleMessage(_ context.Context, m chat.Messenger, _ *chat.Session, ev chat.Event) chat.StepResult {
	if _, err := m.Send(ev.ChatID, ui.BroadcastPreviewHeader()); err != nil {
		return chat.StepResult{Error: err}
	}
	if err := m.Copy(ev.ChatID, ev.ChatID, ev.MessageID); err != nil {
		return chat.StepResult{Error: fmt.Errorf("preview broadcast message: %w", err)}
	}
	return chat.Respond(m, ev.ChatID, ui.BroadcastConfirm(), chat.StepResult{
		NextStep: StepAwaitingConfirmation,
		UpdateState: map[string]any{
			keyChatID:    ev.ChatID,
			keyMessageID: ev.MessageID,
		},
	})
}

func (w *Workflow) handleConfirmation(ctx context.Context, m chat.Messenger, s *chat.Session, ev chat.Event) chat.StepResult {
	if ev.Payload() != chat.ActionConfirm {
		return chat.StepResult{Error: fmt.Errorf("unexpected broadcast action %q", ev.Data)}
	}
	fromChatID, ok := s.GetInt64(keyChatID)
	if !ok {
		return chat.StepResult{Error: chat.MissingData(keyChatID)}
	}
	messageID, ok := s.GetInt64(keyMessageID)
	if !ok {
		return chat.StepResult{Error: chat.MissingData(keyMessageID)}
	}

	if err := m.Edit(ev.ChatID, ev.MessageID, ui.BroadcastStarting()); err != nil {
		w.log.With(sl.Err(err)).Debug("status edit failed")
	}

	recipients, err := w.commerce.AllUserIDs(ctx)
	if err != nil {
		w.log.With(sl.Err(err)).Warn("recipients not loaded")
		return chat.Respond(m, ev.ChatID, ui.BroadcastUsersFailed(), chat.StepResult{Complete: true})
	}
	if len(recipients) == 0 {
		return chat.Respond(m, ev.ChatID, ui.BroadcastNoUsers(), chat.StepResult{Complete: true})
	}

	progress := w.broadcaster.Start(w.ctx, fanout.Job{
		FromChatID: fromChatID,
		MessageID:  messageID,
		Recipients: recipients,
	})
	go w.report(m, ev.ChatID, ev.MessageID, progress)

	return chat.Respond(m, ev.ChatID, ui.BroadcastLaunched(len(recipients)), chat.StepResult{Complete: true})
}

// report mirrors progress onto the admin's status message.
func (w *Workflow) report(m chat.Messenger, chatID, statusMessageID int64, progress <-chan fanout.Progress) {
	for p := range progress {
		if err := m.Edit(chatID, statusMessageID, ui.BroadcastProgress(p)); err != nil {
			w.log.With(sl.Err(err)).Debug("progress edit failed")
		}
		if w.publisher != nil {
			w.publisher.Publish(p)
		}
	}
}

func (w *Workflow) Cancel(_ context.Context, m chat.Messenger, _ *chat.Session, ev chat.Event) error {
	if ev.Kind == chat.EventCallback {
		if err := m.Edit(ev.ChatID, ev.MessageID, chat.Reply{Text: msgCancelled}); err != nil {
			w.log.With(sl.Err(err)).Debug("cancel edit failed")
		}
	}
	_, err := m.Send(ev.ChatID, ui.Home(msgCancelled))
	return err
}
