package suggestion

import (
	"StreamBot/bot/chat"
	"StreamBot/bot/chat/ui"
	"StreamBot/entity"
	"StreamBot/internal/lib/sl"
	"context"
	"log/slog"
	"strings"
)

const (
	WorkflowID             chat.WorkflowID = "suggestion"
	StepAwaitingSuggestion chat.StepID     = "awaiting_suggestion"
)

type Commerce interface {
	CreateSuggestion(ctx context.Context, telegramID int64, name string) (*entity.Suggestion, error)
}

type Workflow struct {
	commerce Commerce
	log      *slog.Logger
}

func NewWorkflow(commerce Commerce, log *slog.Logger) *Workflow {
	return &Workflow{
		commerce: commerce,
		log:      log.With(sl.Module("suggestion")),
	}
}

func (w *Workflow) ID() chat.WorkflowID {
	return WorkflowID
}

func (w *Workflow) Triggers() chat.Triggers {
	return chat.Triggers{
		Commands: []string{"sugerir"},
		Texts:    []string{ui.BtnSuggest},
	}
}

func (w *Workflow) Transitions() []chat.Transition {
	return []chat.Transition{
		{Step: StepAwaitingSuggestion, On: chat.EventText, Handle: w.handleSuggestion},
	}
}

func (w *Workflow) Enter(_ context.Context, m chat.Messenger, _ *chat.Session, ev chat.Event) chat.StepResult {
	return chat.Respond(m, ev.ChatID, ui.SuggestionPrompt(), chat.StepResult{NextStep: StepAwaitingSuggestion})
}

func (w *Workflow) handleSuggestion(ctx context.Context, m chat.Messenger, _ *chat.Session, ev chat.Event) chat.StepResult {
	name := strings.TrimSpace(ev.Text)
	if name == "" {
		return chat.Respond(m, ev.ChatID, ui.SuggestionPrompt(), chat.StepResult{})
	}

	if _, err := m.Send(ev.ChatID, ui.SuggestionSending(name)); err != nil {
		w.log.With(sl.Err(err)).Debug("progress message not sent", slog.Int64("user_id", ev.UserID))
	}

	if _, err := w.commerce.CreateSuggestion(ctx, ev.UserID, name); err != nil {
		return chat.Respond(m, ev.ChatID, ui.SuggestionFailed(err), chat.StepResult{Complete: true})
	}
	return chat.Respond(m, ev.ChatID, ui.SuggestionThanks(name), chat.StepResult{Complete: true})
}
