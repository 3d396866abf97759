package giftcard

import (
	"StreamBot/bot/chat"
	"StreamBot/bot/chat/ui"
	"StreamBot/entity"
	"StreamBot/internal/lib/sl"
	"context"
	"log/slog"
)

const (
	WorkflowID       chat.WorkflowID = "giftcard"
	StepAwaitingCode chat.StepID     = "awaiting_code"
)

type Commerce interface {
	RedeemGiftCard(ctx context.Context, telegramID int64, code string) (*entity.Redemption, error)
}

type Workflow struct {
	commerce Commerce
	log      *slog.Logger
}

func NewWorkflow(commerce Commerce, log *slog.Logger) *Workflow {
	return &Workflow{
		commerce: commerce,
		log:      log.With(sl.Module("giftcard")),
	}
}

func (w *Workflow) ID() chat.WorkflowID {
	return WorkflowID
}

func (w *Workflow) Triggers() chat.Triggers {
	return chat.Triggers{
		Commands: []string{"resgatar"},
		Texts:    []string{ui.BtnRedeem},
	}
}

func (w *Workflow) Transitions() []chat.Transition {
	return []chat.Transition{
		{Step: StepAwaitingCode, On: chat.EventText, Handle: w.handleCode},
	}
}

func (w *Workflow) Enter(_ context.Context, m chat.Messenger, _ *chat.Session, ev chat.Event) chat.StepResult {
	return chat.Respond(m, ev.ChatID, ui.GiftCardPrompt(), chat.StepResult{NextStep: StepAwaitingCode})
}

// handleCode submits the code once; the flow ends whatever the outcome.
func (w *Workflow) handleCode(ctx context.Context, m chat.Messenger, _ *chat.Session, ev chat.Event) chat.StepResult {
	code := chat.NormalizeGiftCode(ev.Text)
	if code == "" {
		return chat.Respond(m, ev.ChatID, ui.GiftCardPrompt(), chat.StepResult{})
	}

	if _, err := m.Send(ev.ChatID, ui.GiftCardChecking(code)); err != nil {
		w.log.With(sl.Err(err)).Debug("progress message not sent", slog.Int64("user_id", ev.UserID))
	}

	redemption, err := w.commerce.RedeemGiftCard(ctx, ev.UserID, code)
	if err != nil {
		return chat.Respond(m, ev.ChatID, ui.GiftCardFailed(err), chat.StepResult{Complete: true})
	}
	return chat.Respond(m, ev.ChatID, ui.GiftCardRedeemed(*redemption), chat.StepResult{Complete: true})
}
