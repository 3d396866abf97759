package wallet

import (
	"StreamBot/bot/chat"
	"StreamBot/bot/chat/ui"
	"StreamBot/entity"
	"StreamBot/internal/lib/sl"
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

const (
	WorkflowID         chat.WorkflowID = "wallet"
	StepAwaitingAmount chat.StepID     = "awaiting_amount"
)

type Commerce interface {
	RegisterUser(ctx context.Context, telegramID int64, fullName string, referrerID *int64) (*entity.User, error)
	CreateRecharge(ctx context.Context, telegramID int64, fullName string, amount decimal.Decimal) (*entity.Pix, error)
}

// Workflow tops up the wallet with a PIX charge.
type Workflow struct {
	commerce Commerce
	log      *slog.Logger
}

func NewWorkflow(commerce Commerce, log *slog.Logger) *Workflow {
	return &Workflow{
		commerce: commerce,
		log:      log.With(sl.Module("wallet")),
	}
}

func (w *Workflow) ID() chat.WorkflowID {
	return WorkflowID
}

func (w *Workflow) Triggers() chat.Triggers {
	return chat.Triggers{
		Commands: []string{"carteira"},
		Texts:    []string{ui.BtnWallet},
	}
}

func (w *Workflow) Transitions() []chat.Transition {
	return []chat.Transition{
		{Step: StepAwaitingAmount, On: chat.EventText, Handle: w.handleAmount},
	}
}

// Enter shows the current balance and asks for the amount.
func (w *Workflow) Enter(ctx context.Context, m chat.Messenger, _ *chat.Session, ev chat.Event) chat.StepResult {
	user, err := w.commerce.RegisterUser(ctx, ev.UserID, ev.FullName, nil)
	if err != nil {
		return chat.Respond(m, ev.ChatID, ui.Home(ui.Failure("Não consegui consultar o seu saldo.", err)), chat.StepResult{Complete: true})
	}
	return chat.Respond(m, ev.ChatID, ui.WalletPrompt(user.Balance), chat.StepResult{NextStep: StepAwaitingAmount})
}

func (w *Workflow) handleAmount(ctx context.Context, m chat.Messenger, _ *chat.Session, ev chat.Event) chat.StepResult {
	amount, err := chat.ParseAmount(ev.Text)
	if err != nil {
		return chat.Respond(m, ev.ChatID, ui.InvalidAmount(), chat.StepResult{})
	}

	if _, err = m.Send(ev.ChatID, ui.GeneratingPix()); err != nil {
		w.log.With(sl.Err(err)).Debug("progress message not sent", slog.Int64("user_id", ev.UserID))
	}

	pix, err := w.commerce.CreateRecharge(ctx, ev.UserID, ev.FullName, amount)
	if err != nil {
		w.log.With(sl.Err(err)).Debug("recharge not created", slog.Int64("user_id", ev.UserID))
		return chat.Respond(m, ev.ChatID, ui.RechargeFailed(err), chat.StepResult{Complete: true})
	}

	reply := ui.PixPayment(amount, *pix)
	if reply.Photo == nil && pix.QRCode != "" {
		w.log.Warn("qr code not decodable", slog.Int64("user_id", ev.UserID))
	}
	if _, err = m.Send(ev.ChatID, reply); err != nil && reply.Photo != nil {
		w.log.With(sl.Err(err)).Warn("qr code photo rejected", slog.Int64("user_id", ev.UserID))
		reply.Photo = nil
		_, err = m.Send(ev.ChatID, reply)
	}
	if err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{Complete: true}
}
