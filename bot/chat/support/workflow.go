package support

import (
	"StreamBot/bot/chat"
	"StreamBot/bot/chat/ui"
	"StreamBot/entity"
	"StreamBot/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
)

const (
	WorkflowID                 chat.WorkflowID = "support"
	StepAwaitingOrderSelection chat.StepID     = "awaiting_order_selection"
	StepAwaitingReason         chat.StepID     = "awaiting_reason"

	keyOrderID = "order_id"
)

type Commerce interface {
	RecentOrders(ctx context.Context, telegramID int64) ([]entity.Order, error)
	CreateTicket(ctx context.Context, telegramID int64, orderID, reason string) (*entity.Ticket, error)
}

// Workflow opens a support ticket for one of the user's recent orders.
type Workflow struct {
	commerce Commerce
	log      *slog.Logger
}

func NewWorkflow(commerce Commerce, log *slog.Logger) *Workflow {
	return &Workflow{
		commerce: commerce,
		log:      log.With(sl.Module("support")),
	}
}

func (w *Workflow) ID() chat.WorkflowID {
	return WorkflowID
}

func (w *Workflow) Triggers() chat.Triggers {
	return chat.Triggers{
		Commands: []string{"suporte"},
		Texts:    []string{ui.BtnSupport},
	}
}

func (w *Workflow) Transitions() []chat.Transition {
	return []chat.Transition{
		{Step: StepAwaitingOrderSelection, On: chat.EventCallback, Namespace: chat.NsSupportOrder, Handle: w.handleOrder},
		{Step: StepAwaitingReason, On: chat.EventCallback, Namespace: chat.NsSupportReason, Handle: w.handleReason},
	}
}

// Enter lists recent orders; without any the flow never starts.
func (w *Workflow) Enter(ctx context.Context, m chat.Messenger, _ *chat.Session, ev chat.Event) chat.StepResult {
	orders, err := w.commerce.RecentOrders(ctx, ev.UserID)
	if err != nil {
		w.log.With(sl.Err(err)).Debug("orders not loaded", slog.Int64("user_id", ev.UserID))
		return chat.Respond(m, ev.ChatID, ui.OrdersUnavailable(), chat.StepResult{Complete: true})
	}
	if len(orders) == 0 {
		return chat.Respond(m, ev.ChatID, ui.NoOrders(), chat.StepResult{Complete: true})
	}
	return chat.Respond(m, ev.ChatID, ui.SupportOrders(orders), chat.StepResult{NextStep: StepAwaitingOrderSelection})
}

func (w *Workflow) handleOrder(_ context.Context, m chat.Messenger, _ *chat.Session, ev chat.Event) chat.StepResult {
	orderID := ev.Payload()
	if orderID == "" {
		return chat.StepResult{Error: chat.MissingData(keyOrderID)}
	}
	if err := m.Edit(ev.ChatID, ev.MessageID, ui.SupportReasons()); err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{
		NextStep:    StepAwaitingReason,
		UpdateState: map[string]any{keyOrderID: orderID},
	}
}

func (w *Workflow) handleReason(ctx context.Context, m chat.Messenger, s *chat.Session, ev chat.Event) chat.StepResult {
	orderID := s.GetString(keyOrderID)
	if orderID == "" {
		return chat.StepResult{Error: chat.MissingData(keyOrderID)}
	}
	reason := ev.Payload()
	if !entity.IsTicketReason(reason) {
		return chat.StepResult{Error: fmt.Errorf("unknown ticket reason %q", reason)}
	}

	reply := ui.TicketOpened()
	ticket, err := w.commerce.CreateTicket(ctx, ev.UserID, orderID, reason)
	if err != nil {
		reply = ui.TicketFailed(err)
	} else {
		w.log.Info("ticket opened",
			slog.Int64("user_id", ev.UserID),
			slog.String("order_id", orderID),
			slog.String("ticket_id", ticket.ID.String()),
			slog.String("reason", reason),
		)
	}

	if err = m.Edit(ev.ChatID, ev.MessageID, reply); err != nil {
		return chat.StepResult{Error: err}
	}
	return chat.StepResult{Complete: true}
}

// Cancel replaces the selection message when the inline cancel is used.
func (w *Workflow) Cancel(_ context.Context, m chat.Messenger, _ *chat.Session, ev chat.Event) error {
	if ev.Kind == chat.EventCallback {
		return m.Edit(ev.ChatID, ev.MessageID, ui.SupportCancelled())
	}
	_, err := m.Send(ev.ChatID, ui.Home(chat.MsgCancelled))
	return err
}
