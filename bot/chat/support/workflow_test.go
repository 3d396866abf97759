package support_test

import (
	"StreamBot/bot/chat"
	"StreamBot/bot/chat/chattest"
	"StreamBot/bot/chat/support"
	"StreamBot/bot/chat/ui"
	"StreamBot/entity"
	"StreamBot/internal/service/commerce"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ticketCall struct {
	orderID string
	reason  string
}

func setup(t *testing.T, orders []entity.Order, ticketErr error) (*chat.ChatEngine, *chat.SessionStore, *chattest.Messenger, *[]ticketCall) {
	t.Helper()
	calls := &[]ticketCall{}
	c := &chattest.Commerce{
		RecentOrdersFn: func(int64) ([]entity.Order, error) { return orders, nil },
		CreateTicketFn: func(_ int64, orderID, reason string) (*entity.Ticket, error) {
			*calls = append(*calls, ticketCall{orderID, reason})
			if ticketErr != nil {
				return nil, ticketErr
			}
			return &entity.Ticket{ID: "t1", OrderID: entity.ID(orderID), Reason: reason}, nil
		},
	}
	engine, store := chattest.NewEngine()
	engine.RegisterWorkflow(support.NewWorkflow(c, chattest.Logger()))
	engine.SetHomeMenu(ui.Home)
	return engine, store, chattest.NewMessenger(), calls
}

func dispatch(t *testing.T, e *chat.ChatEngine, m chat.Messenger, evs ...chat.Event) {
	t.Helper()
	for _, ev := range evs {
		require.NoError(t, e.Dispatch(context.Background(), m, ev))
	}
}

func session(t *testing.T, store *chat.SessionStore) *chat.Session {
	t.Helper()
	s, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	return s
}

var orders = []entity.Order{{ID: "11", ProductName: "Netflix"}, {ID: "12", ProductName: "Max"}}

func TestTicketOpened(t *testing.T) {
	engine, store, m, calls := setup(t, orders, nil)

	dispatch(t, engine, m, chattest.Text(1, ui.BtnSupport))
	assert.Equal(t, support.StepAwaitingOrderSelection, session(t, store).State.Step)

	dispatch(t, engine, m, chattest.Callback(1, "support_order:12"))
	s := session(t, store)
	assert.Equal(t, support.StepAwaitingReason, s.State.Step)
	assert.Equal(t, "12", s.GetString("order_id"))

	dispatch(t, engine, m, chattest.Callback(1, "support_reason:FORA_DO_AR"))
	assert.Equal(t, []ticketCall{{"12", entity.ReasonServiceDown}}, *calls)
	assert.Contains(t, m.LastEdit().Reply.Text, "A conta problemática já foi bloqueada")
	assert.False(t, session(t, store).Active())
}

func TestNoOrdersNeverStartsFlow(t *testing.T) {
	engine, store, m, _ := setup(t, nil, nil)

	dispatch(t, engine, m, chattest.Command(1, "suporte", ""))

	assert.Contains(t, m.LastText(), "Não encontrei pedidos")
	assert.False(t, session(t, store).Active())
}

func TestDuplicateTicketRenderedVerbatim(t *testing.T) {
	engine, store, m, _ := setup(t, orders, &commerce.Rejection{Status: 409, Detail: "Já existe um ticket para este pedido"})

	dispatch(t, engine, m,
		chattest.Command(1, "suporte", ""),
		chattest.Callback(1, "support_order:11"),
		chattest.Callback(1, "support_reason:OUTRO"),
	)

	assert.Contains(t, m.LastEdit().Reply.Text, "Já existe um ticket para este pedido")
	assert.False(t, session(t, store).Active())
}

func TestReasonWithoutOrderIsSessionError(t *testing.T) {
	engine, store, m, calls := setup(t, orders, nil)
	_, err := store.SetState(context.Background(), 1, chat.State{Flow: support.WorkflowID, Step: support.StepAwaitingReason}, nil)
	require.NoError(t, err)

	dispatch(t, engine, m, chattest.Callback(1, "support_reason:OUTRO"))

	assert.Empty(t, *calls)
	assert.Equal(t, chat.MsgSessionError, m.LastText())
	assert.False(t, session(t, store).Active())
}

func TestInlineCancel(t *testing.T) {
	engine, store, m, calls := setup(t, orders, nil)

	dispatch(t, engine, m,
		chattest.Command(1, "suporte", ""),
		chattest.Callback(1, "support_order:11"),
		chattest.Callback(1, "support:cancel"),
	)

	assert.Empty(t, *calls)
	assert.Equal(t, ui.SupportCancelled().Text, m.LastEdit().Reply.Text)
	assert.False(t, session(t, store).Active())
}
