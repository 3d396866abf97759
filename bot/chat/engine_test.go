package chat_test

import (
	"StreamBot/bot/chat"
	"StreamBot/bot/chat/chattest"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoStep collects two answers and needs the first one to accept the second.
type twoStep struct {
	id      chat.WorkflowID
	command string
	text    string
	key     string
	done    []string
}

const (
	stepFirst  chat.StepID = "first"
	stepSecond chat.StepID = "second"
)

func (w *twoStep) ID() chat.WorkflowID { return w.id }

func (w *twoStep) Triggers() chat.Triggers {
	return chat.Triggers{Commands: []string{w.command}, Texts: []string{w.text}}
}

func (w *twoStep) Enter(_ context.Context, m chat.Messenger, _ *chat.Session, ev chat.Event) chat.StepResult {
	_, _ = m.Send(ev.ChatID, chat.Reply{Text: "first?"})
	return chat.StepResult{NextStep: stepFirst}
}

func (w *twoStep) Transitions() []chat.Transition {
	return []chat.Transition{
		{Step: stepFirst, On: chat.EventText, Handle: w.first},
		{Step: stepSecond, On: chat.EventText, Handle: w.second},
		{Step: stepSecond, On: chat.EventCallback, Namespace: string(w.id), Handle: w.second},
	}
}

func (w *twoStep) first(_ context.Context, _ chat.Messenger, _ *chat.Session, ev chat.Event) chat.StepResult {
	return chat.StepResult{NextStep: stepSecond, UpdateState: map[string]any{w.key: ev.Text}}
}

func (w *twoStep) second(_ context.Context, _ chat.Messenger, s *chat.Session, ev chat.Event) chat.StepResult {
	v := s.GetString(w.key)
	if v == "" {
		return chat.StepResult{Error: chat.MissingData(w.key)}
	}
	w.done = append(w.done, v+"+"+ev.Text)
	return chat.StepResult{Complete: true}
}

type adminFlow struct{ twoStep }

func (a *adminFlow) AdminOnly() bool { return true }

type catalogHandler struct{ calls int }

func (h *catalogHandler) Match(ev chat.Event) bool {
	return ev.Command == "produtos" || ev.Text == "🛍️ Ver Produtos" || ev.Namespace() == "catalog"
}

func (h *catalogHandler) Handle(_ context.Context, m chat.Messenger, ev chat.Event) error {
	h.calls++
	_, err := m.Send(ev.ChatID, chat.Reply{Text: "catalog"})
	return err
}

func newTestEngine(t *testing.T) (*chat.ChatEngine, *chat.SessionStore, *twoStep, *twoStep, *catalogHandler) {
	t.Helper()
	engine, store := chattest.NewEngine()
	alpha := &twoStep{id: "alpha", command: "alpha", text: "Alpha", key: "a"}
	beta := &twoStep{id: "beta", command: "beta", text: "Beta", key: "b"}
	catalog := &catalogHandler{}
	engine.RegisterWorkflow(alpha)
	engine.RegisterWorkflow(beta)
	engine.RegisterHandler(catalog)
	engine.SetHomeMenu(func(text string) chat.Reply {
		return chat.Reply{Text: text, Keyboard: chat.Keyboard{Menu: [][]chat.MenuButton{{{Text: "Alpha"}}}}}
	})
	return engine, store, alpha, beta, catalog
}

func dispatch(t *testing.T, e *chat.ChatEngine, m chat.Messenger, evs ...chat.Event) {
	t.Helper()
	for _, ev := range evs {
		require.NoError(t, e.Dispatch(context.Background(), m, ev))
	}
}

func TestWorkflowRunsToCompletion(t *testing.T) {
	engine, store, alpha, _, _ := newTestEngine(t)
	m := chattest.NewMessenger()

	dispatch(t, engine, m, chattest.Command(1, "alpha", ""), chattest.Text(1, "x"))
	s, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, chat.State{Flow: "alpha", Step: stepSecond}, s.State)
	assert.Equal(t, "x", s.GetString("a"))

	dispatch(t, engine, m, chattest.Text(1, "y"))
	assert.Equal(t, []string{"x+y"}, alpha.done)

	s, err = store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, s.Active())
	assert.Empty(t, s.Data)
}

func TestCancelFromEveryState(t *testing.T) {
	cancels := []chat.Event{
		chattest.Command(1, chat.CancelCommand, ""),
		chattest.Text(1, "Cancelar"),
		chattest.Text(1, chat.CancelButton),
		chattest.Callback(1, "alpha:cancel"),
	}

	for _, cancel := range cancels {
		for _, prefix := range [][]chat.Event{
			{chattest.Command(1, "alpha", "")},
			{chattest.Command(1, "alpha", ""), chattest.Text(1, "x")},
		} {
			engine, store, alpha, _, _ := newTestEngine(t)
			m := chattest.NewMessenger()

			dispatch(t, engine, m, prefix...)
			dispatch(t, engine, m, cancel)

			s, err := store.Get(context.Background(), 1)
			require.NoError(t, err)
			assert.False(t, s.Active())
			assert.Empty(t, s.Data)
			assert.Equal(t, chat.MsgCancelled, m.LastText())
			assert.NotEmpty(t, m.LastReply().Keyboard.Menu)
			assert.Empty(t, alpha.done)
		}
	}
}

func TestCancelWithoutFlow(t *testing.T) {
	engine, _, _, _, _ := newTestEngine(t)
	m := chattest.NewMessenger()

	dispatch(t, engine, m, chattest.Command(1, chat.CancelCommand, ""))
	assert.Equal(t, chat.MsgNothingToCancel, m.LastText())
}

func TestStartingFlowDiscardsPreviousData(t *testing.T) {
	engine, store, _, beta, _ := newTestEngine(t)
	m := chattest.NewMessenger()

	dispatch(t, engine, m,
		chattest.Command(1, "alpha", ""),
		chattest.Text(1, "x"),
		chattest.Text(1, "Beta"),
	)

	s, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, chat.State{Flow: "beta", Step: stepFirst}, s.State)
	assert.NotContains(t, s.Data, "a")

	dispatch(t, engine, m, chattest.Text(1, "p"), chattest.Text(1, "q"))
	assert.Equal(t, []string{"p+q"}, beta.done)
}

func TestMissingScratchDataEndsFlow(t *testing.T) {
	engine, store, alpha, _, _ := newTestEngine(t)
	m := chattest.NewMessenger()

	_, err := store.SetState(context.Background(), 1, chat.State{Flow: "alpha", Step: stepSecond}, nil)
	require.NoError(t, err)

	dispatch(t, engine, m, chattest.Text(1, "y"))

	assert.Equal(t, chat.MsgSessionError, m.LastText())
	assert.Empty(t, alpha.done)
	s, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, s.Active())
}

func TestFreeTextWithoutFlowFallsThrough(t *testing.T) {
	engine, store, alpha, _, _ := newTestEngine(t)
	m := chattest.NewMessenger()

	dispatch(t, engine, m, chattest.Text(1, "hello"))

	assert.Equal(t, chat.MsgHelp, m.LastText())
	assert.Empty(t, alpha.done)
	s, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, s.Active())
}

func TestNavigationAbandonsFlow(t *testing.T) {
	engine, store, _, _, catalog := newTestEngine(t)
	m := chattest.NewMessenger()

	dispatch(t, engine, m, chattest.Command(1, "alpha", ""), chattest.Text(1, "🛍️ Ver Produtos"))

	assert.Equal(t, 1, catalog.calls)
	s, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, s.Active())
}

func TestCallbackHandlerKeepsFlow(t *testing.T) {
	engine, store, _, _, catalog := newTestEngine(t)
	m := chattest.NewMessenger()

	dispatch(t, engine, m, chattest.Command(1, "alpha", ""), chattest.Callback(1, "catalog:page:2"))

	assert.Equal(t, 1, catalog.calls)
	s, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, chat.State{Flow: "alpha", Step: stepFirst}, s.State)
}

func TestStaleCallbackIsAnsweredAsExpired(t *testing.T) {
	engine, _, alpha, _, _ := newTestEngine(t)
	m := chattest.NewMessenger()

	dispatch(t, engine, m, chattest.Callback(1, "alpha:ok"))

	require.Len(t, m.Answers, 1)
	assert.Equal(t, chat.MsgExpired, m.Answers[0].Text)
	assert.Empty(t, alpha.done)
}

func TestTextInCallbackOnlyStepReprompts(t *testing.T) {
	engine, _, _, _, _ := newTestEngine(t)
	m := chattest.NewMessenger()
	engine.RegisterWorkflow(&buttonsOnly{})

	dispatch(t, engine, m, chattest.Command(1, "buttons", ""), chattest.Text(1, "typed"))
	assert.Equal(t, chat.MsgUseButtons, m.LastText())
}

type buttonsOnly struct{}

func (buttonsOnly) ID() chat.WorkflowID { return "buttons" }
func (buttonsOnly) Triggers() chat.Triggers {
	return chat.Triggers{Commands: []string{"buttons"}}
}
func (buttonsOnly) Enter(context.Context, chat.Messenger, *chat.Session, chat.Event) chat.StepResult {
	return chat.StepResult{NextStep: "pick"}
}
func (buttonsOnly) Transitions() []chat.Transition {
	return []chat.Transition{{Step: "pick", On: chat.EventCallback, Namespace: "pick",
		Handle: func(context.Context, chat.Messenger, *chat.Session, chat.Event) chat.StepResult {
			return chat.StepResult{Complete: true}
		}}}
}

func TestAdminOnlyWorkflow(t *testing.T) {
	engine, store, _, _, _ := newTestEngine(t)
	engine.RegisterWorkflow(&adminFlow{twoStep{id: "admin", command: "broadcast", key: "m"}})
	m := chattest.NewMessenger()

	dispatch(t, engine, m, chattest.Command(1, "broadcast", ""))
	s, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, s.Active())

	dispatch(t, engine, m, chattest.Command(chattest.AdminID, "broadcast", ""))
	s, err = store.Get(context.Background(), chattest.AdminID)
	require.NoError(t, err)
	assert.Equal(t, chat.WorkflowID("admin"), s.State.Flow)
}

func TestConcurrentUsers(t *testing.T) {
	engine, store, _, _, _ := newTestEngine(t)
	m := chattest.NewMessenger()

	var wg sync.WaitGroup
	for id := int64(1); id <= 20; id++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = engine.Dispatch(context.Background(), m, chattest.Command(id, "alpha", ""))
			_ = engine.Dispatch(context.Background(), m, chattest.Text(id, "v"))
		}(id)
	}
	wg.Wait()

	for id := int64(1); id <= 20; id++ {
		s, err := store.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "v", s.GetString("a"))
	}
}

func TestDescribeEnumeratesTransitions(t *testing.T) {
	engine, _, _, _, _ := newTestEngine(t)
	assert.Contains(t, engine.Describe(), "alpha/second on callback [alpha]")
}
