package chat

import (
	"StreamBot/internal/lib/sl"
	"StreamBot/internal/metrics"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// ChatEngine is the workflow orchestrator. Events of one user are processed
// one at a time; different users proceed concurrently.
type ChatEngine struct {
	workflows map[WorkflowID]Workflow
	order     []Workflow
	handlers  []Handler
	store     *SessionStore
	locks     *userLocks
	adminID   int64
	home      func(text string) Reply
	log       *slog.Logger
}

// NewChatEngine creates a new chat engine.
func NewChatEngine(store *SessionStore, adminID int64, log *slog.Logger) *ChatEngine {
	return &ChatEngine{
		workflows: make(map[WorkflowID]Workflow),
		store:     store,
		locks:     newUserLocks(),
		adminID:   adminID,
		home:      func(text string) Reply { return Reply{Text: text} },
		log:       log.With(sl.Module("chat.engine")),
	}
}

// SetHomeMenu sets the builder of the default presentation shown after
// cancellation and errors.
func (e *ChatEngine) SetHomeMenu(home func(text string) Reply) {
	e.home = home
}

// RegisterWorkflow adds a workflow to the engine.
func (e *ChatEngine) RegisterWorkflow(w Workflow) {
	e.workflows[w.ID()] = w
	e.order = append(e.order, w)
	e.log.Info("registered workflow", slog.String("workflow_id", string(w.ID())))
}

// RegisterHandler adds a stateless handler. Handlers are consulted in order.
func (e *ChatEngine) RegisterHandler(h Handler) {
	e.handlers = append(e.handlers, h)
}

func (e *ChatEngine) IsAdmin(userID int64) bool {
	return e.adminID != 0 && userID == e.adminID
}

// Session returns a snapshot of the user's session.
func (e *ChatEngine) Session(ctx context.Context, userID int64) (*Session, error) {
	unlock := e.locks.lock(userID)
	defer unlock()
	return e.store.Get(ctx, userID)
}

// Reset clears the user's session from outside a conversation.
func (e *ChatEngine) Reset(ctx context.Context, userID int64) error {
	unlock := e.locks.lock(userID)
	defer unlock()
	return e.store.Clear(ctx, userID)
}

// Dispatch routes one inbound event: cancellation first, then workflow entry
// triggers, navigation handlers, the active workflow's transitions and
// finally the stateless fallbacks.
func (e *ChatEngine) Dispatch(ctx context.Context, m Messenger, ev Event) error {
	unlock := e.locks.lock(ev.UserID)
	defer unlock()

	toast, err := e.dispatch(ctx, m, ev)
	if ev.Kind == EventCallback && ev.CallbackID != "" {
		if aErr := m.AnswerCallback(ev.CallbackID, toast); aErr != nil {
			e.log.With(sl.Err(aErr)).Debug("answer callback")
		}
	}
	return err
}

func (e *ChatEngine) dispatch(ctx context.Context, m Messenger, ev Event) (string, error) {
	session, err := e.store.Get(ctx, ev.UserID)
	if err != nil {
		e.reply(m, ev.ChatID, e.home(MsgGenericError))
		return "", err
	}

	if isCancel(ev) {
		return "", e.cancel(ctx, m, session, ev)
	}

	if w, ok := e.trigger(ev); ok {
		return "", e.start(ctx, m, w, ev)
	}

	if ev.Kind&(EventCommand|EventText) != 0 {
		if h, ok := e.handler(ev); ok {
			if session.Active() {
				if err = e.store.Clear(ctx, ev.UserID); err != nil {
					return "", err
				}
				e.log.Debug("flow abandoned",
					slog.Int64("user_id", ev.UserID),
					slog.String("state", session.State.String()),
				)
			}
			return "", h.Handle(ctx, m, ev)
		}
	}

	if session.Active() {
		w, ok := e.workflows[session.State.Flow]
		if !ok {
			e.log.Warn("unknown workflow in session",
				slog.Int64("user_id", ev.UserID),
				slog.String("state", session.State.String()),
			)
			return "", e.fail(ctx, m, session, ev, MissingData("workflow"))
		}
		if t, ok := match(w, session.State.Step, ev); ok {
			return "", e.processResult(ctx, m, w, session, ev, t.Handle(ctx, m, session, ev))
		}
		if ev.Kind&AnyMessage != 0 {
			e.reply(m, ev.ChatID, Reply{Text: MsgUseButtons})
			return "", nil
		}
	}

	if ev.Kind == EventCallback {
		if h, ok := e.handler(ev); ok {
			return "", h.Handle(ctx, m, ev)
		}
		return MsgExpired, nil
	}

	e.reply(m, ev.ChatID, e.home(MsgHelp))
	return "", nil
}

// start clears whatever the user was doing and enters w.
func (e *ChatEngine) start(ctx context.Context, m Messenger, w Workflow, ev Event) error {
	if err := e.store.Clear(ctx, ev.UserID); err != nil {
		e.reply(m, ev.ChatID, e.home(MsgGenericError))
		return err
	}

	e.log.Debug("starting workflow",
		slog.Int64("user_id", ev.UserID),
		slog.String("workflow_id", string(w.ID())),
	)

	session := NewSession(ev.UserID)
	session.State = State{Flow: w.ID()}
	return e.processResult(ctx, m, w, session, ev, w.Enter(ctx, m, session, ev))
}

func (e *ChatEngine) cancel(ctx context.Context, m Messenger, session *Session, ev Event) error {
	if !session.Active() {
		e.reply(m, ev.ChatID, e.home(MsgNothingToCancel))
		return nil
	}

	if err := e.store.Clear(ctx, ev.UserID); err != nil {
		e.reply(m, ev.ChatID, e.home(MsgGenericError))
		return err
	}
	metrics.FlowEvents.WithLabelValues(string(session.State.Flow), string(session.State.Step), metrics.OutcomeCancelled).Inc()

	if c, ok := e.workflows[session.State.Flow].(Canceler); ok {
		if err := c.Cancel(ctx, m, session, ev); err != nil {
			e.log.With(sl.Err(err)).Warn("custom cancel view",
				slog.Int64("user_id", ev.UserID),
				slog.String("workflow_id", string(session.State.Flow)),
			)
			e.reply(m, ev.ChatID, e.home(MsgCancelled))
		}
		return nil
	}

	e.reply(m, ev.ChatID, e.home(MsgCancelled))
	return nil
}

// processResult applies a step result to the session.
func (e *ChatEngine) processResult(ctx context.Context, m Messenger, w Workflow, session *Session, ev Event, result StepResult) error {
	flow, step := string(w.ID()), string(session.State.Step)

	switch {
	case result.Error != nil:
		return e.fail(ctx, m, session, ev, result.Error)

	case result.Complete:
		metrics.FlowEvents.WithLabelValues(flow, step, metrics.OutcomeCompleted).Inc()
		return e.store.Clear(ctx, ev.UserID)

	case result.NextStep != "":
		metrics.FlowEvents.WithLabelValues(flow, step, metrics.OutcomeAdvanced).Inc()
		_, err := e.store.SetState(ctx, ev.UserID, State{Flow: w.ID(), Step: result.NextStep}, result.UpdateState)
		return err

	default:
		metrics.FlowEvents.WithLabelValues(flow, step, metrics.OutcomeOK).Inc()
		if session.State.Step == "" || result.UpdateState == nil {
			return nil
		}
		_, err := e.store.SetState(ctx, ev.UserID, session.State, result.UpdateState)
		return err
	}
}

// fail ends the flow after an unrecoverable step error.
func (e *ChatEngine) fail(ctx context.Context, m Messenger, session *Session, ev Event, err error) error {
	log := e.log.With(
		slog.Int64("user_id", ev.UserID),
		slog.String("state", session.State.String()),
		sl.Err(err),
	)

	text := MsgGenericError
	outcome := metrics.OutcomeFailed
	if errors.Is(err, ErrSessionIntegrity) {
		text = MsgSessionError
		outcome = metrics.OutcomeInvalid
		log.Warn("session integrity")
	} else {
		log.Error("step failed")
	}
	metrics.FlowEvents.WithLabelValues(string(session.State.Flow), string(session.State.Step), outcome).Inc()

	if cErr := e.store.Clear(ctx, ev.UserID); cErr != nil {
		log.With(slog.String("clear_error", cErr.Error())).Error("clear session")
	}
	e.reply(m, ev.ChatID, e.home(text))
	return nil
}

func (e *ChatEngine) reply(m Messenger, chatID int64, r Reply) {
	if _, err := m.Send(chatID, r); err != nil {
		e.log.With(sl.Err(err)).Warn("send reply", slog.Int64("chat_id", chatID))
	}
}

// trigger finds the workflow an event enters, honoring admin restrictions.
func (e *ChatEngine) trigger(ev Event) (Workflow, bool) {
	for _, w := range e.order {
		if !triggeredBy(w.Triggers(), ev) {
			continue
		}
		if r, ok := w.(Restricted); ok && r.AdminOnly() && !e.IsAdmin(ev.UserID) {
			continue
		}
		return w, true
	}
	return nil, false
}

func (e *ChatEngine) handler(ev Event) (Handler, bool) {
	for _, h := range e.handlers {
		if h.Match(ev) {
			return h, true
		}
	}
	return nil, false
}

func triggeredBy(t Triggers, ev Event) bool {
	switch ev.Kind {
	case EventCommand:
		return slices.Contains(t.Commands, ev.Command)
	case EventText:
		return slices.Contains(t.Texts, strings.TrimSpace(ev.Text))
	case EventCallback:
		return slices.Contains(t.Callbacks, ev.Namespace())
	}
	return false
}

// match looks the (step, event) pair up in the workflow's transition table.
func match(w Workflow, step StepID, ev Event) (Transition, bool) {
	for _, t := range w.Transitions() {
		if t.Step != step || t.On&ev.Kind == 0 {
			continue
		}
		if ev.Kind == EventCallback && t.Namespace != ev.Namespace() {
			continue
		}
		return t, true
	}
	return Transition{}, false
}

func isCancel(ev Event) bool {
	switch ev.Kind {
	case EventCommand:
		return ev.Command == CancelCommand
	case EventText:
		text := strings.TrimSpace(ev.Text)
		return strings.EqualFold(text, CancelCommand) || text == CancelButton
	case EventCallback:
		return ev.Payload() == CancelPayload
	}
	return false
}

// Describe lists every reachable (workflow, step, event) combination.
func (e *ChatEngine) Describe() []string {
	var out []string
	for _, w := range e.order {
		for _, t := range w.Transitions() {
			line := fmt.Sprintf("%s/%s on %s", w.ID(), t.Step, t.On)
			if t.Namespace != "" {
				line += " [" + t.Namespace + "]"
			}
			out = append(out, line)
		}
	}
	return out
}
