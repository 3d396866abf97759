package chat

import (
	"context"
)

// StepID is a named state within a workflow.
type StepID string

// WorkflowID is a unique identifier for a workflow.
type WorkflowID string

// StepResult represents the outcome of handling an event in a step.
//
// A zero NextStep with Complete unset keeps the current step; UpdateState is
// still merged into the session in that case.
type StepResult struct {
	NextStep    StepID
	UpdateState map[string]any
	Complete    bool
	Error       error
}

// HandlerFunc runs the action bound to a (step, event) pair.
type HandlerFunc func(ctx context.Context, m Messenger, s *Session, ev Event) StepResult

// Transition binds a step and an event kind to a handler. Namespace narrows
// callback events to a single callback data prefix.
type Transition struct {
	Step      StepID
	On        EventKind
	Namespace string
	Handle    HandlerFunc
}

// Triggers lists the events that start a workflow from any state.
type Triggers struct {
	Commands  []string
	Texts     []string
	Callbacks []string
}

// Workflow defines a complete conversation flow.
type Workflow interface {
	// ID returns the unique identifier for this workflow.
	ID() WorkflowID

	// Triggers returns the entry events of the workflow.
	Triggers() Triggers

	// Enter runs on a fresh session; returning NextStep activates the workflow.
	Enter(ctx context.Context, m Messenger, s *Session, ev Event) StepResult

	// Transitions returns the static dispatch table of the workflow.
	Transitions() []Transition
}

// Canceler is implemented by workflows that restore their own view on cancel.
// The session passed in is the one that was active before it was cleared.
type Canceler interface {
	Cancel(ctx context.Context, m Messenger, s *Session, ev Event) error
}

// Restricted is implemented by workflows only the administrator may start.
type Restricted interface {
	AdminOnly() bool
}

// Handler is a stateless responder consulted when no workflow claims an event.
type Handler interface {
	Match(ev Event) bool
	Handle(ctx context.Context, m Messenger, ev Event) error
}

// SessionStorage handles persistence of sessions. Load returns nil, nil when
// the user has no stored session.
type SessionStorage interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, userID int64) (*Session, error)
	Delete(ctx context.Context, userID int64) error
}
