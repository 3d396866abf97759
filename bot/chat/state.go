package chat

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrSessionIntegrity marks a session that lost scratch data a step relies on.
var ErrSessionIntegrity = errors.New("session integrity")

// MissingData reports a required scratch key that is absent from the session.
func MissingData(key string) error {
	return fmt.Errorf("%w: missing %q", ErrSessionIntegrity, key)
}

// State is the (workflow, step) pair a user is in. The zero value means no active flow.
type State struct {
	Flow WorkflowID `json:"flow" bson:"flow"`
	Step StepID     `json:"step" bson:"step"`
}

func (st State) IsZero() bool {
	return st.Flow == "" && st.Step == ""
}

func (st State) String() string {
	if st.IsZero() {
		return "none"
	}
	return string(st.Flow) + "/" + string(st.Step)
}

// Session is the per-user conversation state plus flow scratch data.
type Session struct {
	UserID    int64          `json:"user_id" bson:"user_id"`
	State     State          `json:"state" bson:"state"`
	Data      map[string]any `json:"data" bson:"data"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}

// NewSession creates an empty session with no active flow.
func NewSession(userID int64) *Session {
	return &Session{
		UserID: userID,
		Data:   make(map[string]any),
	}
}

func (s *Session) Active() bool {
	return !s.State.IsZero()
}

// GetString retrieves a string value from the session data.
func (s *Session) GetString(key string) string {
	if v, ok := s.Data[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// GetInt64 retrieves an integer value, tolerating the float64 and string
// forms numbers take after a JSON round trip.
func (s *Session) GetInt64(key string) (int64, bool) {
	v, ok := s.Data[key]
	if !ok {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case float64:
		return int64(val), true
	case string:
		n, err := strconv.ParseInt(val, 10, 64)
		return n, err == nil
	}
	return 0, false
}

// Set stores a value in the session data.
func (s *Session) Set(key string, value any) {
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
}

// MergeData merges additional data into the session.
func (s *Session) MergeData(data map[string]any) {
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	for k, v := range data {
		s.Data[k] = v
	}
}

// Clone returns a copy that shares no map with the receiver.
func (s *Session) Clone() *Session {
	c := *s
	c.Data = make(map[string]any, len(s.Data))
	for k, v := range s.Data {
		c.Data[k] = v
	}
	return &c
}
