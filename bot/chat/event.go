package chat

import "strings"

// EventKind is a bit set so transitions can accept several kinds at once.
type EventKind uint8

const (
	EventCommand EventKind = 1 << iota
	EventText
	EventMedia
	EventCallback
)

// AnyMessage matches every non-command message.
const AnyMessage = EventText | EventMedia

func (k EventKind) String() string {
	switch k {
	case EventCommand:
		return "command"
	case EventText:
		return "text"
	case EventMedia:
		return "media"
	case EventCallback:
		return "callback"
	default:
		return "mixed"
	}
}

// Event is a normalized inbound update.
type Event struct {
	Kind       EventKind
	UserID     int64
	ChatID     int64
	MessageID  int64
	FirstName  string
	FullName   string
	Command    string
	Args       string
	Text       string
	Data       string
	CallbackID string
}

// Namespace returns the callback data prefix before the first colon.
func (e Event) Namespace() string {
	ns, _, _ := strings.Cut(e.Data, ":")
	return ns
}

// Payload returns the callback data after the first colon.
func (e Event) Payload() string {
	_, payload, _ := strings.Cut(e.Data, ":")
	return payload
}

// CallbackData joins a namespace and payload into callback data.
func CallbackData(namespace string, payload ...string) string {
	if len(payload) == 0 {
		return namespace
	}
	return namespace + ":" + strings.Join(payload, ":")
}
