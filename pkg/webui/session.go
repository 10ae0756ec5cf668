package webui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/alantheprice/dropdown/pkg/dropdown"
)

// Message is one client event: {"type": "...", "data": ...}
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Reply is one server message. Render replies carry a dropdown.Descriptor
// and whether the event changed anything; change replies carry the new
// Selection.
type Reply struct {
	Type    string      `json:"type"`
	Data    interface{} `json:"data,omitempty"`
	Applied bool        `json:"applied,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Event types a client may send
const (
	EventToggleOpen = "toggle_open"
	EventQuery      = "query"
	EventScroll     = "scroll"
	EventScrollTo   = "scroll_to"
	EventSelect     = "select"
	EventSelectAll  = "select_all"
	EventOutside    = "outside"
	EventDisabled   = "disabled"
	EventPing       = "ping"
)

// session is the dropdown state of one connection. Events are handled on
// the connection's read goroutine only.
type session struct {
	id     string
	ctl    *dropdown.Controller
	conn   *SafeConn
	server *Server
}

func (s *Server) newSession(id string, conn *SafeConn) *session {
	sess := &session{id: id, conn: conn, server: s}

	settings := s.settings
	onChange := settings.OnChange
	settings.OnChange = func(next dropdown.Selection) {
		sess.ctl.SetValue(next)
		sess.reply(Reply{Type: "change", Data: next})
		if onChange != nil {
			onChange(next)
		}
	}
	sess.ctl = dropdown.New(s.set, dropdown.EmptySelection(settings.Mode), settings)
	return sess
}

func (sess *session) close() {
	sess.ctl.Unmount()
	sess.server.logf("WebSocket session %s closed", sess.id)
}

func (sess *session) reply(r Reply) {
	if sess.conn == nil {
		return
	}
	if err := sess.conn.WriteJSON(r); err != nil {
		sess.server.logf("WebSocket %s write error: %v", sess.id, err)
	}
}

func (sess *session) render(applied bool) {
	sess.reply(Reply{Type: "render", Data: sess.ctl.Descriptor(), Applied: applied})
}

// handle applies one message and answers it
func (sess *session) handle(msg Message) {
	if msg.Type == EventPing {
		sess.reply(Reply{Type: "pong"})
		return
	}

	applied, err := sess.apply(msg)
	if err != nil {
		sess.server.logErr(fmt.Errorf("session %s: %w", sess.id, err))
		sess.reply(Reply{Type: "error", Error: err.Error()})
		return
	}
	if sess.server.logger != nil {
		sess.server.logger.LogEvent(sess.id, msg.Type, applied)
	}
	sess.render(applied)
}

// apply routes msg to the controller. An error means the message itself is
// bad; ignored transitions only report applied == false.
func (sess *session) apply(msg Message) (bool, error) {
	ctl := sess.ctl
	switch msg.Type {
	case EventToggleOpen:
		return ctl.ToggleOpen(), nil

	case EventOutside:
		return ctl.OutsideInteraction(), nil

	case EventSelectAll:
		return ctl.SelectAllOrNone(), nil

	case EventQuery:
		var text string
		if err := decodeData(msg, &text); err != nil {
			return false, err
		}
		return ctl.SetQuery(text), nil

	case EventScroll:
		var offset float64
		if err := decodeData(msg, &offset); err != nil {
			return false, err
		}
		return ctl.SetScroll(offset), nil

	case EventScrollTo:
		var index int
		if err := decodeData(msg, &index); err != nil {
			return false, err
		}
		return ctl.ScrollToIndex(index), nil

	case EventSelect:
		var key dropdown.Key
		if err := decodeData(msg, &key); err != nil {
			return false, err
		}
		if _, ok := ctl.Options().Lookup(key); !ok {
			return false, fmt.Errorf("select %s: %w", key, dropdown.ErrUnknownKey)
		}
		return ctl.Select(key), nil

	case EventDisabled:
		var disabled bool
		if err := decodeData(msg, &disabled); err != nil {
			return false, err
		}
		return ctl.SetDisabled(disabled), nil

	case "":
		return false, errors.New("message has no type")
	}
	return false, fmt.Errorf("unknown message type %q", msg.Type)
}

func decodeData(msg Message, v interface{}) error {
	if len(msg.Data) == 0 {
		return fmt.Errorf("%s: missing data", msg.Type)
	}
	if err := json.Unmarshal(msg.Data, v); err != nil {
		return fmt.Errorf("%s: invalid data: %w", msg.Type, err)
	}
	return nil
}

// isDecodeError reports whether a ReadJSON failure came from the payload
// rather than the connection
func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF)
}
