package wire

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/matthewbaird/silic/internal/catalog"
	"github.com/matthewbaird/silic/internal/edital"
	"github.com/matthewbaird/silic/internal/editor"
	"github.com/matthewbaird/silic/internal/event"
	"github.com/matthewbaird/silic/internal/form"
	"github.com/matthewbaird/silic/internal/modal"
	"github.com/matthewbaird/silic/internal/utils"
)

// Handler manages WebSocket connections for the editor.
type Handler struct {
	sessions  *editor.Manager
	validator *edital.Validator
	recorder  event.Recorder
}

// NewHandler creates a WebSocket handler. A nil recorder skips event
// recording for modal saves.
func NewHandler(sessions *editor.Manager, validator *edital.Validator, recorder event.Recorder) *Handler {
	return &Handler{sessions: sessions, validator: validator, recorder: recorder}
}

// ServeHTTP upgrades to WebSocket and runs the message loop. The session
// ends with the connection, and the connection ends with the session: once
// the manager considers it idle or too old the client gets a
// session_expired error and a policy-violation close.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("editor: websocket accept: %v", err)
		return
	}
	defer conn.CloseNow()

	sess := h.sessions.Create()
	defer h.sessions.Remove(sess.ID)
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var once sync.Once
	expire := func() {
		once.Do(func() {
			log.Printf("editor: session %s expired", utils.ShortID(sess.ID))
			h.send(ctx, conn, errorMessage("", errSessionExpired))
			conn.Close(websocket.StatusPolicyViolation, errSessionExpired.Error())
		})
	}
	go h.watch(ctx, sess.ID, expire)

	h.send(ctx, conn, h.Hello(sess))

	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) != -1 {
				log.Printf("editor: session %s closed: %v", utils.ShortID(sess.ID), websocket.CloseStatus(err))
			}
			return
		}
		if h.sessions.Get(sess.ID) == nil {
			expire()
			return
		}
		h.send(ctx, conn, h.Dispatch(ctx, sess, msg))
	}
}

// watch calls expire once the session is no longer live, checking at the
// manager's interval until ctx is done.
func (h *Handler) watch(ctx context.Context, id string, expire func()) {
	t := time.NewTicker(h.sessions.CheckInterval())
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if h.sessions.Get(id) == nil {
				expire()
				return
			}
		}
	}
}

// Hello is the first message of a connection.
func (h *Handler) Hello(sess *editor.Session) ServerMessage {
	form := h.sessions.Form()
	sess.Lock()
	defer sess.Unlock()
	return ServerMessage{
		Type: "session",
		Data: SessionData{
			SessionID: sess.ID,
			Mode:      sess.Document.Mode(),
			DragModes: form.DragModes,
			Sections:  form.Sections,
			Chips:     form.Chips,
			Data:      sess.Document.Data(),
		},
	}
}

// Dispatch handles one client message against sess and returns the reply.
func (h *Handler) Dispatch(ctx context.Context, sess *editor.Session, msg ClientMessage) ServerMessage {
	sess.Lock()
	defer sess.Unlock()
	sess.Touch()

	doc := sess.Document
	switch msg.Type {
	case TypePing:
		return ServerMessage{Type: "pong", RequestID: msg.ID}

	case TypeDragStart:
		var data FieldData
		if err := decode(msg, &data); err != nil {
			return errorMessage(msg.ID, err)
		}
		if err := doc.StartDrag(data.Field); err != nil {
			return errorMessage(msg.ID, err)
		}
		return h.document(msg.ID, doc, "")

	case TypeDragDrop:
		var data DropData
		if err := decode(msg, &data); err != nil {
			return errorMessage(msg.ID, err)
		}
		text, _ := doc.Drop(data.Inside)
		return h.document(msg.ID, doc, text)

	case TypeDragCancel:
		doc.Cancel()
		return h.document(msg.ID, doc, "")

	case TypeInsert:
		var data FieldData
		if err := decode(msg, &data); err != nil {
			return errorMessage(msg.ID, err)
		}
		text, err := doc.Insert(data.Field)
		if err != nil {
			return errorMessage(msg.ID, err)
		}
		return h.document(msg.ID, doc, text)

	case TypeSetMode:
		var data ModeData
		if err := decode(msg, &data); err != nil {
			return errorMessage(msg.ID, err)
		}
		if err := doc.SetMode(data.Mode); err != nil {
			return errorMessage(msg.ID, err)
		}
		return h.document(msg.ID, doc, "")

	case TypeSetValue:
		var data ValueData
		if err := decode(msg, &data); err != nil {
			return errorMessage(msg.ID, err)
		}
		if err := doc.SetValue(data.Field, data.Value); err != nil {
			return errorMessage(msg.ID, err)
		}
		return h.document(msg.ID, doc, "")

	case TypeSetContent:
		var data ContentData
		if err := decode(msg, &data); err != nil {
			return errorMessage(msg.ID, err)
		}
		doc.SetContent(data.Text, data.Cursor)
		return h.document(msg.ID, doc, "")

	case TypeValidate:
		var data ValidateData
		if err := decode(msg, &data); err != nil {
			return errorMessage(msg.ID, err)
		}
		return h.validate(msg.ID, data.Section, doc.Data())

	case TypeModalOpen:
		var data ModalOpenData
		if err := decode(msg, &data); err != nil {
			return errorMessage(msg.ID, err)
		}
		v, err := sess.Modal.Open(data.PropertyID)
		return modalMessage(msg.ID, v, err)

	case TypeModalTab:
		var data ModalTabData
		if err := decode(msg, &data); err != nil {
			return errorMessage(msg.ID, err)
		}
		v, err := sess.Modal.SwitchTab(data.Tab)
		return modalMessage(msg.ID, v, err)

	case TypeModalSave:
		var data ModalSaveData
		if err := decode(msg, &data); err != nil {
			return errorMessage(msg.ID, err)
		}
		tab := sess.Modal.View().State
		v, err := sess.Modal.Save(data.Values)
		if err == nil {
			h.recordSave(ctx, v, tab, data.Values)
		}
		return modalMessage(msg.ID, v, err)

	case TypeModalClose:
		return ServerMessage{Type: "modal", RequestID: msg.ID, Data: sess.Modal.Close()}
	}
	return ServerMessage{
		Type:      "error",
		RequestID: msg.ID,
		Data:      ErrorData{Code: "unknown_type", Message: fmt.Sprintf("unknown message type: %s", msg.Type)},
	}
}

func (h *Handler) document(requestID string, doc *edital.Session, inserted string) ServerMessage {
	d := DocumentData{
		Content:  doc.Content(),
		Cursor:   doc.Cursor(),
		Mode:     doc.Mode(),
		Inserted: inserted,
	}
	if c, ok := doc.Dragging(); ok {
		d.Dragging = c.ID
	}
	return ServerMessage{Type: "document", RequestID: requestID, Data: d}
}

func (h *Handler) validate(requestID, section string, data map[string]any) ServerMessage {
	if h.validator == nil {
		return errorMessage(requestID, fmt.Errorf("validating %s: %w", section, edital.ErrUnknownSection))
	}
	res := ValidationData{Section: section, Valid: true}
	if err := h.validator.Validate(section, data); err != nil {
		var verr *form.ValidationError
		if !errors.As(err, &verr) {
			return errorMessage(requestID, err)
		}
		res.Valid = false
		res.Errors = verr.Fields
	}
	return ServerMessage{Type: "validation", RequestID: requestID, Data: res}
}

func (h *Handler) recordSave(ctx context.Context, v modal.View, tab string, values map[string]string) {
	if h.recorder == nil {
		return
	}
	evt := event.NewEditSaved(event.EditPayload{PropertyID: v.PropertyID, Tab: tab, Values: values})
	if len(v.Invalid) > 0 {
		evt = event.NewEditRejected(event.EditPayload{PropertyID: v.PropertyID, Tab: tab, Errors: v.Invalid})
	}
	if err := h.recorder.Record(ctx, evt); err != nil {
		log.Printf("editor: failed to record %s: %v", evt.EventType, err)
	}
}

func (h *Handler) send(ctx context.Context, conn *websocket.Conn, msg ServerMessage) {
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		log.Printf("editor: write error: %v", err)
	}
}

func decode(msg ClientMessage, v any) error {
	if len(msg.Data) == 0 {
		return errInvalidData
	}
	if err := json.Unmarshal(msg.Data, v); err != nil {
		return errInvalidData
	}
	return nil
}

var (
	errInvalidData    = errors.New("invalid message data")
	errSessionExpired = errors.New("session expired")
)

func modalMessage(requestID string, v modal.View, err error) ServerMessage {
	if err != nil {
		return errorMessage(requestID, err)
	}
	return ServerMessage{Type: "modal", RequestID: requestID, Data: v}
}

// errorMessage maps session errors to stable codes.
func errorMessage(requestID string, err error) ServerMessage {
	code := "internal"
	switch {
	case errors.Is(err, errInvalidData):
		code = "invalid_data"
	case errors.Is(err, errSessionExpired):
		code = "session_expired"
	case errors.Is(err, edital.ErrUnknownChip):
		code = "unknown_chip"
	case errors.Is(err, edital.ErrUnknownField):
		code = "unknown_field"
	case errors.Is(err, edital.ErrUnknownMode):
		code = "unknown_mode"
	case errors.Is(err, edital.ErrUnknownSection):
		code = "unknown_section"
	case errors.Is(err, catalog.ErrNotFound):
		code = "not_found"
	case errors.Is(err, modal.ErrClosed):
		code = "modal_closed"
	case errors.Is(err, modal.ErrInvalidTransition):
		code = "invalid_transition"
	}
	return ServerMessage{
		Type:      "error",
		RequestID: requestID,
		Data:      ErrorData{Code: code, Message: err.Error()},
	}
}
