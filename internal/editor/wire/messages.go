// Package wire defines the WebSocket protocol of the editor.
package wire

import (
	"encoding/json"

	"github.com/matthewbaird/silic/internal/edital"
)

// ── Client → Server messages ────────────────────────────────────────────────

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string          `json:"type"` // see the Type* constants
	ID   string          `json:"id"`   // client-assigned request ID
	Data json.RawMessage `json:"data,omitempty"`
}

// Client message types.
const (
	TypePing       = "ping"
	TypeDragStart  = "drag.start"
	TypeDragDrop   = "drag.drop"
	TypeDragCancel = "drag.cancel"
	TypeInsert     = "insert"
	TypeSetMode    = "set_mode"
	TypeSetValue   = "set_value"
	TypeSetContent = "set_content"
	TypeValidate   = "validate"
	TypeModalOpen  = "modal.open"
	TypeModalTab   = "modal.tab"
	TypeModalSave  = "modal.save"
	TypeModalClose = "modal.close"
)

// FieldData names a chip, for "drag.start" and "insert".
type FieldData struct {
	Field string `json:"field"`
}

// DropData is the payload for "drag.drop".
type DropData struct {
	Inside bool `json:"inside"`
}

// ModeData is the payload for "set_mode".
type ModeData struct {
	Mode string `json:"mode"`
}

// ValueData is the payload for "set_value".
type ValueData struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// ContentData is the payload for "set_content". Cursor counts characters.
type ContentData struct {
	Text   string `json:"text"`
	Cursor int    `json:"cursor"`
}

// ValidateData is the payload for "validate".
type ValidateData struct {
	Section string `json:"section"`
}

// ModalOpenData is the payload for "modal.open".
type ModalOpenData struct {
	PropertyID string `json:"property_id"`
}

// ModalTabData is the payload for "modal.tab".
type ModalTabData struct {
	Tab string `json:"tab"`
}

// ModalSaveData is the payload for "modal.save".
type ModalSaveData struct {
	Values map[string]string `json:"values"`
}

// ── Server → Client messages ────────────────────────────────────────────────

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type      string `json:"type"` // "session", "document", "validation", "modal", "error", "pong"
	RequestID string `json:"request_id,omitempty"`
	Data      any    `json:"data,omitempty"`
}

// SessionData is sent once after the connection is accepted.
type SessionData struct {
	SessionID string           `json:"session_id"`
	Mode      string           `json:"mode"`
	DragModes []string         `json:"drag_modes"`
	Sections  []edital.Section `json:"sections"`
	Chips     []edital.Chip    `json:"chips"`
	Data      map[string]any   `json:"data"`
}

// DocumentData describes the document after a change.
type DocumentData struct {
	Content  string `json:"content"`
	Cursor   int    `json:"cursor"`
	Mode     string `json:"mode"`
	Dragging string `json:"dragging,omitempty"`
	Inserted string `json:"inserted,omitempty"`
}

// ValidationData reports a section check.
type ValidationData struct {
	Section string            `json:"section"`
	Valid   bool              `json:"valid"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// ErrorData is sent when a message cannot be handled.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
