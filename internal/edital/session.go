package edital

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrUnknownChip is returned when a drag or insert names a field that is
	// not exposed as a chip.
	ErrUnknownChip = errors.New("unknown chip")
	// ErrUnknownField is returned when setting a value for an undeclared field.
	ErrUnknownField = errors.New("unknown field")
	// ErrUnknownMode is returned for a drag mode the form does not offer.
	ErrUnknownMode = errors.New("unknown drag mode")
)

// Session is one operator's working copy: form data, the document text with
// a cursor, the insertion mode and the chip being dragged, if any.
// A Session is not safe for concurrent use.
type Session struct {
	adapted  *Adapted
	data     map[string]any
	content  []rune
	cursor   int
	mode     string
	dragging *Chip
}

// NewSession starts from the adapted form's initial data, an empty document
// and the default drag mode.
func NewSession(a *Adapted) *Session {
	return &Session{
		adapted: a,
		data:    maps.Clone(a.InitialData),
		mode:    a.DefaultMode(),
	}
}

// Mode returns the current insertion mode.
func (s *Session) Mode() string { return s.mode }

// SetMode switches between value and token insertion.
func (s *Session) SetMode(mode string) error {
	if !slices.Contains(s.adapted.DragModes, mode) {
		return fmt.Errorf("setting mode %q: %w", mode, ErrUnknownMode)
	}
	s.mode = mode
	return nil
}

// SetValue records an edited form value.
func (s *Session) SetValue(fieldID string, v any) error {
	if _, ok := s.adapted.InitialData[fieldID]; !ok {
		return fmt.Errorf("setting %s: %w", fieldID, ErrUnknownField)
	}
	s.data[fieldID] = v
	return nil
}

// Data returns a copy of the form data.
func (s *Session) Data() map[string]any { return maps.Clone(s.data) }

// Content returns the document text.
func (s *Session) Content() string { return string(s.content) }

// Cursor returns the insertion point, in runes.
func (s *Session) Cursor() int { return s.cursor }

// SetContent replaces the document text and moves the cursor, clamped to
// the text bounds.
func (s *Session) SetContent(text string, cursor int) {
	s.content = []rune(text)
	s.SetCursor(cursor)
}

// SetCursor moves the insertion point, clamped to the text bounds.
func (s *Session) SetCursor(i int) {
	s.cursor = max(0, min(i, len(s.content)))
}

// StartDrag captures the chip for fieldID.
func (s *Session) StartDrag(fieldID string) error {
	c, ok := s.adapted.Chip(fieldID)
	if !ok {
		return fmt.Errorf("dragging %s: %w", fieldID, ErrUnknownChip)
	}
	s.dragging = &c
	return nil
}

// Dragging returns the captured chip.
func (s *Session) Dragging() (Chip, bool) {
	if s.dragging == nil {
		return Chip{}, false
	}
	return *s.dragging, true
}

// Drop ends the drag. Inside the editor the chip's text is inserted at the
// cursor and returned; anywhere else nothing changes.
func (s *Session) Drop(insideEditor bool) (string, bool) {
	c := s.dragging
	s.dragging = nil
	if c == nil || !insideEditor {
		return "", false
	}
	text := s.Insertion(*c)
	s.insert(text)
	return text, true
}

// Cancel abandons the drag.
func (s *Session) Cancel() { s.dragging = nil }

// Insert puts the chip for fieldID at the cursor without a drag.
func (s *Session) Insert(fieldID string) (string, error) {
	c, ok := s.adapted.Chip(fieldID)
	if !ok {
		return "", fmt.Errorf("inserting %s: %w", fieldID, ErrUnknownChip)
	}
	text := s.Insertion(c)
	s.insert(text)
	return text, nil
}

// Insertion is the text a chip contributes under the current mode: the
// formatted field value in value mode, the bracketed token otherwise.
func (s *Session) Insertion(c Chip) string {
	if s.mode != ModeValue {
		return c.Token()
	}
	v, ok := s.data[c.ID]
	if !ok || v == nil {
		v = c.MockValue
	}
	return FormatValue(c.Type, v)
}

func (s *Session) insert(text string) {
	r := []rune(text)
	out := make([]rune, 0, len(s.content)+len(r))
	out = append(out, s.content[:s.cursor]...)
	out = append(out, r...)
	out = append(out, s.content[s.cursor:]...)
	s.content = out
	s.cursor += len(r)
}
