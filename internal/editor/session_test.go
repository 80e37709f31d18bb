package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/silic/internal/catalog"
	"github.com/matthewbaird/silic/internal/edital"
	"github.com/matthewbaird/silic/internal/modal"
)

func newManager(maxAge, idle time.Duration) *Manager {
	return NewManager(edital.Adapt(edital.Default()), catalog.New(), maxAge, idle)
}

func TestManager_CreateAndGet(t *testing.T) {
	m := newManager(time.Hour, time.Hour)
	s := m.Create()
	require.NotEmpty(t, s.ID)
	assert.Equal(t, edital.ModeToken, s.Document.Mode())
	assert.Equal(t, modal.StateClosed, s.Modal.View().State)

	assert.Same(t, s, m.Get(s.ID))
	assert.Nil(t, m.Get("missing"))
	assert.Equal(t, 1, m.Len())
}

func TestManager_ExpiresIdleSessions(t *testing.T) {
	m := newManager(time.Hour, time.Minute)
	s := m.Create()
	s.LastActiveAt = time.Now().Add(-2 * time.Minute)
	assert.Nil(t, m.Get(s.ID))
	assert.Equal(t, 0, m.Len())

	old := m.Create()
	old.CreatedAt = time.Now().Add(-2 * time.Hour)
	fresh := m.Create()
	assert.Equal(t, 1, m.Cleanup())
	assert.Same(t, fresh, m.Get(fresh.ID))
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	m := newManager(time.Hour, time.Hour)
	a, b := m.Create(), m.Create()
	require.NoError(t, a.Document.SetMode(edital.ModeValue))
	_, err := a.Document.Insert("valor_aluguel")
	require.NoError(t, err)

	assert.Equal(t, edital.ModeToken, b.Document.Mode())
	assert.Empty(t, b.Document.Content())
	assert.NotEmpty(t, a.Document.Content())
}

func TestManager_CheckInterval(t *testing.T) {
	assert.Equal(t, 25*time.Millisecond, newManager(time.Hour, 50*time.Millisecond).CheckInterval())
	assert.Equal(t, 10*time.Millisecond, newManager(time.Hour, time.Millisecond).CheckInterval())
	assert.Equal(t, time.Minute, newManager(24*time.Hour, 30*time.Minute).CheckInterval())
}
