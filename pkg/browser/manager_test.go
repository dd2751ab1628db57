package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartSession_RequiresInitialize(t *testing.T) {
	manager := NewSessionManager()

	session, err := manager.StartSession("capture", SessionOptions{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
	assert.Nil(t, session)
}

func TestGetSession_NotFound(t *testing.T) {
	manager := NewSessionManager()

	session, err := manager.GetSession("missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Nil(t, session)
}

func TestCloseSession_NotFound(t *testing.T) {
	manager := NewSessionManager()

	err := manager.CloseSession("missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestShutdown_WithoutInitialize(t *testing.T) {
	manager := NewSessionManager()
	assert.NoError(t, manager.Shutdown())
}
