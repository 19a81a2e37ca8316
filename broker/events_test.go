package broker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEvent(t *testing.T) {
	event := NewEvent(TaskCreated, "work", "user-123", map[string]interface{}{"task_id": "t-1"})

	assert.Equal(t, TaskCreated, event.Event)
	assert.Equal(t, "work", event.Entity)
	assert.Equal(t, "user-123", event.ActorID)
	assert.False(t, event.Timestamp.IsZero())
	assert.Equal(t, "t-1", event.Data["task_id"])
}

func TestPublish_WithoutConnection(t *testing.T) {
	// Publishing before InitProducer must be a silent no-op so the API can
	// run without a broker.
	assert.NotPanics(t, func() {
		Publish(TaskSubject, NewEvent(TaskDeleted, "work", "user-123", nil))
	})
}
