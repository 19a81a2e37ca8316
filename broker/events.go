package broker

import (
	"time"
)

const (
	UserSubject = "users.events"
	TaskSubject = "tasks.events"
)

type EventType string

const (
	// Standardized event types in format: <resource>.<action>
	TaskCreated EventType = "task.created"
	TaskUpdated EventType = "task.updated"
	TaskDeleted EventType = "task.deleted"

	UserCreated EventType = "user.created"
	UserUpdated EventType = "user.updated"
)

// Event is the JSON payload published on the entity subjects.
type Event struct {
	Event     EventType              `json:"event"`
	Entity    string                 `json:"entity"`
	ActorID   string                 `json:"actor_id"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func NewEvent(event EventType, entity, actorID string, data map[string]interface{}) Event {
	return Event{
		Event:     event,
		Entity:    entity,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}
