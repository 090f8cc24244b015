package auditlog

import "time"

// Record is a fire-and-forget audit entry describing one mutating operation.
type Record struct {
	ActorID      int64     `json:"actorId"`
	ActorRole    string    `json:"actorRole"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resourceType"`
	ResourceID   int64     `json:"resourceId"`
	OldValue     string    `json:"oldValue,omitempty"`
	NewValue     string    `json:"newValue,omitempty"`
	At           time.Time `json:"at"`
}
