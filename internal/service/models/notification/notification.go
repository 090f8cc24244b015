package notification

import (
	"time"
)

// EventType identifies the class of a notification event.
type EventType string

const (
	EventOrderCreated       EventType = "ORDER_CREATED"
	EventOrderStatusChanged EventType = "ORDER_STATUS_CHANGED"
	EventLowStock           EventType = "LOW_STOCK"
	EventSystemAlert        EventType = "SYSTEM_ALERT"
)

// Role is a recipient role class for scoped notifications.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
)

// Event is an ephemeral notification payload handed to the transport. It is
// not persisted beyond the outbox that guarantees its delivery.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	OrderID   int64          `json:"orderId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// Scope is the set of recipients entitled to receive an event: specific
// users and/or role classes.
type Scope struct {
	UserIDs []int64
	Roles   []Role
}

// Staff is the scope covering the back-office roles.
func Staff() Scope {
	return Scope{Roles: []Role{RoleAdmin, RoleManager}}
}

// UserAndStaff scopes an event to one customer plus the back-office roles.
func UserAndStaff(userID int64) Scope {
	s := Staff()
	s.UserIDs = []int64{userID}

	return s
}
