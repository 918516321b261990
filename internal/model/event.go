package model

import "time"

// EventAction names the mutation that produced an EquipmentEvent.
type EventAction string

const (
	EventCreated EventAction = "created"
	EventUpdated EventAction = "updated"
	EventDeleted EventAction = "deleted"
)

// EquipmentEvent describes a successful change to the equipment collection.
type EquipmentEvent struct {
	Action     EventAction `json:"action"`
	Equipment  Equipment   `json:"equipment"`
	OccurredAt time.Time   `json:"occurredAt"`
}
