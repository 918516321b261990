package model

import (
	"bytes"
	"encoding/json"
)

// EquipmentType is the kind of equipment being tracked.
type EquipmentType string

const (
	EquipmentTypeMachine EquipmentType = "Machine"
	EquipmentTypeVessel  EquipmentType = "Vessel"
	EquipmentTypeTank    EquipmentType = "Tank"
	EquipmentTypeMixer   EquipmentType = "Mixer"
)

// EquipmentTypes lists the accepted types in display order.
var EquipmentTypes = []EquipmentType{
	EquipmentTypeMachine,
	EquipmentTypeVessel,
	EquipmentTypeTank,
	EquipmentTypeMixer,
}

// EquipmentStatus is the operational state of a piece of equipment.
type EquipmentStatus string

const (
	EquipmentStatusActive           EquipmentStatus = "Active"
	EquipmentStatusInactive         EquipmentStatus = "Inactive"
	EquipmentStatusUnderMaintenance EquipmentStatus = "Under Maintenance"
)

// EquipmentStatuses lists the accepted statuses in display order.
var EquipmentStatuses = []EquipmentStatus{
	EquipmentStatusActive,
	EquipmentStatusInactive,
	EquipmentStatusUnderMaintenance,
}

// Equipment is a single persisted equipment record.
type Equipment struct {
	ID              int64           `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name            string          `json:"name" gorm:"size:256;not null"`
	Type            EquipmentType   `json:"type" gorm:"size:32;not null"`
	Status          EquipmentStatus `json:"status" gorm:"size:32;not null"`
	LastCleanedDate string          `json:"lastCleanedDate" gorm:"size:10;not null"` // YYYY-MM-DD
}

// TableName pins the table name used by the relational backends.
func (Equipment) TableName() string {
	return "equipment"
}

// EquipmentInput carries the client-editable fields of a record.
type EquipmentInput struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	Status          string `json:"status"`
	LastCleanedDate string `json:"lastCleanedDate"`
}

// UnmarshalJSON decodes an input object leniently: a field that is missing,
// null or not a string is left empty so validation reports it.
func (in *EquipmentInput) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*in = EquipmentInput{
		Name:            stringField(fields["name"]),
		Type:            stringField(fields["type"]),
		Status:          stringField(fields["status"]),
		LastCleanedDate: stringField(fields["lastCleanedDate"]),
	}
	return nil
}

func stringField(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
