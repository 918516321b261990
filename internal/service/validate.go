package service

import (
	"strings"

	"equipment-tracker-backend/internal/model"
	"equipment-tracker-backend/internal/parse"
)

var (
	typeMessage   = "Type must be one of: " + joinTypes(model.EquipmentTypes)
	statusMessage = "Status must be one of: " + joinStatuses(model.EquipmentStatuses)
)

const (
	nameMessage = "Name is required"
	dateMessage = "Last Cleaned Date must be a valid date string"
)

// Validate checks in against every rule and returns all violations.
// A nil result means the input is valid.
func Validate(in model.EquipmentInput) []string {
	var errs []string
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, nameMessage)
	}
	if !isType(in.Type) {
		errs = append(errs, typeMessage)
	}
	if !isStatus(in.Status) {
		errs = append(errs, statusMessage)
	}
	if _, err := parse.CleanedDate(in.LastCleanedDate); err != nil {
		errs = append(errs, dateMessage)
	}
	return errs
}

// normalize builds a record from input that has already passed Validate.
func normalize(id int64, in model.EquipmentInput) model.Equipment {
	date, _ := parse.CleanedDate(in.LastCleanedDate)
	return model.Equipment{
		ID:              id,
		Name:            strings.TrimSpace(in.Name),
		Type:            model.EquipmentType(in.Type),
		Status:          model.EquipmentStatus(in.Status),
		LastCleanedDate: date,
	}
}

func isType(s string) bool {
	for _, t := range model.EquipmentTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

func isStatus(s string) bool {
	for _, st := range model.EquipmentStatuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

func joinTypes(types []model.EquipmentType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func joinStatuses(statuses []model.EquipmentStatus) string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
