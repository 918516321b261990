package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"equipment-tracker-backend/internal/model"
	"equipment-tracker-backend/internal/store"
)

// EventDispatcher receives an event after each successful mutation.
type EventDispatcher interface {
	Dispatch(ev model.EquipmentEvent)
}

// Service validates equipment input, assigns ids and is the only writer of
// the Store. Each mutation is a whole-collection read-modify-write; two
// concurrent mutations can lose one of the updates.
type Service struct {
	store  store.Store
	events EventDispatcher
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new equipment service. events may be nil.
func NewService(s store.Store, events EventDispatcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  s,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// List returns every stored record in collection order.
func (s *Service) List(ctx context.Context) ([]model.Equipment, error) {
	return s.store.Load(ctx)
}

// Create validates in, assigns the next id and persists the new record.
func (s *Service) Create(ctx context.Context, in model.EquipmentInput) (model.Equipment, error) {
	if errs := Validate(in); len(errs) > 0 {
		return model.Equipment{}, &ValidationError{Errors: errs}
	}

	records, err := s.store.Load(ctx)
	if err != nil {
		return model.Equipment{}, err
	}

	item := normalize(nextID(records), in)
	records = append(records, item)
	if err := s.store.Save(ctx, records); err != nil {
		return model.Equipment{}, err
	}

	s.logger.Info("equipment created", zap.Int64("id", item.ID), zap.String("name", item.Name))
	s.publish(model.EventCreated, item)
	return item, nil
}

// Update copies the four editable fields of in over the record with the
// given id and re-validates the result. Fields absent from in are empty, so
// callers must send the complete set.
func (s *Service) Update(ctx context.Context, id int64, in model.EquipmentInput) (model.Equipment, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return model.Equipment{}, err
	}

	idx := indexOf(records, id)
	if idx < 0 {
		return model.Equipment{}, &NotFoundError{ID: id}
	}

	if errs := Validate(in); len(errs) > 0 {
		return model.Equipment{}, &ValidationError{Errors: errs}
	}

	records[idx] = normalize(records[idx].ID, in)
	if err := s.store.Save(ctx, records); err != nil {
		return model.Equipment{}, err
	}

	s.logger.Info("equipment updated", zap.Int64("id", id))
	s.publish(model.EventUpdated, records[idx])
	return records[idx], nil
}

// Delete removes the record with the given id and returns it.
func (s *Service) Delete(ctx context.Context, id int64) (model.Equipment, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return model.Equipment{}, err
	}

	idx := indexOf(records, id)
	if idx < 0 {
		return model.Equipment{}, &NotFoundError{ID: id}
	}

	removed := records[idx]
	records = append(records[:idx], records[idx+1:]...)
	if err := s.store.Save(ctx, records); err != nil {
		return model.Equipment{}, err
	}

	s.logger.Info("equipment deleted", zap.Int64("id", id))
	s.publish(model.EventDeleted, removed)
	return removed, nil
}

func (s *Service) publish(action model.EventAction, item model.Equipment) {
	if s.events == nil {
		return
	}
	s.events.Dispatch(model.EquipmentEvent{
		Action:     action,
		Equipment:  item,
		OccurredAt: s.now().UTC(),
	})
}

// nextID returns one more than the highest id in use, or 1 when empty.
func nextID(records []model.Equipment) int64 {
	var highest int64
	for _, r := range records {
		if r.ID > highest {
			highest = r.ID
		}
	}
	return highest + 1
}

func indexOf(records []model.Equipment, id int64) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
