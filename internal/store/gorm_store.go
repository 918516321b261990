package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"equipment-tracker-backend/internal/model"
)

// gormStore implements Store on a relational database through GORM.
// Rows are returned in id order, which matches collection order because ids
// are assigned in increasing sequence.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Load(ctx context.Context) ([]model.Equipment, error) {
	records := []model.Equipment{}
	if err := s.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, loadErr(fmt.Errorf("failed to query equipment: %w", err))
	}
	return records, nil
}

// Save replaces every row inside one transaction.
func (s *gormStore) Save(ctx context.Context, records []model.Equipment) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Equipment{}).Error; err != nil {
			return fmt.Errorf("failed to clear equipment: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("failed to insert %d equipment rows: %w", len(records), err)
		}
		return nil
	})
	if err != nil {
		return saveErr(err)
	}
	return nil
}

func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
