package store

import (
	"context"
	"plants/models"

	"gorm.io/gorm"
)

// PlantStore owns every statement issued against the plants table.
// Mutations run inside a transaction that is rolled back on any error.
type PlantStore struct {
	db *gorm.DB
}

func NewPlantStore(db *gorm.DB) *PlantStore {
	return &PlantStore{db: db}
}

// List returns every plant ordered by id.
func (s *PlantStore) List(ctx context.Context) ([]models.Plant, error) {
	plants := make([]models.Plant, 0)
	err := s.db.WithContext(ctx).Order("id").Find(&plants).Error
	if err != nil {
		return nil, wrap("list plants", err)
	}
	return plants, nil
}

func (s *PlantStore) Get(ctx context.Context, id uint) (models.Plant, error) {
	var plant models.Plant
	err := s.db.WithContext(ctx).First(&plant, id).Error
	if err != nil {
		return models.Plant{}, wrap("get plant", err)
	}
	return plant, nil
}

// Create inserts name, image and price only; is_in_stock takes the column
// default. The stored row is read back inside the same transaction.
func (s *PlantStore) Create(ctx context.Context, name, image string, price float64) (models.Plant, error) {
	plant := models.Plant{
		Name:  name,
		Image: image,
		Price: price,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("IsInStock").Create(&plant).Error; err != nil {
			return err
		}
		return tx.First(&plant, plant.ID).Error
	})
	if err != nil {
		return models.Plant{}, wrap("create plant", err)
	}
	return plant, nil
}

// UpdateStock replaces is_in_stock when inStock is non-nil. A nil inStock
// leaves the row untouched but still reports a missing row.
func (s *PlantStore) UpdateStock(ctx context.Context, id uint, inStock *bool) (models.Plant, error) {
	var plant models.Plant

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&plant, id).Error; err != nil {
			return err
		}
		if inStock == nil {
			return nil
		}
		if err := tx.Model(&plant).Update("is_in_stock", *inStock).Error; err != nil {
			return err
		}
		plant.IsInStock = *inStock
		return nil
	})
	if err != nil {
		return models.Plant{}, wrap("update plant", err)
	}
	return plant, nil
}

func (s *PlantStore) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var plant models.Plant
		if err := tx.First(&plant, id).Error; err != nil {
			return err
		}
		return tx.Delete(&plant).Error
	})
	return wrap("delete plant", err)
}

func (s *PlantStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Plant{}).Count(&count).Error
	if err != nil {
		return 0, wrap("count plants", err)
	}
	return count, nil
}

// Ping checks that the underlying connection is usable.
func (s *PlantStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return wrap("ping", err)
	}
	return wrap("ping", sqlDB.PingContext(ctx))
}

func (s *PlantStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
