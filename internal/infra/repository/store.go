package repository

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vitrineapp/vitrine"
	"github.com/vitrineapp/vitrine/internal/domain"
	"github.com/vitrineapp/vitrine/internal/infra/database/models"
)

// StoreRepository persists published store documents in postgres, with a
// publish log row per publish.
type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

func (r *StoreRepository) Publish(ctx context.Context, store vitrine.Store) error {
	document, err := json.Marshal(store)
	if err != nil {
		return err
	}

	row := models.Store{
		ID:       store.ID,
		Name:     store.Name,
		Document: string(document),
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "document", "published_at"}),
		}).Create(&row).Error; err != nil {
			return err
		}

		log := models.PublishLog{
			StoreID:  store.ID,
			Document: string(document),
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		return nil
	})
}

func (r *StoreRepository) Get(ctx context.Context, storeID string) (*vitrine.Store, error) {
	var row models.Store
	err := r.db.WithContext(ctx).
		Where("id = ?", storeID).
		Take(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.NotFoundError{Resource: "store"}
		}
		return nil, err
	}

	var store vitrine.Store
	if err := json.Unmarshal([]byte(row.Document), &store); err != nil {
		return nil, err
	}

	return &store, nil
}

func (r *StoreRepository) Delete(ctx context.Context, storeID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Store{}, "id = ?", storeID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.PublishLog{}, "store_id = ?", storeID).Error; err != nil {
			return err
		}
		return nil
	})
}
