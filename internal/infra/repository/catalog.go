package repository

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/vitrineapp/vitrine"
	"github.com/vitrineapp/vitrine/internal/domain"
	"github.com/vitrineapp/vitrine/internal/infra/database/models"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func toProductRow(product domain.Product) (models.Product, error) {
	gallery, err := json.Marshal(product.Gallery)
	if err != nil {
		return models.Product{}, err
	}
	return models.Product{
		ID:          product.ID,
		StoreID:     product.StoreID,
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Currency:    product.Currency,
		Active:      product.Active,
		Gallery:     string(gallery),
	}, nil
}

func fromProductRow(row models.Product) (domain.Product, error) {
	product := domain.Product{
		ID:          row.ID,
		StoreID:     row.StoreID,
		Title:       row.Title,
		Description: row.Description,
		Price:       row.Price,
		Currency:    row.Currency,
		Active:      row.Active,
	}
	if row.Gallery != "" {
		var gallery vitrine.ProductGallery
		if err := json.Unmarshal([]byte(row.Gallery), &gallery); err != nil {
			return domain.Product{}, err
		}
		product.Gallery = gallery
	}
	return product, nil
}

func (r *CatalogRepository) Create(ctx context.Context, product domain.Product) error {
	row, err := toProductRow(product)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *CatalogRepository) Save(ctx context.Context, product domain.Product) error {
	row, err := toProductRow(product)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"title":       row.Title,
			"description": row.Description,
			"price":       row.Price,
			"currency":    row.Currency,
			"active":      row.Active,
			"gallery":     row.Gallery,
		}).Error
}

func (r *CatalogRepository) Get(ctx context.Context, id string) (domain.Product, error) {
	var row models.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Product{}, domain.NotFoundError{Resource: "product"}
		}
		return domain.Product{}, err
	}
	return fromProductRow(row)
}

func (r *CatalogRepository) ListByStore(ctx context.Context, storeID string) ([]domain.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("c_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromProductRows(rows)
}

func (r *CatalogRepository) ListActive(ctx context.Context, storeID string, limit int) ([]domain.Product, error) {
	var rows []models.Product
	query := r.db.WithContext(ctx).
		Where("store_id = ? AND active = ?", storeID, true).
		Order("c_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return fromProductRows(rows)
}

func (r *CatalogRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

func fromProductRows(rows []models.Product) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		product, err := fromProductRow(row)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}
