package usecase

import (
	"context"

	"github.com/vitrineapp/vitrine"
	"github.com/vitrineapp/vitrine/internal/domain"
)

// ProductInput creates a new catalog product.
type ProductInput struct {
	StoreID     string  `json:"storeId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
}

// ProductUpdate merges the set fields into an existing product.
type ProductUpdate struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

type CatalogUsecase struct {
	repo        CatalogRepository
	invalidator CatalogInvalidator
}

func NewCatalogUsecase(repo CatalogRepository, invalidator CatalogInvalidator) *CatalogUsecase {
	return &CatalogUsecase{repo: repo, invalidator: invalidator}
}

func (uc *CatalogUsecase) forget(storeID string) {
	if uc.invalidator != nil {
		uc.invalidator.Forget(storeID)
	}
}

func (uc *CatalogUsecase) Create(ctx context.Context, input ProductInput) (domain.Product, error) {
	product := domain.Product{
		ID:          vitrine.NewID(),
		StoreID:     input.StoreID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Currency:    input.Currency,
		Active:      true,
	}
	if product.Currency == "" {
		product.Currency = "USD"
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return domain.Product{}, err
	}
	uc.forget(product.StoreID)
	return product, nil
}

func (uc *CatalogUsecase) Update(ctx context.Context, id string, update ProductUpdate) (domain.Product, error) {
	product, err := uc.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if update.Title != nil {
		product.Title = *update.Title
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Currency != nil {
		product.Currency = *update.Currency
	}
	if update.Active != nil {
		product.Active = *update.Active
	}
	if err := uc.repo.Save(ctx, product); err != nil {
		return domain.Product{}, err
	}
	uc.forget(product.StoreID)
	return product, nil
}

func (uc *CatalogUsecase) Get(ctx context.Context, id string) (domain.Product, error) {
	return uc.repo.Get(ctx, id)
}

func (uc *CatalogUsecase) ListByStore(ctx context.Context, storeID string) ([]domain.Product, error) {
	return uc.repo.ListByStore(ctx, storeID)
}

func (uc *CatalogUsecase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.forget(product.StoreID)
	return nil
}

func (uc *CatalogUsecase) AttachPhotos(ctx context.Context, productID string, assets []vitrine.MediaAsset) (domain.Product, error) {
	product, err := uc.repo.Get(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}
	product.Gallery = product.Gallery.Append(assets, vitrine.DefaultCapacity)
	if err := uc.repo.Save(ctx, product); err != nil {
		return domain.Product{}, err
	}
	uc.forget(product.StoreID)
	return product, nil
}

func (uc *CatalogUsecase) RemovePhoto(ctx context.Context, productID string, index int) (domain.Product, error) {
	product, err := uc.repo.Get(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}
	product.Gallery = product.Gallery.Remove(index)
	if err := uc.repo.Save(ctx, product); err != nil {
		return domain.Product{}, err
	}
	uc.forget(product.StoreID)
	return product, nil
}

func (uc *CatalogUsecase) SetPrimaryPhoto(ctx context.Context, productID, assetID string) (domain.Product, error) {
	product, err := uc.repo.Get(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}
	product.Gallery = product.Gallery.SetPrimary(assetID)
	if err := uc.repo.Save(ctx, product); err != nil {
		return domain.Product{}, err
	}
	uc.forget(product.StoreID)
	return product, nil
}
