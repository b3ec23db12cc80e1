package usecase

import (
	"context"

	"github.com/vitrineapp/vitrine"
	"github.com/vitrineapp/vitrine/internal/domain"
)

// DraftRepository stores the mutable working copy of each store document.
type DraftRepository interface {
	Get(ctx context.Context, storeID string) (*vitrine.Store, error)
	Save(ctx context.Context, store vitrine.Store) error
	Delete(ctx context.Context, storeID string) error
}

// StoreRepository persists published store documents.
type StoreRepository interface {
	Publish(ctx context.Context, store vitrine.Store) error
	Get(ctx context.Context, storeID string) (*vitrine.Store, error)
	Delete(ctx context.Context, storeID string) error
}

// CatalogRepository persists products.
type CatalogRepository interface {
	Create(ctx context.Context, product domain.Product) error
	Save(ctx context.Context, product domain.Product) error
	Get(ctx context.Context, id string) (domain.Product, error)
	ListByStore(ctx context.Context, storeID string) ([]domain.Product, error)
	ListActive(ctx context.Context, storeID string, limit int) ([]domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// CatalogInvalidator drops cached catalog reads after a write.
type CatalogInvalidator interface {
	Forget(storeID string)
}

// CatalogGateway is the read-only catalog view the renderers consume.
type CatalogGateway interface {
	ActiveProducts(ctx context.Context, storeID string, limit int) ([]domain.Product, error)
	Product(ctx context.Context, id string) (domain.Product, error)
}

// EventPublisher notifies preview surfaces of document changes.
type EventPublisher interface {
	Publish(ctx context.Context, event vitrine.Event) error
}

// MediaNormalizer turns a raw upload into a bounded media asset.
type MediaNormalizer interface {
	Normalize(ctx context.Context, upload domain.Upload, profile domain.MediaProfile) (vitrine.MediaAsset, error)
}

// PageCache caches rendered public pages keyed by store ID.
type PageCache interface {
	Get(ctx context.Context, storeID string) ([]byte, bool)
	Set(ctx context.Context, storeID string, page []byte) error
	Invalidate(ctx context.Context, storeID string) error
}
