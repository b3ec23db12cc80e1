package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/vitrineapp/vitrine/internal/domain"
	"github.com/vitrineapp/vitrine/internal/usecase"
)

// CatalogGateway is the read path the renderers use: repository lookups
// behind a short in-process TTL cache, since the grid renders on every
// public page view.
type CatalogGateway struct {
	repo  usecase.CatalogRepository
	cache *cache.Cache
}

func NewCatalogGateway(repo usecase.CatalogRepository) *CatalogGateway {
	return &CatalogGateway{
		repo:  repo,
		cache: cache.New(1*time.Minute, 5*time.Minute),
	}
}

func (g *CatalogGateway) ActiveProducts(ctx context.Context, storeID string, limit int) ([]domain.Product, error) {
	key := fmt.Sprintf("active:%s:%d", storeID, limit)
	if cached, ok := g.cache.Get(key); ok {
		return cached.([]domain.Product), nil
	}

	products, err := g.repo.ListActive(ctx, storeID, limit)
	if err != nil {
		return nil, err
	}

	g.cache.Set(key, products, cache.DefaultExpiration)
	return products, nil
}

func (g *CatalogGateway) Product(ctx context.Context, id string) (domain.Product, error) {
	key := "product:" + id
	if cached, ok := g.cache.Get(key); ok {
		return cached.(domain.Product), nil
	}

	product, err := g.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	g.cache.Set(key, product, cache.DefaultExpiration)
	return product, nil
}

// Forget drops cached listings for a store after catalog writes.
func (g *CatalogGateway) Forget(storeID string) {
	prefix := "active:" + storeID + ":"
	for key := range g.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			g.cache.Delete(key)
		}
	}
}
