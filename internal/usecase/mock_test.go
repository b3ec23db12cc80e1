package usecase

import (
	"context"

	"github.com/vitrineapp/vitrine"
	"github.com/vitrineapp/vitrine/internal/domain"
)

type mockDraftRepository struct {
	drafts map[string]vitrine.Store
}

func newMockDraftRepository() *mockDraftRepository {
	return &mockDraftRepository{drafts: make(map[string]vitrine.Store)}
}

func (m *mockDraftRepository) Get(ctx context.Context, storeID string) (*vitrine.Store, error) {
	store, ok := m.drafts[storeID]
	if !ok {
		return nil, domain.NotFoundError{Resource: "draft"}
	}
	return &store, nil
}

func (m *mockDraftRepository) Save(ctx context.Context, store vitrine.Store) error {
	m.drafts[store.ID] = store
	return nil
}

func (m *mockDraftRepository) Delete(ctx context.Context, storeID string) error {
	delete(m.drafts, storeID)
	return nil
}

type mockStoreRepository struct {
	published map[string]vitrine.Store
}

func newMockStoreRepository() *mockStoreRepository {
	return &mockStoreRepository{published: make(map[string]vitrine.Store)}
}

func (m *mockStoreRepository) Publish(ctx context.Context, store vitrine.Store) error {
	m.published[store.ID] = store
	return nil
}

func (m *mockStoreRepository) Get(ctx context.Context, storeID string) (*vitrine.Store, error) {
	store, ok := m.published[storeID]
	if !ok {
		return nil, domain.NotFoundError{Resource: "store"}
	}
	return &store, nil
}

func (m *mockStoreRepository) Delete(ctx context.Context, storeID string) error {
	delete(m.published, storeID)
	return nil
}

type mockPageCache struct {
	pages       map[string][]byte
	invalidated []string
}

func newMockPageCache() *mockPageCache {
	return &mockPageCache{pages: make(map[string][]byte)}
}

func (m *mockPageCache) Get(ctx context.Context, storeID string) ([]byte, bool) {
	page, ok := m.pages[storeID]
	return page, ok
}

func (m *mockPageCache) Set(ctx context.Context, storeID string, page []byte) error {
	m.pages[storeID] = page
	return nil
}

func (m *mockPageCache) Invalidate(ctx context.Context, storeID string) error {
	delete(m.pages, storeID)
	m.invalidated = append(m.invalidated, storeID)
	return nil
}

type mockEventPublisher struct {
	events []vitrine.Event
}

func (m *mockEventPublisher) Publish(ctx context.Context, event vitrine.Event) error {
	m.events = append(m.events, event)
	return nil
}

type mockCatalogRepository struct {
	products map[string]domain.Product
	order    []string
}

func newMockCatalogRepository() *mockCatalogRepository {
	return &mockCatalogRepository{products: make(map[string]domain.Product)}
}

func (m *mockCatalogRepository) Create(ctx context.Context, product domain.Product) error {
	m.products[product.ID] = product
	m.order = append(m.order, product.ID)
	return nil
}

func (m *mockCatalogRepository) Save(ctx context.Context, product domain.Product) error {
	if _, ok := m.products[product.ID]; !ok {
		return domain.NotFoundError{Resource: "product"}
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockCatalogRepository) Get(ctx context.Context, id string) (domain.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return domain.Product{}, domain.NotFoundError{Resource: "product"}
	}
	return product, nil
}

func (m *mockCatalogRepository) ListByStore(ctx context.Context, storeID string) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range m.order {
		if p, ok := m.products[id]; ok && p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockCatalogRepository) ListActive(ctx context.Context, storeID string, limit int) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range m.order {
		p, ok := m.products[id]
		if !ok || p.StoreID != storeID || !p.Active {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockCatalogRepository) Delete(ctx context.Context, id string) error {
	delete(m.products, id)
	return nil
}

type mockCatalogGateway struct {
	products []domain.Product
}

func (m *mockCatalogGateway) ActiveProducts(ctx context.Context, storeID string, limit int) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range m.products {
		if p.StoreID != storeID || !p.Active {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockCatalogGateway) Product(ctx context.Context, id string) (domain.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.NotFoundError{Resource: "product"}
}

// mockNormalizer rejects uploads whose filename the reject set names and
// fabricates a trivial asset for everything else.
type mockNormalizer struct {
	reject map[string]bool
}

func (m *mockNormalizer) Normalize(ctx context.Context, upload domain.Upload, profile domain.MediaProfile) (vitrine.MediaAsset, error) {
	if m.reject[upload.Filename] {
		return vitrine.MediaAsset{}, domain.MediaRejectedError{Filename: upload.Filename, Reason: "decode failed"}
	}
	return vitrine.MediaAsset{
		ID:   upload.Filename,
		Kind: vitrine.MediaImage,
		MIME: "image/jpeg",
		Data: "payload",
	}, nil
}
