package usecase

import (
	"context"
	"testing"

	"github.com/vitrineapp/vitrine"
	"github.com/vitrineapp/vitrine/internal/domain"
)

func uploads(names ...string) []domain.Upload {
	out := make([]domain.Upload, len(names))
	for i, name := range names {
		out[i] = domain.Upload{Filename: name, ContentType: "image/png", Data: []byte("x")}
	}
	return out
}

func TestAttachStoreMediaBatch(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture()
	media := NewMediaUsecase(&mockNormalizer{}, f.uc, nil, 4)

	store, err := f.uc.Create(ctx, "Shop")
	if err != nil {
		t.Fatal(err)
	}
	store, err = f.uc.AddSection(ctx, store.ID, vitrine.KindHero)
	if err != nil {
		t.Fatal(err)
	}
	sectionID := store.Sections[0].ID

	store, result, err := media.AttachStoreMedia(ctx, store.ID, sectionID, uploads("a.png", "b.png", "c.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Assets) != 3 || len(result.Rejected) != 0 {
		t.Fatalf("unexpected batch result: %+v", result)
	}

	hero := store.Sections[0].Content.(vitrine.HeroContent)
	if len(hero.Media) != 3 {
		t.Fatalf("expected 3 attached assets, got %d", len(hero.Media))
	}
	// Input order survives the parallel normalization.
	for i, name := range []string{"a.png", "b.png", "c.png"} {
		if hero.Media[i].ID != name {
			t.Fatalf("asset order broken at %d: got %q", i, hero.Media[i].ID)
		}
	}
}

func TestAttachStoreMediaPartialRejection(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture()
	normalizer := &mockNormalizer{reject: map[string]bool{"bad.png": true}}
	media := NewMediaUsecase(normalizer, f.uc, nil, 2)

	store, err := f.uc.Create(ctx, "Shop")
	if err != nil {
		t.Fatal(err)
	}
	store, err = f.uc.AddSection(ctx, store.ID, vitrine.KindHero)
	if err != nil {
		t.Fatal(err)
	}
	sectionID := store.Sections[0].ID

	store, result, err := media.AttachStoreMedia(ctx, store.ID, sectionID, uploads("a.png", "bad.png", "c.png"))
	if err != nil {
		t.Fatalf("a rejection must not fail the batch: %v", err)
	}
	if len(result.Assets) != 2 {
		t.Fatalf("expected 2 accepted assets, got %d", len(result.Assets))
	}
	if len(result.Rejected) != 1 || result.Rejected[0].Filename != "bad.png" {
		t.Fatalf("unexpected rejections: %+v", result.Rejected)
	}

	hero := store.Sections[0].Content.(vitrine.HeroContent)
	if len(hero.Media) != 2 || hero.Media[0].ID != "a.png" || hero.Media[1].ID != "c.png" {
		t.Fatalf("accepted assets must keep input order: %+v", hero.Media)
	}
}

func TestAttachStoreMediaSectionDeletedMidFlight(t *testing.T) {
	ctx := context.Background()
	f := newStoreFixture()
	media := NewMediaUsecase(&mockNormalizer{}, f.uc, nil, 1)

	store, err := f.uc.Create(ctx, "Shop")
	if err != nil {
		t.Fatal(err)
	}

	// The section is gone by the time the batch resolves.
	store, result, err := media.AttachStoreMedia(ctx, store.ID, "deleted-section", uploads("a.png"))
	if err != nil {
		t.Fatalf("attach to a vanished section must be a no-op, got %v", err)
	}
	if len(result.Assets) != 1 {
		t.Fatalf("normalization itself must still succeed")
	}
	if len(store.Sections) != 0 {
		t.Fatalf("document must be unchanged")
	}
}

func TestAttachProductPhotosPrimary(t *testing.T) {
	ctx := context.Background()
	repo := newMockCatalogRepository()
	catalog := NewCatalogUsecase(repo, nil)
	media := NewMediaUsecase(&mockNormalizer{}, nil, catalog, 2)

	product, err := catalog.Create(ctx, ProductInput{StoreID: "s1", Title: "Mug", Price: 12})
	if err != nil {
		t.Fatal(err)
	}

	product, result, err := media.AttachProductPhotos(ctx, product.ID, uploads("front.png", "back.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Assets) != 2 {
		t.Fatalf("expected 2 photos, got %+v", result)
	}
	if product.Gallery.Primary != "front.png" {
		t.Fatalf("first photo must become primary, got %q", product.Gallery.Primary)
	}
}

func TestNormalizeBatchParallelFloor(t *testing.T) {
	// A zero or negative parallelism setting degrades to serial, never to a
	// panic inside errgroup.
	uc := NewMediaUsecase(&mockNormalizer{}, nil, nil, 0)
	result := uc.normalizeBatch(context.Background(), uploads("a.png", "b.png"), domain.StoreMediaProfile)
	if len(result.Assets) != 2 {
		t.Fatalf("expected 2 assets, got %+v", result)
	}
}
