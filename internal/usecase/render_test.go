package usecase

import (
	"context"
	"reflect"
	"testing"

	"github.com/vitrineapp/vitrine"
	"github.com/vitrineapp/vitrine/internal/domain"
)

func renderAssets(n int) []vitrine.MediaAsset {
	assets := make([]vitrine.MediaAsset, n)
	for i := range assets {
		assets[i] = vitrine.MediaAsset{
			ID:   string(rune('a' + i)),
			Kind: vitrine.MediaImage,
			MIME: "image/jpeg",
			Data: "payload",
		}
	}
	return assets
}

func TestRenderEmptyStorePlaceholder(t *testing.T) {
	store := vitrine.NewStore("New Shop")
	page := RenderStore(store, nil)

	if len(page.Sections) != 0 {
		t.Fatalf("expected no sections, got %d", len(page.Sections))
	}
	if page.Placeholder != PlaceholderEmptyStore {
		t.Fatalf("empty store must render the opening placeholder, got %q", page.Placeholder)
	}
}

func TestRenderHeroWithoutMedia(t *testing.T) {
	store := vitrine.NewStore("Shop").AddSection(vitrine.KindHero)
	page := RenderStore(store, nil)

	if len(page.Sections) != 1 || page.Sections[0].Hero == nil {
		t.Fatalf("expected one hero section, got %+v", page.Sections)
	}
	hero := page.Sections[0].Hero
	if len(hero.Slides) != 0 {
		t.Fatalf("expected no slides, got %d", len(hero.Slides))
	}
	if hero.Placeholder != PlaceholderEmptyHero {
		t.Fatalf("empty hero must render its placeholder, got %q", hero.Placeholder)
	}
}

func TestRenderHeroAutoplayGating(t *testing.T) {
	store := vitrine.NewStore("Shop").AddSection(vitrine.KindHero)
	id := store.Sections[0].ID
	store = store.UpdateContent(id, "autoplay", true)

	// One slide never rotates.
	one := store.AppendMedia(id, renderAssets(1), vitrine.DefaultCapacity)
	if RenderStore(one, nil).Sections[0].Hero.Autoplay {
		t.Fatalf("single slide must not autoplay")
	}

	two := store.AppendMedia(id, renderAssets(2), vitrine.DefaultCapacity)
	if !RenderStore(two, nil).Sections[0].Hero.Autoplay {
		t.Fatalf("two slides with autoplay on must rotate")
	}
}

func TestRenderGridActiveLimit(t *testing.T) {
	store := vitrine.NewStore("Shop").AddSection(vitrine.KindGrid)

	products := []domain.Product{
		{ID: "p1", Title: "One", Active: true, Price: 1, Currency: "USD"},
		{ID: "p2", Title: "Two", Active: false, Price: 2, Currency: "USD"},
		{ID: "p3", Title: "Three", Active: true, Price: 3, Currency: "USD"},
		{ID: "p4", Title: "Four", Active: true, Price: 4, Currency: "USD"},
		{ID: "p5", Title: "Five", Active: true, Price: 5, Currency: "USD"},
		{ID: "p6", Title: "Six", Active: true, Price: 6, Currency: "USD"},
	}

	page := RenderStore(store, products)
	grid := page.Sections[0].Grid
	if grid == nil {
		t.Fatalf("expected grid payload")
	}
	if len(grid.Cells) != GridProductLimit {
		t.Fatalf("expected %d cells, got %d", GridProductLimit, len(grid.Cells))
	}
	for _, cell := range grid.Cells {
		if cell.ID == "p2" {
			t.Fatalf("inactive product must not render")
		}
	}
	if grid.Cells[0].ID != "p1" || grid.Cells[3].ID != "p5" {
		t.Fatalf("cells must keep catalog order, got %+v", grid.Cells)
	}
}

func TestRenderTestimonialsEdit(t *testing.T) {
	store := vitrine.NewStore("Shop").AddSection(vitrine.KindTestimonials)
	id := store.Sections[0].ID
	store = store.UpdateContent(id, "items", []vitrine.Testimonial{
		{Name: "Ana", Text: "first"},
		{Name: "Luis", Text: "second"},
		{Name: "Mia", Text: "third"},
	})

	before := RenderStore(store, nil)
	store = store.UpdateContent(id, "items", []vitrine.Testimonial{
		{Name: "Ana", Text: "first"},
		{Name: "Luis", Text: "revised"},
		{Name: "Mia", Text: "third"},
	})
	after := RenderStore(store, nil)

	cards := after.Sections[0].Testimonials.Cards
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	if cards[1].Text != "revised" {
		t.Fatalf("middle card must carry the edit, got %q", cards[1].Text)
	}
	prev := before.Sections[0].Testimonials.Cards
	if cards[0] != prev[0] || cards[2] != prev[2] {
		t.Fatalf("only the edited card may change")
	}
}

func TestRenderSectionUnknownKindSkipped(t *testing.T) {
	sec := vitrine.Section{ID: "x", Kind: "popup", Content: nil}
	if RenderSection(sec, nil) != nil {
		t.Fatalf("unknown kind must be skipped, not rendered")
	}

	store := vitrine.NewStore("Shop").AddSection(vitrine.KindBanner)
	store.Sections = append(store.Sections, sec)
	page := RenderStore(store, nil)
	if len(page.Sections) != 1 || page.Sections[0].Banner == nil {
		t.Fatalf("document with an unknown section must still render the rest, got %+v", page.Sections)
	}
}

func TestRenderIsPure(t *testing.T) {
	store := vitrine.NewStore("Shop").
		AddSection(vitrine.KindHero).
		AddSection(vitrine.KindGrid).
		AddSection(vitrine.KindTestimonials)
	store = store.AppendMedia(store.Sections[0].ID, renderAssets(3), vitrine.DefaultCapacity)
	products := []domain.Product{{ID: "p1", Title: "One", Active: true}}

	first := RenderStore(store, products)
	second := RenderStore(store, products)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same inputs must render the same page")
	}
}

func TestRenderPreviewAndPublicDiffer(t *testing.T) {
	ctx := context.Background()
	drafts := newMockDraftRepository()
	published := newMockStoreRepository()
	render := NewRenderUsecase(drafts, published, &mockCatalogGateway{})

	store := vitrine.NewStore("Shop").AddSection(vitrine.KindBanner)
	if err := drafts.Save(ctx, store); err != nil {
		t.Fatal(err)
	}
	if err := published.Publish(ctx, store.RemoveSection(store.Sections[0].ID)); err != nil {
		t.Fatal(err)
	}

	preview, err := render.Preview(ctx, store.ID)
	if err != nil {
		t.Fatal(err)
	}
	public, err := render.PublicPage(ctx, store.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(preview.Sections) != 1 {
		t.Fatalf("preview must render the draft")
	}
	if len(public.Sections) != 0 || public.Placeholder != PlaceholderEmptyStore {
		t.Fatalf("public page must render the published copy, got %+v", public)
	}
}

func TestRenderProductPagePrimaryFirst(t *testing.T) {
	ctx := context.Background()
	var gallery vitrine.ProductGallery
	gallery = gallery.Append(renderAssets(3), vitrine.DefaultCapacity)
	gallery = gallery.SetPrimary("b")

	gateway := &mockCatalogGateway{products: []domain.Product{{
		ID:       "p1",
		StoreID:  "s1",
		Title:    "Vase",
		Price:    30,
		Currency: "EUR",
		Active:   true,
		Gallery:  gallery,
	}}}
	render := NewRenderUsecase(newMockDraftRepository(), newMockStoreRepository(), gateway)

	page, err := render.ProductPage(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Hero.Slides) != 3 {
		t.Fatalf("expected all gallery photos, got %d", len(page.Hero.Slides))
	}
	if page.Hero.Slides[0].AssetID != "b" {
		t.Fatalf("primary photo must lead the carousel, got %q", page.Hero.Slides[0].AssetID)
	}
	if page.Price != 30 || page.Currency != "EUR" {
		t.Fatalf("unexpected product fields: %+v", page)
	}
}
