package vitrine

import (
	"encoding/json"
	"reflect"
	"testing"
)

func testStore(kinds ...SectionKind) Store {
	store := NewStore("Test Shop")
	for _, kind := range kinds {
		store = store.AddSection(kind)
	}
	return store
}

func testAssets(n int) []MediaAsset {
	assets := make([]MediaAsset, n)
	for i := range assets {
		assets[i] = MediaAsset{
			ID:   string(rune('a' + i)),
			Kind: MediaImage,
			MIME: "image/jpeg",
			Data: "payload",
		}
	}
	return assets
}

func sectionOrder(s Store) []string {
	ids := make([]string, len(s.Sections))
	for i, sec := range s.Sections {
		ids[i] = sec.ID
	}
	return ids
}

func TestAddSectionDefaults(t *testing.T) {
	store := testStore(KindHero, KindGrid, KindBanner, KindTestimonials)

	if len(store.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(store.Sections))
	}
	for _, sec := range store.Sections {
		if sec.Content == nil {
			t.Fatalf("section %s has no content", sec.Kind)
		}
		if sec.Content.SectionKind() != sec.Kind {
			t.Fatalf("content kind %s does not match section kind %s", sec.Content.SectionKind(), sec.Kind)
		}
	}
}

func TestAddSectionInvalidKind(t *testing.T) {
	store := testStore().AddSection("popup")
	if len(store.Sections) != 0 {
		t.Fatalf("invalid kind must not add a section")
	}
}

func TestRemoveSectionStaleID(t *testing.T) {
	store := testStore(KindHero, KindBanner)
	out := store.RemoveSection("no-such-id")
	if len(out.Sections) != 2 {
		t.Fatalf("stale remove must be a no-op, got %d sections", len(out.Sections))
	}
}

func TestMoveSectionBounds(t *testing.T) {
	store := testStore(KindHero, KindGrid, KindBanner)
	original := sectionOrder(store)

	if got := sectionOrder(store.MoveSection(0, -1)); !reflect.DeepEqual(got, original) {
		t.Fatalf("moving first up must be a no-op")
	}
	if got := sectionOrder(store.MoveSection(len(store.Sections)-1, 1)); !reflect.DeepEqual(got, original) {
		t.Fatalf("moving last down must be a no-op")
	}
	if got := sectionOrder(store.MoveSection(7, 1)); !reflect.DeepEqual(got, original) {
		t.Fatalf("out-of-range move must be a no-op")
	}
}

func TestMoveSectionRoundTrip(t *testing.T) {
	store := testStore(KindHero, KindGrid, KindBanner, KindTestimonials)
	original := sectionOrder(store)

	moved := store.MoveSection(1, 1)
	back := moved.MoveSection(2, -1)
	if got := sectionOrder(back); !reflect.DeepEqual(got, original) {
		t.Fatalf("move down then up must restore order: got %v want %v", got, original)
	}
}

func TestUpdateContentFieldWhitelist(t *testing.T) {
	store := testStore(KindBanner)
	id := store.Sections[0].ID

	out := store.UpdateContent(id, "title", "Sale week")
	banner := out.Sections[0].Content.(BannerContent)
	if banner.Title != "Sale week" {
		t.Fatalf("title not merged, got %q", banner.Title)
	}

	// A field from another kind's schema must not land anywhere.
	out = out.UpdateContent(id, "autoplay", true)
	if !reflect.DeepEqual(out.Sections[0].Content, banner) {
		t.Fatalf("foreign field must be ignored")
	}

	// A wrong-typed value is ignored too.
	out = out.UpdateContent(id, "title", 42)
	if out.Sections[0].Content.(BannerContent).Title != "Sale week" {
		t.Fatalf("wrong-typed value must be ignored")
	}
}

func TestUpdateContentKindImmutable(t *testing.T) {
	store := testStore(KindHero)
	id := store.Sections[0].ID

	out := store.UpdateContent(id, "transition", "slide")
	if out.Sections[0].Kind != KindHero {
		t.Fatalf("kind changed")
	}
	hero := out.Sections[0].Content.(HeroContent)
	if hero.Transition != TransitionSlide {
		t.Fatalf("transition not merged, got %q", hero.Transition)
	}

	out = out.UpdateContent(id, "transition", "zoom")
	if out.Sections[0].Content.(HeroContent).Transition != TransitionSlide {
		t.Fatalf("invalid transition must be ignored")
	}
}

func TestUpdateContentStaleSection(t *testing.T) {
	store := testStore(KindGrid)
	out := store.UpdateContent("gone", "title", "x")
	if !reflect.DeepEqual(out.Sections, store.Sections) {
		t.Fatalf("stale section update must be a no-op")
	}
}

func TestAppendMediaCapacity(t *testing.T) {
	store := testStore(KindHero)
	id := store.Sections[0].ID

	out := store.AppendMedia(id, testAssets(6), DefaultCapacity)
	hero := out.Sections[0].Content.(HeroContent)
	if len(hero.Media) != 5 {
		t.Fatalf("expected 5 media after appending 6, got %d", len(hero.Media))
	}

	// Overflow is dropped, not queued.
	out = out.AppendMedia(id, testAssets(2), DefaultCapacity)
	if got := len(out.Sections[0].Content.(HeroContent).Media); got != 5 {
		t.Fatalf("expected list to stay at 5, got %d", got)
	}
}

func TestAppendMediaPartialRoom(t *testing.T) {
	store := testStore(KindHero)
	id := store.Sections[0].ID

	out := store.AppendMedia(id, testAssets(3), DefaultCapacity)
	out = out.AppendMedia(id, testAssets(4), DefaultCapacity)
	hero := out.Sections[0].Content.(HeroContent)
	if len(hero.Media) != 5 {
		t.Fatalf("expected min(4, 5-3)=2 more assets for a total of 5, got %d", len(hero.Media))
	}
}

func TestRemoveMediaOutOfRange(t *testing.T) {
	store := testStore(KindHero)
	id := store.Sections[0].ID
	store = store.AppendMedia(id, testAssets(2), DefaultCapacity)

	out := store.RemoveMedia(id, 5)
	if got := len(out.Sections[0].Content.(HeroContent).Media); got != 2 {
		t.Fatalf("out-of-range remove must be a no-op, got %d", got)
	}

	out = store.RemoveMedia(id, 0)
	hero := out.Sections[0].Content.(HeroContent)
	if len(hero.Media) != 1 || hero.Media[0].ID != "b" {
		t.Fatalf("expected second asset to remain, got %+v", hero.Media)
	}
}

func TestMutationsCopyOnWrite(t *testing.T) {
	store := testStore(KindHero, KindTestimonials)
	heroID := store.Sections[0].ID

	before, err := json.Marshal(store)
	if err != nil {
		t.Fatal(err)
	}

	_ = store.AppendMedia(heroID, testAssets(3), DefaultCapacity)
	_ = store.RemoveSection(heroID)
	_ = store.UpdateContent(heroID, "title", "changed")
	_ = store.MoveSection(0, 1)

	after, err := json.Marshal(store)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Fatalf("input store was mutated in place")
	}
}

func TestStoreDocumentRoundTrip(t *testing.T) {
	store := testStore(KindHero, KindGrid, KindBanner, KindTestimonials)
	heroID := store.Sections[0].ID
	store = store.AppendMedia(heroID, testAssets(2), DefaultCapacity)
	store = store.UpdateContent(heroID, "autoplay", true)
	store = store.UpdateContent(store.Sections[3].ID, "items", []Testimonial{
		{Name: "Ana", Text: "Great"},
		{Name: "Luis", Text: "Fast shipping"},
	})
	store.Social = SocialLinks{Instagram: "https://instagram.com/test"}

	raw, err := json.Marshal(store)
	if err != nil {
		t.Fatal(err)
	}

	var decoded Store
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(store, decoded) {
		t.Fatalf("document did not round-trip:\n got %+v\nwant %+v", decoded, store)
	}
}

func TestSectionCodecUnknownKind(t *testing.T) {
	raw := []byte(`{"id":"x","kind":"popup","content":{"anything":true}}`)

	var sec Section
	if err := json.Unmarshal(raw, &sec); err != nil {
		t.Fatalf("unknown kind must not fail decoding: %v", err)
	}
	if sec.Content != nil {
		t.Fatalf("unknown kind must carry no content")
	}
}

func TestUpdateContentTestimonialsFromJSON(t *testing.T) {
	store := testStore(KindTestimonials)
	id := store.Sections[0].ID

	// The property panel sends items as decoded JSON, not typed values.
	value := []any{
		map[string]any{"name": "Ana", "text": "Great"},
		map[string]any{"name": "Luis", "text": "Fast"},
	}
	out := store.UpdateContent(id, "items", value)
	items := out.Sections[0].Content.(TestimonialsContent).Items
	if len(items) != 2 || items[1].Text != "Fast" {
		t.Fatalf("items not merged from JSON shape: %+v", items)
	}
}
