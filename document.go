package vitrine

import "encoding/json"

// DefaultCapacity is the fixed maximum number of media items a hero section
// or a product gallery may hold.
const DefaultCapacity = 5

func NewStore(name string) Store {
	return Store{
		ID:       NewID(),
		Name:     name,
		Sections: []Section{},
	}
}

// DefaultContent returns the kind-appropriate empty content for a freshly
// added section. Returns nil for an unknown kind.
func DefaultContent(kind SectionKind) SectionContent {
	switch kind {
	case KindHero:
		return HeroContent{
			Title:      "Welcome",
			CTALabel:   "Shop now",
			Media:      []MediaAsset{},
			Transition: TransitionFade,
		}
	case KindGrid:
		return GridContent{Title: "Our products"}
	case KindBanner:
		return BannerContent{}
	case KindTestimonials:
		return TestimonialsContent{Items: []Testimonial{}}
	}
	return nil
}

func NewSection(kind SectionKind) Section {
	return Section{
		ID:      NewID(),
		Kind:    kind,
		Content: DefaultContent(kind),
	}
}

// Clone deep-copies the store document. Mutations always operate on a clone
// so the previous value stays valid for any renderer still holding it.
func (s Store) Clone() Store {
	out := s
	if s.Logo != nil {
		logo := *s.Logo
		out.Logo = &logo
	}
	out.Sections = make([]Section, len(s.Sections))
	for i, sec := range s.Sections {
		sec.Content = cloneContent(sec.Content)
		out.Sections[i] = sec
	}
	return out
}

func cloneContent(c SectionContent) SectionContent {
	switch v := c.(type) {
	case HeroContent:
		media := make([]MediaAsset, len(v.Media))
		copy(media, v.Media)
		v.Media = media
		return v
	case TestimonialsContent:
		items := make([]Testimonial, len(v.Items))
		copy(items, v.Items)
		v.Items = items
		return v
	default:
		return c
	}
}

func (s Store) sectionIndex(id string) int {
	for i, sec := range s.Sections {
		if sec.ID == id {
			return i
		}
	}
	return -1
}

// AddSection appends a new section with kind-appropriate default content.
// An invalid kind is ignored.
func (s Store) AddSection(kind SectionKind) Store {
	out := s.Clone()
	if !kind.Valid() {
		return out
	}
	out.Sections = append(out.Sections, NewSection(kind))
	return out
}

// RemoveSection deletes the section by identifier. A stale identifier is a
// no-op; the editor must stay usable after any dangling reference.
func (s Store) RemoveSection(id string) Store {
	out := s.Clone()
	i := out.sectionIndex(id)
	if i < 0 {
		return out
	}
	out.Sections = append(out.Sections[:i], out.Sections[i+1:]...)
	return out
}

// MoveSection swaps the section at index with its neighbor at index+dir.
// Out-of-bounds moves are no-ops; the order never wraps around.
func (s Store) MoveSection(index, dir int) Store {
	out := s.Clone()
	target := index + dir
	if index < 0 || index >= len(out.Sections) || target < 0 || target >= len(out.Sections) {
		return out
	}
	out.Sections[index], out.Sections[target] = out.Sections[target], out.Sections[index]
	return out
}

// UpdateContent merges one field into the section's content record. Fields
// that do not belong to the section kind's schema are ignored, as are values
// of the wrong type; the kind itself can never change.
func (s Store) UpdateContent(sectionID, field string, value any) Store {
	out := s.Clone()
	i := out.sectionIndex(sectionID)
	if i < 0 {
		return out
	}

	switch c := out.Sections[i].Content.(type) {
	case HeroContent:
		switch field {
		case "title":
			if v, ok := value.(string); ok {
				c.Title = v
			}
		case "subtitle":
			if v, ok := value.(string); ok {
				c.Subtitle = v
			}
		case "ctaLabel":
			if v, ok := value.(string); ok {
				c.CTALabel = v
			}
		case "autoplay":
			if v, ok := value.(bool); ok {
				c.Autoplay = v
			}
		case "transition":
			if v, ok := asTransition(value); ok {
				c.Transition = v
			}
		}
		out.Sections[i].Content = c
	case GridContent:
		switch field {
		case "title":
			if v, ok := value.(string); ok {
				c.Title = v
			}
		case "subtitle":
			if v, ok := value.(string); ok {
				c.Subtitle = v
			}
		}
		out.Sections[i].Content = c
	case BannerContent:
		switch field {
		case "title":
			if v, ok := value.(string); ok {
				c.Title = v
			}
		case "subtitle":
			if v, ok := value.(string); ok {
				c.Subtitle = v
			}
		}
		out.Sections[i].Content = c
	case TestimonialsContent:
		if field == "items" {
			if items, ok := asTestimonials(value); ok {
				c.Items = items
			}
		}
		out.Sections[i].Content = c
	}

	return out
}

// AppendMedia appends up to capacity-current assets to a hero section's
// media list. Overflow assets are silently dropped, not queued. Non-hero
// sections and stale identifiers are no-ops.
func (s Store) AppendMedia(sectionID string, assets []MediaAsset, capacity int) Store {
	out := s.Clone()
	i := out.sectionIndex(sectionID)
	if i < 0 {
		return out
	}
	c, ok := out.Sections[i].Content.(HeroContent)
	if !ok {
		return out
	}
	room := capacity - len(c.Media)
	if room <= 0 {
		return out
	}
	if len(assets) > room {
		assets = assets[:room]
	}
	c.Media = append(c.Media, assets...)
	out.Sections[i].Content = c
	return out
}

// RemoveMedia removes one asset from a hero section by index. Out-of-range
// indexes are no-ops.
func (s Store) RemoveMedia(sectionID string, index int) Store {
	out := s.Clone()
	i := out.sectionIndex(sectionID)
	if i < 0 {
		return out
	}
	c, ok := out.Sections[i].Content.(HeroContent)
	if !ok {
		return out
	}
	if index < 0 || index >= len(c.Media) {
		return out
	}
	c.Media = append(c.Media[:index], c.Media[index+1:]...)
	out.Sections[i].Content = c
	return out
}

func asTransition(value any) (Transition, bool) {
	switch v := value.(type) {
	case Transition:
		if v == TransitionFade || v == TransitionSlide {
			return v, true
		}
	case string:
		t := Transition(v)
		if t == TransitionFade || t == TransitionSlide {
			return t, true
		}
	}
	return "", false
}

// asTestimonials accepts either a typed item slice or the []any shape that
// comes out of a decoded JSON request body.
func asTestimonials(value any) ([]Testimonial, bool) {
	if items, ok := value.([]Testimonial); ok {
		out := make([]Testimonial, len(items))
		copy(out, items)
		return out, true
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, false
	}
	var items []Testimonial
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}
