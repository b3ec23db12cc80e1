package vitrine

import (
	"encoding/json"
	"fmt"
)

// SectionKind is the closed enumeration of section types a storefront page
// is composed of. The content shape is determined by the kind; the codec and
// the mutation validator keep the two from drifting apart.
type SectionKind string

const (
	KindHero         SectionKind = "hero"
	KindGrid         SectionKind = "grid"
	KindBanner       SectionKind = "banner"
	KindTestimonials SectionKind = "testimonials"
)

func (k SectionKind) Valid() bool {
	switch k {
	case KindHero, KindGrid, KindBanner, KindTestimonials:
		return true
	}
	return false
}

// Kinds lists every addable section kind, in palette order.
func Kinds() []SectionKind {
	return []SectionKind{KindHero, KindGrid, KindBanner, KindTestimonials}
}

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaAsset is a normalized, size-bounded media payload embedded directly
// in a section's content. ID is a content hash of the encoded payload.
type MediaAsset struct {
	ID     string    `json:"id"`
	Kind   MediaKind `json:"kind"`
	MIME   string    `json:"mime"`
	Data   string    `json:"data"` // base64 of the encoded payload
	Width  int       `json:"width,omitempty"`
	Height int       `json:"height,omitempty"`
}

type Transition string

const (
	TransitionFade  Transition = "fade"
	TransitionSlide Transition = "slide"
)

// SectionContent is the sealed content variant carried by a Section. Exactly
// one implementation exists per SectionKind.
type SectionContent interface {
	SectionKind() SectionKind
}

type HeroContent struct {
	Title      string       `json:"title"`
	Subtitle   string       `json:"subtitle"`
	CTALabel   string       `json:"ctaLabel"`
	Media      []MediaAsset `json:"media"`
	Autoplay   bool         `json:"autoplay"`
	Transition Transition   `json:"transition"`
}

func (HeroContent) SectionKind() SectionKind { return KindHero }

type GridContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

func (GridContent) SectionKind() SectionKind { return KindGrid }

type BannerContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

func (BannerContent) SectionKind() SectionKind { return KindBanner }

type Testimonial struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type TestimonialsContent struct {
	Items []Testimonial `json:"items"`
}

func (TestimonialsContent) SectionKind() SectionKind { return KindTestimonials }

// Section is one typed block of page content. Kind is immutable after
// creation; Content always matches Kind.
type Section struct {
	ID      string         `json:"id"`
	Kind    SectionKind    `json:"kind"`
	Content SectionContent `json:"content"`
}

// UnmarshalJSON dispatches the content payload on the kind tag. An unknown
// kind leaves Content nil; the renderer skips such sections instead of
// failing the whole document.
func (s *Section) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID      string          `json:"id"`
		Kind    SectionKind     `json:"kind"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	s.ID = raw.ID
	s.Kind = raw.Kind
	s.Content = nil

	if len(raw.Content) == 0 || string(raw.Content) == "null" {
		return nil
	}

	switch raw.Kind {
	case KindHero:
		var c HeroContent
		if err := json.Unmarshal(raw.Content, &c); err != nil {
			return fmt.Errorf("invalid hero content: %w", err)
		}
		s.Content = c
	case KindGrid:
		var c GridContent
		if err := json.Unmarshal(raw.Content, &c); err != nil {
			return fmt.Errorf("invalid grid content: %w", err)
		}
		s.Content = c
	case KindBanner:
		var c BannerContent
		if err := json.Unmarshal(raw.Content, &c); err != nil {
			return fmt.Errorf("invalid banner content: %w", err)
		}
		s.Content = c
	case KindTestimonials:
		var c TestimonialsContent
		if err := json.Unmarshal(raw.Content, &c); err != nil {
			return fmt.Errorf("invalid testimonials content: %w", err)
		}
		s.Content = c
	}

	return nil
}

type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	WhatsApp  string `json:"whatsapp,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Store is one storefront: an ordered section sequence plus identity chrome.
// Store values are treated as immutable; every mutation returns a fresh copy.
type Store struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Logo     *MediaAsset `json:"logo,omitempty"`
	Sections []Section   `json:"sections"`
	Social   SocialLinks `json:"social"`
}

// Event is a change notification emitted after every applied mutation and on
// publish, consumed by the live preview surfaces.
type Event struct {
	Type      string `json:"type"`
	StoreID   string `json:"storeId"`
	SectionID string `json:"sectionId,omitempty"`
}

const (
	EventStoreUpdated   = "store-updated"
	EventStorePublished = "store-published"
	EventStoreDeleted   = "store-deleted"
)
