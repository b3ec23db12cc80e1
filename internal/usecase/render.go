package usecase

import (
	"context"

	"github.com/vitrineapp/vitrine"
	"github.com/vitrineapp/vitrine/internal/domain"
)

// GridProductLimit caps how many catalog products a grid section shows.
const GridProductLimit = 4

// Placeholder copy for empty states.
const (
	PlaceholderEmptyStore = "Grand opening soon"
	PlaceholderEmptyHero  = "Visual artifact pending"
)

// SlideView is one carousel slide derived from a media asset.
type SlideView struct {
	AssetID string `json:"assetId"`
	Kind    string `json:"kind"`
	Src     string `json:"src"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

type HeroView struct {
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle,omitempty"`
	CTALabel    string      `json:"ctaLabel,omitempty"`
	Slides      []SlideView `json:"slides"`
	Autoplay    bool        `json:"autoplay"`
	Transition  string      `json:"transition"`
	Placeholder string      `json:"placeholder,omitempty"`
}

type ProductCard struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	PhotoSrc string  `json:"photoSrc,omitempty"`
}

type GridView struct {
	Title    string        `json:"title,omitempty"`
	Subtitle string        `json:"subtitle,omitempty"`
	Cells    []ProductCard `json:"cells"`
}

type BannerView struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
}

type TestimonialCard struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type TestimonialsView struct {
	Cards []TestimonialCard `json:"cards"`
}

// RenderedSection is the surface-agnostic presentational output for one
// section. Exactly one of the kind payloads is set.
type RenderedSection struct {
	ID           string              `json:"id"`
	Kind         vitrine.SectionKind `json:"kind"`
	Hero         *HeroView           `json:"hero,omitempty"`
	Grid         *GridView           `json:"grid,omitempty"`
	Banner       *BannerView         `json:"banner,omitempty"`
	Testimonials *TestimonialsView   `json:"testimonials,omitempty"`
}

// PageView is the rendered page: the same structure backs the editor
// canvas, the embedded preview and the public page. Only the host chrome
// differs per surface.
type PageView struct {
	StoreID     string              `json:"storeId"`
	StoreName   string              `json:"storeName"`
	LogoSrc     string              `json:"logoSrc,omitempty"`
	Social      vitrine.SocialLinks `json:"social"`
	Sections    []RenderedSection   `json:"sections"`
	Placeholder string              `json:"placeholder,omitempty"`
}

// ProductPageView backs the single-product page, reusing the hero renderer
// for the gallery.
type ProductPageView struct {
	StoreID     string   `json:"storeId"`
	ProductID   string   `json:"productId"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Hero        HeroView `json:"hero"`
}

func assetSrc(a vitrine.MediaAsset) string {
	return "data:" + a.MIME + ";base64," + a.Data
}

// RenderSection maps one section to presentational output. It is a pure
// function of its inputs; every surface calls this same code. An unknown
// kind or a missing content record yields nil and the section is skipped,
// so one malformed section never blanks the page.
func RenderSection(sec vitrine.Section, products []domain.Product) *RenderedSection {
	out := RenderedSection{ID: sec.ID, Kind: sec.Kind}

	switch c := sec.Content.(type) {
	case vitrine.HeroContent:
		out.Hero = renderHero(c)
	case vitrine.GridContent:
		out.Grid = renderGrid(c, products)
	case vitrine.BannerContent:
		out.Banner = &BannerView{Title: c.Title, Subtitle: c.Subtitle}
	case vitrine.TestimonialsContent:
		out.Testimonials = renderTestimonials(c)
	default:
		return nil
	}

	return &out
}

func renderHero(c vitrine.HeroContent) *HeroView {
	view := HeroView{
		Title:      c.Title,
		Subtitle:   c.Subtitle,
		CTALabel:   c.CTALabel,
		Slides:     []SlideView{},
		Transition: string(c.Transition),
	}

	limit := len(c.Media)
	if limit > vitrine.DefaultCapacity {
		limit = vitrine.DefaultCapacity
	}
	for _, asset := range c.Media[:limit] {
		view.Slides = append(view.Slides, SlideView{
			AssetID: asset.ID,
			Kind:    string(asset.Kind),
			Src:     assetSrc(asset),
			Width:   asset.Width,
			Height:  asset.Height,
		})
	}

	if len(view.Slides) == 0 {
		view.Placeholder = PlaceholderEmptyHero
	}
	// A single slide never rotates.
	view.Autoplay = c.Autoplay && len(view.Slides) > 1

	return &view
}

func renderGrid(c vitrine.GridContent, products []domain.Product) *GridView {
	view := GridView{
		Title:    c.Title,
		Subtitle: c.Subtitle,
		Cells:    []ProductCard{},
	}
	for _, p := range products {
		if !p.Active {
			continue
		}
		card := ProductCard{
			ID:       p.ID,
			Title:    p.Title,
			Price:    p.Price,
			Currency: p.Currency,
		}
		if photo, ok := p.Gallery.PrimaryPhoto(); ok {
			card.PhotoSrc = assetSrc(photo)
		}
		view.Cells = append(view.Cells, card)
		if len(view.Cells) == GridProductLimit {
			break
		}
	}
	return &view
}

func renderTestimonials(c vitrine.TestimonialsContent) *TestimonialsView {
	view := TestimonialsView{Cards: []TestimonialCard{}}
	for _, item := range c.Items {
		view.Cards = append(view.Cards, TestimonialCard{Name: item.Name, Text: item.Text})
	}
	return &view
}

// RenderStore renders the full section sequence in order.
func RenderStore(store vitrine.Store, products []domain.Product) PageView {
	page := PageView{
		StoreID:   store.ID,
		StoreName: store.Name,
		Social:    store.Social,
		Sections:  []RenderedSection{},
	}
	if store.Logo != nil {
		page.LogoSrc = assetSrc(*store.Logo)
	}
	for _, sec := range store.Sections {
		if rendered := RenderSection(sec, products); rendered != nil {
			page.Sections = append(page.Sections, *rendered)
		}
	}
	if len(store.Sections) == 0 {
		page.Placeholder = PlaceholderEmptyStore
	}
	return page
}

// RenderUsecase resolves the document and catalog inputs for each surface
// and hands them to the pure renderer.
type RenderUsecase struct {
	drafts    DraftRepository
	published StoreRepository
	catalog   CatalogGateway
}

func NewRenderUsecase(drafts DraftRepository, published StoreRepository, catalog CatalogGateway) *RenderUsecase {
	return &RenderUsecase{
		drafts:    drafts,
		published: published,
		catalog:   catalog,
	}
}

// Preview renders the draft document for the editor canvas and the live
// preview frame.
func (uc *RenderUsecase) Preview(ctx context.Context, storeID string) (PageView, error) {
	store, err := uc.drafts.Get(ctx, storeID)
	if err != nil {
		return PageView{}, err
	}
	products, err := uc.catalog.ActiveProducts(ctx, storeID, GridProductLimit)
	if err != nil {
		return PageView{}, err
	}
	return RenderStore(*store, products), nil
}

// PublicPage renders the published document for anonymous visitors.
func (uc *RenderUsecase) PublicPage(ctx context.Context, storeID string) (PageView, error) {
	store, err := uc.published.Get(ctx, storeID)
	if err != nil {
		return PageView{}, err
	}
	products, err := uc.catalog.ActiveProducts(ctx, storeID, GridProductLimit)
	if err != nil {
		return PageView{}, err
	}
	return RenderStore(*store, products), nil
}

// ProductPage renders the single-product page through the same hero
// renderer, gallery photos ordered primary-first.
func (uc *RenderUsecase) ProductPage(ctx context.Context, productID string) (ProductPageView, error) {
	product, err := uc.catalog.Product(ctx, productID)
	if err != nil {
		return ProductPageView{}, err
	}

	media := make([]vitrine.MediaAsset, 0, len(product.Gallery.Photos))
	if primary, ok := product.Gallery.PrimaryPhoto(); ok {
		media = append(media, primary)
		for _, p := range product.Gallery.Photos {
			if p.ID != primary.ID {
				media = append(media, p)
			}
		}
	}

	hero := renderHero(vitrine.HeroContent{
		Title:      product.Title,
		Subtitle:   product.Description,
		Media:      media,
		Transition: vitrine.TransitionSlide,
	})

	return ProductPageView{
		StoreID:     product.StoreID,
		ProductID:   product.ID,
		Description: product.Description,
		Price:       product.Price,
		Currency:    product.Currency,
		Hero:        *hero,
	}, nil
}
