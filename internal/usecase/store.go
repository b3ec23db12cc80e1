package usecase

import (
	"context"
	"log/slog"

	"github.com/vitrineapp/vitrine"
)

// StoreUsecase drives the document lifecycle: draft mutations through the
// pure mutation API, and publishing the draft to the public surface. Every
// mutation replaces the draft document wholesale.
type StoreUsecase struct {
	drafts    DraftRepository
	published StoreRepository
	pages     PageCache
	signal    EventPublisher
}

func NewStoreUsecase(drafts DraftRepository, published StoreRepository, pages PageCache, signal EventPublisher) *StoreUsecase {
	return &StoreUsecase{
		drafts:    drafts,
		published: published,
		pages:     pages,
		signal:    signal,
	}
}

func (uc *StoreUsecase) Create(ctx context.Context, name string) (vitrine.Store, error) {
	store := vitrine.NewStore(name)
	if err := uc.drafts.Save(ctx, store); err != nil {
		return vitrine.Store{}, err
	}
	return store, nil
}

func (uc *StoreUsecase) GetDraft(ctx context.Context, storeID string) (*vitrine.Store, error) {
	return uc.drafts.Get(ctx, storeID)
}

func (uc *StoreUsecase) GetPublished(ctx context.Context, storeID string) (*vitrine.Store, error) {
	return uc.published.Get(ctx, storeID)
}

func (uc *StoreUsecase) Delete(ctx context.Context, storeID string) error {
	if err := uc.drafts.Delete(ctx, storeID); err != nil {
		return err
	}
	if err := uc.published.Delete(ctx, storeID); err != nil {
		return err
	}
	if err := uc.pages.Invalidate(ctx, storeID); err != nil {
		slog.WarnContext(ctx, "page cache invalidation failed",
			slog.String("storeId", storeID), slog.String("error", err.Error()))
	}
	uc.emit(ctx, vitrine.Event{Type: vitrine.EventStoreDeleted, StoreID: storeID})
	return nil
}

// apply loads the draft, runs one pure mutation and saves the result. The
// event is best-effort; a dropped signal only delays the preview.
func (uc *StoreUsecase) apply(ctx context.Context, storeID, sectionID string, mutate func(vitrine.Store) vitrine.Store) (vitrine.Store, error) {
	current, err := uc.drafts.Get(ctx, storeID)
	if err != nil {
		return vitrine.Store{}, err
	}
	next := mutate(*current)
	if err := uc.drafts.Save(ctx, next); err != nil {
		return vitrine.Store{}, err
	}
	uc.emit(ctx, vitrine.Event{Type: vitrine.EventStoreUpdated, StoreID: storeID, SectionID: sectionID})
	return next, nil
}

func (uc *StoreUsecase) emit(ctx context.Context, event vitrine.Event) {
	if uc.signal == nil {
		return
	}
	if err := uc.signal.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "event publish failed",
			slog.String("type", event.Type),
			slog.String("storeId", event.StoreID),
			slog.String("error", err.Error()))
	}
}

func (uc *StoreUsecase) AddSection(ctx context.Context, storeID string, kind vitrine.SectionKind) (vitrine.Store, error) {
	return uc.apply(ctx, storeID, "", func(s vitrine.Store) vitrine.Store {
		return s.AddSection(kind)
	})
}

func (uc *StoreUsecase) RemoveSection(ctx context.Context, storeID, sectionID string) (vitrine.Store, error) {
	return uc.apply(ctx, storeID, sectionID, func(s vitrine.Store) vitrine.Store {
		return s.RemoveSection(sectionID)
	})
}

func (uc *StoreUsecase) MoveSection(ctx context.Context, storeID string, index, dir int) (vitrine.Store, error) {
	return uc.apply(ctx, storeID, "", func(s vitrine.Store) vitrine.Store {
		return s.MoveSection(index, dir)
	})
}

func (uc *StoreUsecase) UpdateContent(ctx context.Context, storeID, sectionID, field string, value any) (vitrine.Store, error) {
	return uc.apply(ctx, storeID, sectionID, func(s vitrine.Store) vitrine.Store {
		return s.UpdateContent(sectionID, field, value)
	})
}

// AppendMedia attaches a normalized batch in one document replacement, so
// the renderer never observes a partial interleaving.
func (uc *StoreUsecase) AppendMedia(ctx context.Context, storeID, sectionID string, assets []vitrine.MediaAsset) (vitrine.Store, error) {
	return uc.apply(ctx, storeID, sectionID, func(s vitrine.Store) vitrine.Store {
		return s.AppendMedia(sectionID, assets, vitrine.DefaultCapacity)
	})
}

func (uc *StoreUsecase) RemoveMedia(ctx context.Context, storeID, sectionID string, index int) (vitrine.Store, error) {
	return uc.apply(ctx, storeID, sectionID, func(s vitrine.Store) vitrine.Store {
		return s.RemoveMedia(sectionID, index)
	})
}

func (uc *StoreUsecase) Rename(ctx context.Context, storeID, name string) (vitrine.Store, error) {
	return uc.apply(ctx, storeID, "", func(s vitrine.Store) vitrine.Store {
		out := s.Clone()
		out.Name = name
		return out
	})
}

func (uc *StoreUsecase) UpdateSocial(ctx context.Context, storeID string, social vitrine.SocialLinks) (vitrine.Store, error) {
	return uc.apply(ctx, storeID, "", func(s vitrine.Store) vitrine.Store {
		out := s.Clone()
		out.Social = social
		return out
	})
}

func (uc *StoreUsecase) SetLogo(ctx context.Context, storeID string, logo *vitrine.MediaAsset) (vitrine.Store, error) {
	return uc.apply(ctx, storeID, "", func(s vitrine.Store) vitrine.Store {
		out := s.Clone()
		out.Logo = logo
		return out
	})
}

// Publish hands the current draft to the persistence collaborator and
// invalidates the cached public page.
func (uc *StoreUsecase) Publish(ctx context.Context, storeID string) error {
	draft, err := uc.drafts.Get(ctx, storeID)
	if err != nil {
		return err
	}
	if err := uc.published.Publish(ctx, *draft); err != nil {
		return err
	}
	if err := uc.pages.Invalidate(ctx, storeID); err != nil {
		slog.WarnContext(ctx, "page cache invalidation failed",
			slog.String("storeId", storeID), slog.String("error", err.Error()))
	}
	uc.emit(ctx, vitrine.Event{Type: vitrine.EventStorePublished, StoreID: storeID})
	return nil
}
