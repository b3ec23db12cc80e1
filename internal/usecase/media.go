package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vitrineapp/vitrine"
	"github.com/vitrineapp/vitrine/internal/domain"
)

// BatchRejection reports one upload that failed normalization.
type BatchRejection struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// BatchResult is the outcome of one upload batch. Assets keep the input
// order regardless of which file finished normalizing first.
type BatchResult struct {
	Assets   []vitrine.MediaAsset `json:"assets"`
	Rejected []BatchRejection     `json:"rejected,omitempty"`
}

// MediaUsecase runs upload batches through the normalizer with bounded
// parallelism and attaches the successes atomically.
type MediaUsecase struct {
	normalizer MediaNormalizer
	stores     *StoreUsecase
	catalog    *CatalogUsecase
	parallel   int
}

func NewMediaUsecase(normalizer MediaNormalizer, stores *StoreUsecase, catalog *CatalogUsecase, parallel int) *MediaUsecase {
	if parallel < 1 {
		parallel = 1
	}
	return &MediaUsecase{
		normalizer: normalizer,
		stores:     stores,
		catalog:    catalog,
		parallel:   parallel,
	}
}

// normalizeBatch processes each file independently; a rejection aborts that
// one item only and the batch continues.
func (uc *MediaUsecase) normalizeBatch(ctx context.Context, uploads []domain.Upload, profile domain.MediaProfile) BatchResult {
	assets := make([]*vitrine.MediaAsset, len(uploads))
	failures := make([]error, len(uploads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.parallel)
	for i, upload := range uploads {
		i, upload := i, upload
		g.Go(func() error {
			asset, err := uc.normalizer.Normalize(gctx, upload, profile)
			if err != nil {
				failures[i] = err
				return nil
			}
			assets[i] = &asset
			return nil
		})
	}
	_ = g.Wait()

	var result BatchResult
	for i := range uploads {
		if assets[i] != nil {
			result.Assets = append(result.Assets, *assets[i])
			continue
		}
		reason := "normalization failed"
		if failures[i] != nil {
			reason = failures[i].Error()
		}
		result.Rejected = append(result.Rejected, BatchRejection{
			Filename: uploads[i].Filename,
			Reason:   reason,
		})
	}
	return result
}

// AttachStoreMedia normalizes a batch and appends all successes to the hero
// section's media list in a single document mutation. If the section was
// deleted while the batch was in flight, the append is the defined no-op.
func (uc *MediaUsecase) AttachStoreMedia(ctx context.Context, storeID, sectionID string, uploads []domain.Upload) (vitrine.Store, BatchResult, error) {
	result := uc.normalizeBatch(ctx, uploads, domain.StoreMediaProfile)
	store, err := uc.stores.AppendMedia(ctx, storeID, sectionID, result.Assets)
	if err != nil {
		return vitrine.Store{}, result, err
	}
	return store, result, nil
}

// NormalizeLogo processes a single store logo upload.
func (uc *MediaUsecase) NormalizeLogo(ctx context.Context, upload domain.Upload) (vitrine.MediaAsset, error) {
	return uc.normalizer.Normalize(ctx, upload, domain.StoreMediaProfile)
}

// AttachProductPhotos runs the same pipeline for the product gallery, which
// carries the primary-photo invariant on top of the shared capacity rules.
func (uc *MediaUsecase) AttachProductPhotos(ctx context.Context, productID string, uploads []domain.Upload) (domain.Product, BatchResult, error) {
	result := uc.normalizeBatch(ctx, uploads, domain.ProductGalleryProfile)
	product, err := uc.catalog.AttachPhotos(ctx, productID, result.Assets)
	if err != nil {
		return domain.Product{}, result, err
	}
	return product, result, nil
}

// NormalizeAttachment is the support-ticket call site: one file in, one
// bounded descriptor out, nothing persisted here.
func (uc *MediaUsecase) NormalizeAttachment(ctx context.Context, upload domain.Upload) (vitrine.MediaAsset, error) {
	return uc.normalizer.Normalize(ctx, upload, domain.TicketAttachmentProfile)
}
