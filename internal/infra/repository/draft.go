package repository

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/vitrineapp/vitrine"
	"github.com/vitrineapp/vitrine/internal/domain"
)

// DraftRepository keeps the working copy of each store document as one JSON
// value in redis, replaced wholesale on every mutation.
type DraftRepository struct {
	rdb *redis.Client
}

func NewDraftRepository(rdb *redis.Client) *DraftRepository {
	return &DraftRepository{rdb: rdb}
}

func draftKey(storeID string) string {
	return "draft:" + storeID
}

func (r *DraftRepository) Get(ctx context.Context, storeID string) (*vitrine.Store, error) {
	raw, err := r.rdb.Get(ctx, draftKey(storeID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.NotFoundError{Resource: "draft"}
		}
		return nil, err
	}

	var store vitrine.Store
	if err := json.Unmarshal([]byte(raw), &store); err != nil {
		return nil, err
	}

	return &store, nil
}

func (r *DraftRepository) Save(ctx context.Context, store vitrine.Store) error {
	raw, err := json.Marshal(store)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, draftKey(store.ID), raw, 0).Err()
}

func (r *DraftRepository) Delete(ctx context.Context, storeID string) error {
	return r.rdb.Del(ctx, draftKey(storeID)).Err()
}
