package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-catalog-ms/internal/model"
	"go-catalog-ms/pkg/cache"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const treeKeyPrefix = "product-tree"

// TreeCache keeps expanded product trees. A nil *TreeCache is a valid no-op.
// Cache failures are logged and never fail the request.
type TreeCache struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewTreeCache(c cache.Cache, ttl time.Duration) *TreeCache {
	return &TreeCache{cache: c, ttl: ttl}
}

func treeKey(id uuid.UUID) string {
	return treeKeyPrefix + ":" + id.String()
}

func (t *TreeCache) Get(ctx context.Context, id uuid.UUID) (*model.ProductTree, bool) {
	if t == nil {
		return nil, false
	}
	raw, err := t.cache.Get(ctx, treeKey(id))
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn().Err(err).Str("product_id", id.String()).Msg("tree cache read failed")
		}
		return nil, false
	}

	var tree model.ProductTree
	if err := json.Unmarshal(raw, &tree); err != nil {
		log.Warn().Err(err).Str("product_id", id.String()).Msg("tree cache entry unreadable")
		return nil, false
	}
	return &tree, true
}

func (t *TreeCache) Set(ctx context.Context, tree *model.ProductTree) {
	if t == nil {
		return
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		log.Warn().Err(err).Msg("tree cache encode failed")
		return
	}
	if err := t.cache.Set(ctx, treeKey(tree.ID), raw, t.ttl); err != nil {
		log.Warn().Err(err).Str("product_id", tree.ID.String()).Msg("tree cache write failed")
	}
}

// Invalidate drops every cached tree. A product can sit inside other
// products' trees as an answer, so a single write may stale many entries.
func (t *TreeCache) Invalidate(ctx context.Context) {
	if t == nil {
		return
	}
	if err := t.cache.DeletePrefix(ctx, treeKeyPrefix); err != nil {
		log.Warn().Err(err).Msg("tree cache invalidation failed")
	}
}
