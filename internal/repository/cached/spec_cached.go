// Package cached decorates a repository.SpecRepository with a read-through cache.
// Stored specs never change, so entries are never invalidated; cache failures
// fall through to the wrapped repository and are only logged.
package cached

import (
	"context"
	"encoding/json"
	"errors"

	"specshare/internal/cache"
	"specshare/internal/logger"
	"specshare/internal/model"
	"specshare/internal/repository"
)

// SpecRepository serves reads from the cache when possible.
type SpecRepository struct {
	next  repository.SpecRepository
	cache cache.Cache
	log   logger.Logger
}

// NewSpecRepository wraps next with c.
func NewSpecRepository(next repository.SpecRepository, c cache.Cache, log logger.Logger) *SpecRepository {
	return &SpecRepository{
		next:  next,
		cache: c,
		log:   log.With(logger.String("component", "spec_cache")),
	}
}

var _ repository.SpecRepository = (*SpecRepository)(nil)

func contentKey(id string) string { return "spec:content:" + id }
func rowKey(id string) string { return "spec:row:" + id }

// Create inserts through the wrapped repository and primes both projections.
func (r *SpecRepository) Create(ctx context.Context, spec *model.Spec) (*model.Spec, error) {
	stored, err := r.next.Create(ctx, spec)
	if err != nil {
		return nil, err
	}
	r.store(ctx, contentKey(stored.ID), []byte(stored.Content))
	r.storeRow(ctx, stored)
	return stored, nil
}

// FindContent returns the cached content or loads and caches it.
func (r *SpecRepository) FindContent(ctx context.Context, id string) (string, error) {
	if b, ok := r.load(ctx, contentKey(id)); ok {
		return string(b), nil
	}

	content, err := r.next.FindContent(ctx, id)
	if err != nil {
		return "", err
	}
	r.store(ctx, contentKey(id), []byte(content))
	return content, nil
}

// FindByID returns the cached row or loads and caches it.
func (r *SpecRepository) FindByID(ctx context.Context, id string) (*model.Spec, error) {
	if b, ok := r.load(ctx, rowKey(id)); ok {
		var spec model.Spec
		if err := json.Unmarshal(b, &spec); err == nil {
			return &spec, nil
		}
		r.log.Warn("cache_decode_failed", logger.String("key", rowKey(id)))
	}

	spec, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.storeRow(ctx, spec)
	return spec, nil
}

func (r *SpecRepository) load(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			r.log.Warn("cache_get_failed", logger.String("key", key), logger.Err(err))
		}
		return nil, false
	}
	return b, true
}

func (r *SpecRepository) storeRow(ctx context.Context, spec *model.Spec) {
	b, err := json.Marshal(spec)
	if err != nil {
		return
	}
	r.store(ctx, rowKey(spec.ID), b)
}

func (r *SpecRepository) store(ctx context.Context, key string, value []byte) {
	if err := r.cache.Set(ctx, key, value); err != nil {
		r.log.Warn("cache_set_failed", logger.String("key", key), logger.Err(err))
	}
}
