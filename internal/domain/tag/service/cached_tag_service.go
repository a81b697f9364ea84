package service

import (
	"context"
	"fmt"
	"time"

	"blog_crud_jwt/internal/domain/tag/model"
	"blog_crud_jwt/internal/domain/tag/repository"
	"blog_crud_jwt/pkg/cache"
	"blog_crud_jwt/pkg/logger"
	"blog_crud_jwt/pkg/metrics"

	"go.uber.org/zap"
)

// CachedTagService reads the tag catalogue through the cache layer.
// Writes go straight to the store and invalidate the affected keys.
type CachedTagService struct {
	inner TagService
	cache cache.CacheService
}

func NewCachedTagService(repo repository.TagRepository, cache cache.CacheService) TagService {
	return &CachedTagService{
		inner: NewTagService(repo),
		cache: cache,
	}
}

const (
	TagCacheKeyPrefix     = "tag:"
	TagListCacheKeyPrefix = "tag_list:"
	TagCacheTTL           = time.Hour * 2
	TagListCacheTTL       = time.Minute * 30
)

func (s *CachedTagService) getTagCacheKey(id string) string {
	return fmt.Sprintf("%s%s", TagCacheKeyPrefix, id)
}

func (s *CachedTagService) getTagListCacheKey(page, limit int) string {
	return fmt.Sprintf("%s%d:%d", TagListCacheKeyPrefix, page, limit)
}

func (s *CachedTagService) invalidateTagCache(ctx context.Context, tagID string) {
	if err := s.cache.Delete(ctx, s.getTagCacheKey(tagID)); err != nil {
		s.warn("invalidate tag cache", err)
	}
	if err := s.cache.InvalidatePattern(ctx, TagListCacheKeyPrefix+"*"); err != nil {
		s.warn("invalidate tag list cache", err)
	}
}

// Cache failures never fail the request.
func (s *CachedTagService) warn(op string, err error) {
	if logger.Log != nil {
		logger.Log.Warn("tag cache", zap.String("op", op), zap.Error(err))
	}
}

func (s *CachedTagService) CreateTag(params CreateTagParams) (*model.Tag, error) {
	tag, err := s.inner.CreateTag(params)
	if err != nil {
		return nil, err
	}
	if err := s.cache.InvalidatePattern(context.Background(), TagListCacheKeyPrefix+"*"); err != nil {
		s.warn("invalidate tag list cache", err)
	}
	return tag, nil
}

func (s *CachedTagService) GetTag(id string) (*model.Tag, error) {
	ctx := context.Background()
	cacheKey := s.getTagCacheKey(id)

	var tag model.Tag
	if err := s.cache.Get(ctx, cacheKey, &tag); err == nil {
		metrics.GetGlobalCollector().RecordCacheHit("tag")
		return &tag, nil
	}
	metrics.GetGlobalCollector().RecordCacheMiss("tag")

	fresh, err := s.inner.GetTag(id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, fresh, TagCacheTTL); err != nil {
		s.warn("cache tag", err)
	}
	return fresh, nil
}

func (s *CachedTagService) GetTags(page, limit int) ([]model.Tag, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	ctx := context.Background()
	cacheKey := s.getTagListCacheKey(page, limit)

	var cached struct {
		Tags  []model.Tag `json:"tags"`
		Total int64       `json:"total"`
	}
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		metrics.GetGlobalCollector().RecordCacheHit("tag_list")
		return cached.Tags, cached.Total, nil
	}
	metrics.GetGlobalCollector().RecordCacheMiss("tag_list")

	tags, total, err := s.inner.GetTags(page, limit)
	if err != nil {
		return nil, 0, err
	}

	cached.Tags = tags
	cached.Total = total
	if err := s.cache.Set(ctx, cacheKey, cached, TagListCacheTTL); err != nil {
		s.warn("cache tag list", err)
	}
	return tags, total, nil
}

func (s *CachedTagService) UpdateTag(id string, patch TagPatch) (*model.Tag, error) {
	tag, err := s.inner.UpdateTag(id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidateTagCache(context.Background(), id)
	return tag, nil
}

func (s *CachedTagService) DeleteTag(id string) error {
	if err := s.inner.DeleteTag(id); err != nil {
		return err
	}
	s.invalidateTagCache(context.Background(), id)
	return nil
}
