// Package service provides application business logic (submissions, reviews,
// public catalog, accounts, uploads and statistics).
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"childrenlk/internal/cache"
	"childrenlk/internal/middleware"
	"childrenlk/internal/models"
	"childrenlk/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	tagSuggestLimit = 20
	tagCacheTTL     = 5 * time.Minute
	tagCachePrefix  = "tags:prefix:"
)

// TagService maintains the tag registry used for autocomplete.
type TagService struct {
	tagRepo repository.TagRepository
	rdb     *redis.Client
}

// NewTagService returns a new TagService. rdb may be nil to disable caching.
func NewTagService(tagRepo repository.TagRepository, rdb *redis.Client) *TagService {
	return &TagService{tagRepo: tagRepo, rdb: rdb}
}

// Suggest returns up to 20 registered tags starting with prefix.
func (s *TagService) Suggest(ctx context.Context, prefix string) ([]string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	return cache.Aside(ctx, s.rdb, tagCachePrefix+prefix, tagCacheTTL, func(ctx context.Context) ([]string, error) {
		return s.tagRepo.Search(ctx, prefix, tagSuggestLimit)
	})
}

// Register upserts tags into the registry. Failures are logged and swallowed.
func (s *TagService) Register(ctx context.Context, tags []string) {
	tags = models.NormalizeTags(tags)
	if len(tags) == 0 {
		return
	}
	if err := s.tagRepo.Upsert(ctx, tags); err != nil {
		middleware.Logger.WarnContext(ctx, "tag registry upsert failed",
			slog.Int("count", len(tags)),
			slog.String("error", err.Error()),
		)
		return
	}
	cache.Invalidate(ctx, s.rdb, tagCachePrefix+"*")
}
