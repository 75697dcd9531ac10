package settings

import (
	"context"
	"time"

	"github.com/ITGlobers/return-app-pmi-poc/pkg/cache"
	"github.com/ITGlobers/return-app-pmi-poc/pkg/logger"
)

type Service interface {
	// Get returns the tenant settings, reading through the cache.
	Get(ctx context.Context) (*ReturnAppSettings, error)
	// Update persists new settings and invalidates the cache.
	Update(ctx context.Context, s *ReturnAppSettings) error
}

const (
	cacheKey = "returnapp:settings"
	cacheTTL = 5 * time.Minute
)

type service struct {
	repo  Repository
	cache cache.Cache
}

func NewService(repo Repository, c cache.Cache) Service {
	return &service{repo: repo, cache: c}
}

func (s *service) Get(ctx context.Context) (*ReturnAppSettings, error) {
	var cached ReturnAppSettings
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		// Cache trouble must not take settings reads down
		logger.Warn("settings cache read failed", err)
	}
	if found {
		return &cached, nil
	}

	loaded, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, loaded, cacheTTL); err != nil {
		logger.Warn("settings cache write failed", err)
	}
	return loaded, nil
}

func (s *service) Update(ctx context.Context, settings *ReturnAppSettings) error {
	if err := s.repo.Save(ctx, settings); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		logger.Warn("settings cache invalidation failed", err)
	}
	return nil
}
