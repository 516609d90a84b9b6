package service

import (
	"context"
	"time"

	"go-cms-app/internal/cache"
	"go-cms-app/internal/validator"
)

const (
	appNameCacheKey = "config:app_name"
	appNameCacheTTL = 5 * time.Minute
)

// ConfigRepository defines the persistence gateway for the app config row.
type ConfigRepository interface {
	GetAppName(ctx context.Context) (string, error)
	SetAppName(ctx context.Context, name string) error
}

// ConfigService reads and updates the application-wide settings. Reads go
// through the cache since the app name is fetched on every client load;
// updates invalidate the cached entry.
type ConfigService struct {
	repo  ConfigRepository
	cache *cache.Cache
}

// NewConfigService creates a new ConfigService.
func NewConfigService(repo ConfigRepository, c *cache.Cache) *ConfigService {
	return &ConfigService{repo: repo, cache: c}
}

// GetAppName returns the configured application name.
func (s *ConfigService) GetAppName(ctx context.Context) (string, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(appNameCacheKey); err == nil && cached != nil {
			return string(cached), nil
		}
	}

	name, err := s.repo.GetAppName(ctx)
	if err != nil {
		return "", err
	}
	if s.cache != nil {
		// Cache failures only cost the next read a query.
		_ = s.cache.Set(appNameCacheKey, []byte(name), appNameCacheTTL)
	}
	return name, nil
}

// SetAppName updates the application name. The route policy restricts this
// to admins; the value itself just has to be non-empty.
func (s *ConfigService) SetAppName(ctx context.Context, name string) error {
	v := validator.New()
	v.Check(validator.NotBlank(name), "appName", "cannot be empty")
	if !v.Valid() {
		return v.Err()
	}

	if err := s.repo.SetAppName(ctx, name); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(appNameCacheKey)
	}
	return nil
}
