package service

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"dealdesk/logger"
	"dealdesk/models"
	"dealdesk/repository"
)

const catalogCacheTTL = 5 * time.Minute

// CatalogService serves destinations and service offerings from a short-lived cache
type CatalogService struct {
	repository repository.CatalogRepositoryInterface
	cache      *cache.Cache
	log        *zap.SugaredLogger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(repo repository.CatalogRepositoryInterface, log *zap.SugaredLogger) *CatalogService {
	return &CatalogService{
		repository: repo,
		cache:      cache.New(catalogCacheTTL, 2*catalogCacheTTL),
		log:        logger.OrGlobal(log),
	}
}

func (s *CatalogService) Destination(ctx context.Context, id int64) (*models.Destination, error) {
	return cached(s, fmt.Sprintf("destination:%d", id), func() (*models.Destination, error) {
		return s.repository.GetDestination(ctx, id)
	})
}

func (s *CatalogService) Destinations(ctx context.Context) ([]models.Destination, error) {
	return cached(s, "destinations", func() ([]models.Destination, error) {
		return s.repository.ListDestinations(ctx)
	})
}

func (s *CatalogService) Offering(ctx context.Context, category models.ServiceCategory, id int64) (*models.ServiceOffering, error) {
	return cached(s, fmt.Sprintf("offering:%s:%d", category, id), func() (*models.ServiceOffering, error) {
		return s.repository.GetOffering(ctx, category, id)
	})
}

func (s *CatalogService) Offerings(ctx context.Context, category models.ServiceCategory) ([]models.ServiceOffering, error) {
	return cached(s, "offerings:"+string(category), func() ([]models.ServiceOffering, error) {
		return s.repository.ListOfferings(ctx, category)
	})
}

// cached returns the value under key, loading and storing it on a miss. Errors are not cached.
func cached[T any](s *CatalogService, key string, load func() (T, error)) (T, error) {
	if v, ok := s.cache.Get(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	s.cache.SetDefault(key, v)
	s.log.Debugf("📦 Catalog cache filled: %s", key)
	return v, nil
}
