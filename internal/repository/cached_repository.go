package repository

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yukikurage/organization-registry/internal/chain"
	"github.com/yukikurage/organization-registry/internal/models"
)

// CachedOrganizationRepository keeps recently read organization records in an
// LRU cache in front of another OrganizationRepository. Every other call is
// passed through.
type CachedOrganizationRepository struct {
	OrganizationRepository

	// mu orders cache fills against creations so a slow read cannot put a
	// replaced record back into the cache.
	mu    sync.RWMutex
	cache *lru.Cache[chain.Hash, models.Organization]
}

// NewCachedOrganizationRepository wraps next with a cache of size entries.
func NewCachedOrganizationRepository(next OrganizationRepository, size int) (*CachedOrganizationRepository, error) {
	cache, err := lru.New[chain.Hash, models.Organization](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create organization cache: %w", err)
	}
	return &CachedOrganizationRepository{OrganizationRepository: next, cache: cache}, nil
}

// ApplyCreation writes through and refreshes the cached record on success.
func (r *CachedOrganizationRepository) ApplyCreation(ctx context.Context, c *Creation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.OrganizationRepository.ApplyCreation(ctx, c); err != nil {
		r.cache.Remove(c.Organization.ID)
		return err
	}
	r.cache.Add(c.Organization.ID, c.Organization)
	return nil
}

// FindByID serves from the cache, filling it on a miss.
func (r *CachedOrganizationRepository) FindByID(ctx context.Context, id chain.Hash) (*models.Organization, error) {
	if org, ok := r.cache.Get(id); ok {
		return &org, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	org, err := r.OrganizationRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Add(id, *org)
	return org, nil
}

// Len reports the number of cached organizations.
func (r *CachedOrganizationRepository) Len() int {
	return r.cache.Len()
}
