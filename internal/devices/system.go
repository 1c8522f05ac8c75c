// Package devices manages devices and their installed software versions.
// Reads go through a cached aggregate view that is invalidated after every
// successful mutation.
package devices

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// System defines device inventory operations.
type System interface {
	// List returns every device with its software versions, ordered by
	// creation time ascending.
	List(ctx context.Context) ([]Device, error)

	// Find returns one device from the aggregate view.
	// Returns ErrNotFound if the device does not exist.
	Find(ctx context.Context, id uuid.UUID) (*Device, error)

	// Create validates and stores a device and its non-blank software versions.
	Create(ctx context.Context, cmd CreateCommand) (*Device, error)

	// Update replaces a device's fields and its full software version set.
	// Returns ErrNotFound if the device does not exist.
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) error

	// Delete removes a device and every software version it owns.
	// Returns ErrNotFound if the device does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

type system struct {
	repo   *repo
	cache  *aggregateCache
	logger *slog.Logger
}

// New creates a device system over store.
func New(store Store, logger *slog.Logger) System {
	logger = logger.With("system", "device")
	return &system{
		repo:   &repo{store: store, logger: logger},
		cache:  newAggregateCache(),
		logger: logger,
	}
}

func (s *system) List(ctx context.Context) ([]Device, error) {
	return s.cache.get(ctx, s.repo.List)
}

func (s *system) Find(ctx context.Context, id uuid.UUID) (*Device, error) {
	devices, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range devices {
		if devices[i].ID == id {
			return &devices[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *system) Create(ctx context.Context, cmd CreateCommand) (*Device, error) {
	d, err := s.repo.Create(ctx, cmd)
	if err != nil {
		return nil, err
	}
	s.cache.invalidate()
	return d, nil
}

func (s *system) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) error {
	if err := s.repo.Update(ctx, id, cmd); err != nil {
		return err
	}
	s.cache.invalidate()
	return nil
}

func (s *system) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate()
	return nil
}
