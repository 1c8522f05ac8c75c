package devices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

type repo struct {
	store  Store
	logger *slog.Logger
}

func (r *repo) List(ctx context.Context) ([]Device, error) {
	return fetchAggregate(ctx, r.store)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Device, error) {
	fields, err := ValidateFields(cmd.Device)
	if err != nil {
		return nil, err
	}
	versions := FilterVersions(cmd.SoftwareVersions)

	var d Device
	err = r.store.InTx(ctx, func(s Store) error {
		created, err := s.InsertDevice(ctx, fields)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDeviceCreate, err)
		}

		created.SoftwareVersions = []SoftwareVersion{}
		if len(versions) > 0 {
			inserted, err := s.InsertVersions(ctx, created.ID, versions)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrSoftwareVersionInsert, err)
			}
			created.SoftwareVersions = inserted
		}

		d = created
		return nil
	})
	if err != nil {
		return nil, withKind(err, ErrDeviceCreate, ErrSoftwareVersionInsert)
	}

	r.logger.Info("device created", "id", d.ID, "name", d.Name, "versions", len(d.SoftwareVersions))
	return &d, nil
}

// Update runs update, delete-all, insert-all in that order.
func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) error {
	fields, err := ValidateFields(cmd.Device)
	if err != nil {
		return err
	}
	versions := FilterVersions(cmd.SoftwareVersions)

	err = r.store.InTx(ctx, func(s Store) error {
		if err := s.UpdateDevice(ctx, id, fields); err != nil {
			return fmt.Errorf("%w: %w", ErrDeviceUpdate, err)
		}
		if err := s.DeleteVersions(ctx, id); err != nil {
			return fmt.Errorf("%w: delete: %w", ErrSoftwareVersionReplace, err)
		}
		if len(versions) > 0 {
			if _, err := s.InsertVersions(ctx, id, versions); err != nil {
				return fmt.Errorf("%w: insert: %w", ErrSoftwareVersionReplace, err)
			}
		}
		return nil
	})
	if err != nil {
		return withKind(err, ErrDeviceUpdate, ErrSoftwareVersionReplace)
	}

	r.logger.Info("device updated", "id", id, "name", fields.Name, "versions", len(versions))
	return nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.store.InTx(ctx, func(s Store) error {
		if err := s.DeleteVersions(ctx, id); err != nil {
			return fmt.Errorf("%w: %w", ErrDeviceDelete, err)
		}
		if err := s.DeleteDevice(ctx, id); err != nil {
			return fmt.Errorf("%w: %w", ErrDeviceDelete, err)
		}
		return nil
	})
	if err != nil {
		return withKind(err, ErrDeviceDelete)
	}

	r.logger.Info("device deleted", "id", id)
	return nil
}

// withKind wraps err in fallback unless it already carries fallback or one of
// the step kinds. Transaction begin and commit failures surface here.
func withKind(err, fallback error, steps ...error) error {
	if errors.Is(err, fallback) {
		return err
	}
	for _, k := range steps {
		if errors.Is(err, k) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", fallback, err)
}
