package devices

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Join attaches to each device the versions whose DeviceID matches, in the
// order they appear in versions. Every device gets a non-nil slice.
func Join(devices []Device, versions []SoftwareVersion) []Device {
	byDevice := make(map[uuid.UUID][]SoftwareVersion, len(devices))
	for _, v := range versions {
		byDevice[v.DeviceID] = append(byDevice[v.DeviceID], v)
	}

	out := make([]Device, len(devices))
	for i, d := range devices {
		vs := byDevice[d.ID]
		if vs == nil {
			vs = []SoftwareVersion{}
		}
		d.SoftwareVersions = vs
		out[i] = d
	}
	return out
}

// fetchAggregate runs the device and version reads concurrently and joins
// the results. Either read failing fails the whole fetch.
func fetchAggregate(ctx context.Context, s Store) ([]Device, error) {
	var (
		devices  []Device
		versions []SoftwareVersion
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if devices, err = s.ListDevices(gctx); err != nil {
			return fmt.Errorf("%w: %w: %w", ErrAggregateFetch, ErrDeviceList, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if versions, err = s.ListVersions(gctx); err != nil {
			return fmt.Errorf("%w: %w: %w", ErrAggregateFetch, ErrSoftwareVersionList, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Join(devices, versions), nil
}

func cloneDevices(devices []Device) []Device {
	out := make([]Device, len(devices))
	for i, d := range devices {
		d.SoftwareVersions = append([]SoftwareVersion{}, d.SoftwareVersions...)
		out[i] = d
	}
	return out
}
