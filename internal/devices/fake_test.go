package devices_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/JaimeStill/device-inventory/internal/devices"
	"github.com/google/uuid"
)

// memStore is a non-transactional Store with per-operation failure injection.
type memStore struct {
	mu       sync.Mutex
	devices  []devices.Device
	versions []devices.SoftwareVersion
	clock    time.Time
	fail     map[string]error
	calls    []string
	txErr    error

	// blockList, when set, is received from before ListDevices reads.
	blockList chan struct{}
	started   chan struct{}
}

func newMemStore() *memStore {
	return &memStore{
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		fail:  make(map[string]error),
	}
}

func (m *memStore) record(op string) error {
	m.calls = append(m.calls, op)
	if err, ok := m.fail[op]; ok {
		delete(m.fail, op)
		return err
	}
	return nil
}

func (m *memStore) count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (m *memStore) failNext(op string, err error) {
	m.mu.Lock()
	m.fail[op] = err
	m.mu.Unlock()
}

func (m *memStore) ListDevices(ctx context.Context) ([]devices.Device, error) {
	m.mu.Lock()
	block, started := m.blockList, m.started
	m.blockList = nil
	m.mu.Unlock()

	if block != nil {
		close(started)
		<-block
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("ListDevices"); err != nil {
		return nil, err
	}

	out := slices.Clone(m.devices)
	slices.SortStableFunc(out, func(a, b devices.Device) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (m *memStore) ListVersions(ctx context.Context) ([]devices.SoftwareVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("ListVersions"); err != nil {
		return nil, err
	}
	return slices.Clone(m.versions), nil
}

func (m *memStore) InsertDevice(ctx context.Context, f devices.Fields) (devices.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("InsertDevice"); err != nil {
		return devices.Device{}, err
	}

	m.clock = m.clock.Add(time.Second)
	d := devices.Device{
		ID:          uuid.New(),
		Name:        f.Name,
		Model:       f.Model,
		OS:          f.OS,
		ImageURL:    f.ImageURL,
		DownloadURL: f.DownloadURL,
		CreatedAt:   m.clock,
	}
	m.devices = append(m.devices, d)
	return d, nil
}

func (m *memStore) InsertVersions(ctx context.Context, deviceID uuid.UUID, rows []devices.VersionInput) ([]devices.SoftwareVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("InsertVersions"); err != nil {
		return nil, err
	}

	out := make([]devices.SoftwareVersion, len(rows))
	for i, row := range rows {
		out[i] = devices.SoftwareVersion{ID: uuid.New(), DeviceID: deviceID, Name: row.Name, Version: row.Version}
	}
	m.versions = append(m.versions, out...)
	return out, nil
}

func (m *memStore) UpdateDevice(ctx context.Context, id uuid.UUID, f devices.Fields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("UpdateDevice"); err != nil {
		return err
	}

	for i := range m.devices {
		if m.devices[i].ID == id {
			m.devices[i].Name = f.Name
			m.devices[i].Model = f.Model
			m.devices[i].OS = f.OS
			m.devices[i].ImageURL = f.ImageURL
			m.devices[i].DownloadURL = f.DownloadURL
			return nil
		}
	}
	return devices.ErrNotFound
}

func (m *memStore) DeleteVersions(ctx context.Context, deviceID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("DeleteVersions"); err != nil {
		return err
	}

	m.versions = slices.DeleteFunc(m.versions, func(v devices.SoftwareVersion) bool {
		return v.DeviceID == deviceID
	})
	return nil
}

func (m *memStore) DeleteDevice(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("DeleteDevice"); err != nil {
		return err
	}

	n := len(m.devices)
	m.devices = slices.DeleteFunc(m.devices, func(d devices.Device) bool { return d.ID == id })
	if len(m.devices) == n {
		return devices.ErrNotFound
	}
	return nil
}

func (m *memStore) InTx(ctx context.Context, fn func(devices.Store) error) error {
	if m.txErr != nil {
		return m.txErr
	}
	return fn(m)
}

func (m *memStore) versionsFor(id uuid.UUID) []devices.SoftwareVersion {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []devices.SoftwareVersion
	for _, v := range m.versions {
		if v.DeviceID == id {
			out = append(out, v)
		}
	}
	return out
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fields(name string) devices.Fields {
	return devices.Fields{Name: name, Model: "M-" + name, OS: "Linux"}
}
