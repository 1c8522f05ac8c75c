package devices

import (
	"context"
	"database/sql"

	"github.com/JaimeStill/device-inventory/pkg/query"
	"github.com/JaimeStill/device-inventory/pkg/repository"
	"github.com/google/uuid"
)

type postgres struct {
	db *sql.DB
	q  repository.Querier
}

// NewPostgresStore creates a Store over db. Mutations passed through InTx
// share a single transaction.
func NewPostgresStore(db *sql.DB) Store {
	return &postgres{db: db, q: db}
}

func (p *postgres) ListDevices(ctx context.Context) ([]Device, error) {
	q, args := query.NewBuilder(deviceProjection, "CreatedAt").BuildAll()
	return repository.QueryMany(ctx, p.q, q, args, scanDevice)
}

func (p *postgres) ListVersions(ctx context.Context) ([]SoftwareVersion, error) {
	q, args := query.NewBuilder(versionProjection, "").
		OrderBy("DeviceID", false).
		OrderBy("v.position", false).
		BuildAll()
	return repository.QueryMany(ctx, p.q, q, args, scanVersion)
}

func (p *postgres) InsertDevice(ctx context.Context, f Fields) (Device, error) {
	q := `
		INSERT INTO devices (name, model, os, image_url, download_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, model, os, image_url, download_url, created_at`

	d, err := repository.QueryOne(ctx, p.q, q, []any{f.Name, f.Model, f.OS, f.ImageURL, f.DownloadURL}, scanDevice)
	if err != nil {
		return Device{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return d, nil
}

func (p *postgres) InsertVersions(ctx context.Context, deviceID uuid.UUID, rows []VersionInput) ([]SoftwareVersion, error) {
	values := make([][]any, len(rows))
	for i, row := range rows {
		values[i] = []any{deviceID, row.Name, row.Version, i}
	}

	q, args := query.Insert("software_versions", versionColumns, values)
	q += " RETURNING id, device_id, name, version"

	return repository.QueryMany(ctx, p.q, q, args, scanVersion)
}

func (p *postgres) UpdateDevice(ctx context.Context, id uuid.UUID, f Fields) error {
	q := `
		UPDATE devices
		SET name = $1, model = $2, os = $3, image_url = $4, download_url = $5
		WHERE id = $6`

	err := repository.ExecExpectOne(ctx, p.q, q, f.Name, f.Model, f.OS, f.ImageURL, f.DownloadURL, id)
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}

func (p *postgres) DeleteVersions(ctx context.Context, deviceID uuid.UUID) error {
	_, err := p.q.ExecContext(ctx, "DELETE FROM software_versions WHERE device_id = $1", deviceID)
	return err
}

func (p *postgres) DeleteDevice(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, p.q, "DELETE FROM devices WHERE id = $1", id)
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}

func (p *postgres) InTx(ctx context.Context, fn func(Store) error) error {
	if p.db == nil {
		return fn(p)
	}

	_, err := repository.WithTx(ctx, p.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, fn(&postgres{q: tx})
	})
	return err
}
