package main

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/device-inventory/internal/devices"
)

//go:embed seeds/*.json
var seedFiles embed.FS

func init() {
	registerSeeder(&DeviceSeeder{})
}

// DeviceSeedData is the JSON structure of a device seed file.
type DeviceSeedData struct {
	Devices []devices.CreateCommand `json:"devices"`
}

// DeviceSeeder creates the reference devices and their software versions.
// Devices whose name already exists are skipped.
type DeviceSeeder struct {
	file string
}

func (s *DeviceSeeder) Name() string {
	return "devices"
}

func (s *DeviceSeeder) Description() string {
	return "Seeds reference media player devices and their software versions"
}

// SetFile configures an external seed file path, overriding the embedded default.
func (s *DeviceSeeder) SetFile(path string) {
	s.file = path
}

func (s *DeviceSeeder) Seed(ctx context.Context, sys devices.System, logger *slog.Logger) error {
	data, err := s.loadSeedData()
	if err != nil {
		return err
	}

	existing, err := sys.List(ctx)
	if err != nil {
		return err
	}
	names := make(map[string]bool, len(existing))
	for _, d := range existing {
		names[d.Name] = true
	}

	for _, cmd := range data.Devices {
		if names[cmd.Device.Name] {
			logger.Info("device exists, skipping", "name", cmd.Device.Name)
			continue
		}
		if _, err := sys.Create(ctx, cmd); err != nil {
			return fmt.Errorf("create %s: %w", cmd.Device.Name, err)
		}
		names[cmd.Device.Name] = true
	}

	return nil
}

func (s *DeviceSeeder) loadSeedData() (*DeviceSeedData, error) {
	var (
		content []byte
		err     error
	)

	if s.file != "" {
		content, err = os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/devices.json")
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	var data DeviceSeedData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &data, nil
}
