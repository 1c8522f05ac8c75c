package database_test

import (
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/device-inventory/pkg/database"
)

func TestConfig_Finalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     database.Config
		wantErr bool
	}{
		{"valid", database.Config{Name: "inventory", User: "inventory"}, false},
		{"missing name", database.Config{User: "inventory"}, true},
		{"missing user", database.Config{Name: "inventory"}, true},
		{"bad lifetime", database.Config{Name: "n", User: "u", ConnMaxLifetime: "soon"}, true},
		{"idle exceeds open", database.Config{Name: "n", User: "u", MaxOpenConns: 2, MaxIdleConns: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Finalize(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := &database.Config{Name: "inventory", User: "inventory"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Host != "localhost" || cfg.Port != 5432 || cfg.SSLMode != "disable" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.ConnTimeoutDuration() != 5*time.Second {
		t.Errorf("ConnTimeoutDuration() = %v, want 5s", cfg.ConnTimeoutDuration())
	}
	if !strings.Contains(cfg.Dsn(), "dbname=inventory") || !strings.Contains(cfg.Dsn(), "sslmode=disable") {
		t.Errorf("Dsn() = %q", cfg.Dsn())
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "db.internal")
	t.Setenv("TEST_DB_PORT", "6543")
	t.Setenv("TEST_DB_NAME", "inv")
	t.Setenv("TEST_DB_USER", "svc")

	cfg := &database.Config{}
	err := cfg.Finalize(&database.Env{
		Host: "TEST_DB_HOST",
		Port: "TEST_DB_PORT",
		Name: "TEST_DB_NAME",
		User: "TEST_DB_USER",
	})
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Host != "db.internal" || cfg.Port != 6543 || cfg.Name != "inv" || cfg.User != "svc" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestConfig_Merge(t *testing.T) {
	base := &database.Config{Host: "localhost", Name: "inventory", User: "inventory"}
	base.Merge(&database.Config{Host: "prod-db", SSLMode: "require"})

	if base.Host != "prod-db" || base.SSLMode != "require" {
		t.Errorf("overlay not applied: %+v", base)
	}
	if base.Name != "inventory" {
		t.Errorf("Name = %q, want base preserved", base.Name)
	}
}

func TestErrNotReady(t *testing.T) {
	if database.ErrNotReady.Error() != "database not ready" {
		t.Errorf("ErrNotReady = %q", database.ErrNotReady)
	}
}
