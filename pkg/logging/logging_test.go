package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/JaimeStill/device-inventory/pkg/logging"
)

func TestNewWithWriter_Formats(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewWithWriter(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatJSON}, &buf)
		logger.Info("device created", "id", "abc")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
		}
		if entry["msg"] != "device created" || entry["id"] != "abc" {
			t.Errorf("entry = %v", entry)
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewWithWriter(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}, &buf)
		logger.Info("device created", "id", "abc")

		if !strings.Contains(buf.String(), "id=abc") {
			t.Errorf("output = %q", buf.String())
		}
	})
}

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&logging.Config{Level: logging.LevelWarn, Format: logging.FormatText}, &buf)

	logger.Info("suppressed")
	logger.Warn("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(out, "emitted") {
		t.Error("warn message not logged")
	}
}

func TestConfig_Finalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     logging.Config
		wantErr bool
	}{
		{"defaults", logging.Config{}, false},
		{"valid", logging.Config{Level: logging.LevelDebug, Format: logging.FormatJSON}, false},
		{"bad level", logging.Config{Level: "verbose"}, true},
		{"bad format", logging.Config{Format: "xml"}, true},
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

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TEST_LOG_LEVEL", "debug")
	t.Setenv("TEST_LOG_ADD_SOURCE", "true")

	cfg := &logging.Config{}
	if err := cfg.Finalize(&logging.Env{Level: "TEST_LOG_LEVEL", Format: "TEST_LOG_FORMAT", AddSource: "TEST_LOG_ADD_SOURCE"}); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Level != logging.LevelDebug {
		t.Errorf("Level = %q, want debug", cfg.Level)
	}
	if cfg.Format != logging.FormatText {
		t.Errorf("Format = %q, want default text", cfg.Format)
	}
	if !cfg.AddSource {
		t.Error("AddSource = false, want true")
	}
}

func TestConfig_Merge(t *testing.T) {
	base := &logging.Config{Level: logging.LevelInfo, Format: logging.FormatJSON}
	base.Merge(&logging.Config{Level: logging.LevelDebug})

	if base.Level != logging.LevelDebug {
		t.Errorf("Level = %q, want debug", base.Level)
	}
	if base.Format != logging.FormatJSON {
		t.Errorf("Format = %q, want base preserved", base.Format)
	}
}
