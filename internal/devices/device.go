package devices

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Device is the aggregate view of a tracked unit with its installed software.
type Device struct {
	ID               uuid.UUID         `json:"id"`
	Name             string            `json:"name"`
	Model            string            `json:"model"`
	OS               string            `json:"os"`
	ImageURL         *string           `json:"image_url"`
	DownloadURL      *string           `json:"download_url"`
	CreatedAt        time.Time         `json:"created_at"`
	SoftwareVersions []SoftwareVersion `json:"software_versions"`
}

// SoftwareVersion is a named software component installed on a device.
type SoftwareVersion struct {
	ID       uuid.UUID `json:"id"`
	DeviceID uuid.UUID `json:"device_id"`
	Name     string    `json:"name"`
	Version  string    `json:"version"`
}

// Fields are the mutable device columns.
type Fields struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Model       string  `json:"model" validate:"required,max=100"`
	OS          string  `json:"os" validate:"required,max=100"`
	ImageURL    *string `json:"image_url,omitempty"`
	DownloadURL *string `json:"download_url,omitempty"`
}

// VersionInput is a name/version row as submitted by a user.
type VersionInput struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// CreateCommand contains the data required to create a device.
type CreateCommand struct {
	Device           Fields         `json:"device"`
	SoftwareVersions []VersionInput `json:"software_versions"`
}

// UpdateCommand replaces a device's fields and its full software version set.
type UpdateCommand struct {
	Device           Fields         `json:"device"`
	SoftwareVersions []VersionInput `json:"software_versions"`
}

// FilterVersions keeps the rows whose trimmed name and trimmed version are
// both non-empty. Order and values of kept rows are unchanged.
func FilterVersions(rows []VersionInput) []VersionInput {
	kept := make([]VersionInput, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.Name) == "" || strings.TrimSpace(row.Version) == "" {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}

// OptionalURL returns nil for a blank value and a pointer to the trimmed value otherwise.
func OptionalURL(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (f Fields) normalize() Fields {
	out := Fields{
		Name:  strings.TrimSpace(f.Name),
		Model: strings.TrimSpace(f.Model),
		OS:    strings.TrimSpace(f.OS),
	}
	if f.ImageURL != nil {
		out.ImageURL = OptionalURL(*f.ImageURL)
	}
	if f.DownloadURL != nil {
		out.DownloadURL = OptionalURL(*f.DownloadURL)
	}
	return out
}
