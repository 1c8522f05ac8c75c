package devices

import (
	"github.com/JaimeStill/device-inventory/pkg/query"
	"github.com/JaimeStill/device-inventory/pkg/repository"
)

var deviceProjection = query.
	NewProjectionMap("public", "devices", "d").
	Project("id", "ID").
	Project("name", "Name").
	Project("model", "Model").
	Project("os", "OS").
	Project("image_url", "ImageURL").
	Project("download_url", "DownloadURL").
	Project("created_at", "CreatedAt")

var versionProjection = query.
	NewProjectionMap("public", "software_versions", "v").
	Project("id", "ID").
	Project("device_id", "DeviceID").
	Project("name", "Name").
	Project("version", "Version")

var versionColumns = []string{"device_id", "name", "version", "position"}

func scanDevice(s repository.Scanner) (Device, error) {
	var d Device
	err := s.Scan(&d.ID, &d.Name, &d.Model, &d.OS, &d.ImageURL, &d.DownloadURL, &d.CreatedAt)
	return d, err
}

func scanVersion(s repository.Scanner) (SoftwareVersion, error) {
	var v SoftwareVersion
	err := s.Scan(&v.ID, &v.DeviceID, &v.Name, &v.Version)
	return v, err
}
