package dashboard

import (
	"github.com/JaimeStill/device-inventory/internal/devices"
)

// Row is one editable name/version pair.
type Row struct {
	Name    string
	Version string
}

// Form is the working state of a dialog.
type Form struct {
	Name        string
	Model       string
	OS          string
	ImageURL    string
	DownloadURL string
	Rows        []Row

	// UploadKey prefixes uploaded file paths. Edit dialogs use the device
	// id; add dialogs use a provisional id.
	UploadKey string
}

// Field names a single-valued form input.
type Field int

const (
	FieldName Field = iota
	FieldModel
	FieldOS
	FieldImageURL
	FieldDownloadURL
)

func (f *Form) set(field Field, value string) {
	switch field {
	case FieldName:
		f.Name = value
	case FieldModel:
		f.Model = value
	case FieldOS:
		f.OS = value
	case FieldImageURL:
		f.ImageURL = value
	case FieldDownloadURL:
		f.DownloadURL = value
	}
}

func (f Form) clone() Form {
	f.Rows = append([]Row(nil), f.Rows...)
	return f
}

func (f *Form) ensureRow() {
	if len(f.Rows) == 0 {
		f.Rows = []Row{{}}
	}
}

func (f Form) fields() devices.Fields {
	return devices.Fields{
		Name:        f.Name,
		Model:       f.Model,
		OS:          f.OS,
		ImageURL:    devices.OptionalURL(f.ImageURL),
		DownloadURL: devices.OptionalURL(f.DownloadURL),
	}
}

func (f Form) versions() []devices.VersionInput {
	rows := make([]devices.VersionInput, len(f.Rows))
	for i, r := range f.Rows {
		rows[i] = devices.VersionInput{Name: r.Name, Version: r.Version}
	}
	return devices.FilterVersions(rows)
}

func formFromDevice(d *devices.Device) Form {
	f := Form{
		Name:      d.Name,
		Model:     d.Model,
		OS:        d.OS,
		UploadKey: d.ID.String(),
	}
	if d.ImageURL != nil {
		f.ImageURL = *d.ImageURL
	}
	if d.DownloadURL != nil {
		f.DownloadURL = *d.DownloadURL
	}
	for _, v := range d.SoftwareVersions {
		f.Rows = append(f.Rows, Row{Name: v.Name, Version: v.Version})
	}
	f.ensureRow()
	return f
}
