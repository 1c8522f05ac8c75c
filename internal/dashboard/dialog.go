// Package dashboard implements the add and edit device dialogs: working
// form state, file attachment, and submission against the device system.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/JaimeStill/device-inventory/internal/auth"
	"github.com/JaimeStill/device-inventory/internal/devices"
	"github.com/JaimeStill/device-inventory/internal/uploads"
	"github.com/google/uuid"
)

// State is the dialog lifecycle state.
type State int

const (
	Closed State = iota
	Open
	Submitting
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Submitting:
		return "submitting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Mode selects between creating and editing a device.
type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
)

// Devices is the subset of devices.System a dialog submits to.
type Devices interface {
	Create(ctx context.Context, cmd devices.CreateCommand) (*devices.Device, error)
	Update(ctx context.Context, id uuid.UUID, cmd devices.UpdateCommand) error
}

// Uploader stores attached files.
type Uploader interface {
	Upload(ctx context.Context, u uploads.Upload) (*uploads.Result, error)
}

// FileInput is a file selected in the dialog.
type FileInput struct {
	Name    string
	Size    int64
	Content io.Reader
}

// Dialog holds one add or edit interaction. The mutex is never held
// across device or upload calls.
type Dialog struct {
	mu        sync.Mutex
	mode      Mode
	deviceID  uuid.UUID
	state     State
	gen       uint64
	form      Form
	uploading bool
	err       error

	devices Devices
	uploads Uploader
	logger  *slog.Logger
}

// NewDialog creates a closed dialog.
func NewDialog(devs Devices, up Uploader, logger *slog.Logger) *Dialog {
	return &Dialog{
		devices: devs,
		uploads: up,
		logger:  logger.With("system", "dashboard"),
	}
}

// Open moves a closed dialog to Open. A nil device opens an add dialog
// with one empty row; otherwise the form is seeded from d, discarding
// any earlier draft.
func (d *Dialog) Open(dev *devices.Device) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != Closed {
		return fmt.Errorf("%w: open from %s", ErrInvalidState, d.state)
	}

	if dev == nil {
		d.mode = ModeAdd
		d.deviceID = uuid.Nil
		d.form = Form{UploadKey: uuid.NewString()}
		d.form.ensureRow()
	} else {
		d.mode = ModeEdit
		d.deviceID = dev.ID
		d.form = formFromDevice(dev)
	}

	d.reset(Open)
	return nil
}

// Restore rebuilds an open dialog from submitted form values.
func (d *Dialog) Restore(mode Mode, id uuid.UUID, form Form) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != Closed {
		return fmt.Errorf("%w: restore from %s", ErrInvalidState, d.state)
	}

	d.mode = mode
	d.deviceID = id
	d.form = form.clone()
	switch {
	case mode == ModeEdit:
		d.form.UploadKey = id.String()
	case d.form.UploadKey == "":
		d.form.UploadKey = uuid.NewString()
	}
	d.form.ensureRow()

	d.reset(Open)
	return nil
}

// Close discards the working state. Pending uploads are ignored when they finish.
func (d *Dialog) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != Open {
		return fmt.Errorf("%w: close from %s", ErrInvalidState, d.state)
	}
	d.reset(Closed)
	return nil
}

func (d *Dialog) reset(state State) {
	d.state = state
	d.gen++
	d.uploading = false
	d.err = nil
}

// AppendRow adds an empty software version row.
func (d *Dialog) AppendRow() error {
	return d.edit(func(f *Form) error {
		f.Rows = append(f.Rows, Row{})
		return nil
	})
}

// RemoveRow deletes row i. Removing the only row leaves one empty row.
func (d *Dialog) RemoveRow(i int) error {
	return d.edit(func(f *Form) error {
		if i < 0 || i >= len(f.Rows) {
			return fmt.Errorf("%w: %d", ErrRowIndex, i)
		}
		f.Rows = append(f.Rows[:i], f.Rows[i+1:]...)
		f.ensureRow()
		return nil
	})
}

// SetRow replaces row i.
func (d *Dialog) SetRow(i int, name, version string) error {
	return d.edit(func(f *Form) error {
		if i < 0 || i >= len(f.Rows) {
			return fmt.Errorf("%w: %d", ErrRowIndex, i)
		}
		f.Rows[i] = Row{Name: name, Version: version}
		return nil
	})
}

// SetField sets a single-valued field.
func (d *Dialog) SetField(field Field, value string) error {
	return d.edit(func(f *Form) error {
		f.set(field, value)
		return nil
	})
}

func (d *Dialog) edit(fn func(*Form) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != Open {
		return fmt.Errorf("%w: edit while %s", ErrInvalidState, d.state)
	}
	return fn(&d.form)
}

// AttachFile uploads f and on success writes its URL into DownloadURL.
// On failure DownloadURL keeps its previous value. Only one upload may be
// outstanding. A result that arrives after the dialog was closed or
// reopened is discarded with ErrDialogDisposed.
func (d *Dialog) AttachFile(ctx context.Context, f FileInput) error {
	d.mu.Lock()
	if d.state != Open {
		d.mu.Unlock()
		return fmt.Errorf("%w: attach while %s", ErrInvalidState, d.state)
	}
	if d.uploading {
		d.mu.Unlock()
		return ErrUploadInProgress
	}
	d.uploading = true
	gen := d.gen
	key := d.form.UploadKey
	d.mu.Unlock()

	res, err := d.uploads.Upload(ctx, uploads.Upload{
		Key:      key,
		Filename: f.Name,
		Size:     f.Size,
		Content:  f.Content,
	})

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.gen != gen {
		d.logger.Info("upload result discarded", "file", f.Name)
		return ErrDialogDisposed
	}
	d.uploading = false

	if err != nil {
		d.err = err
		return err
	}

	d.form.DownloadURL = res.URL
	d.err = nil
	return nil
}

// Submit creates or updates the device from the working form. s must be an
// administrator. Success closes the dialog; failure returns it to Open with
// the form intact.
func (d *Dialog) Submit(ctx context.Context, s auth.Session) (*devices.Device, error) {
	d.mu.Lock()
	if d.state != Open {
		d.mu.Unlock()
		return nil, fmt.Errorf("%w: submit while %s", ErrInvalidState, d.state)
	}
	if !s.IsAdmin {
		d.err = ErrForbidden
		d.mu.Unlock()
		return nil, ErrForbidden
	}
	if d.uploading {
		d.mu.Unlock()
		return nil, ErrUploadInProgress
	}

	d.state = Submitting
	mode, id := d.mode, d.deviceID
	fields, versions := d.form.fields(), d.form.versions()
	d.mu.Unlock()

	var (
		dev *devices.Device
		err error
	)
	switch mode {
	case ModeAdd:
		dev, err = d.devices.Create(ctx, devices.CreateCommand{Device: fields, SoftwareVersions: versions})
	case ModeEdit:
		err = d.devices.Update(ctx, id, devices.UpdateCommand{Device: fields, SoftwareVersions: versions})
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		d.state = Open
		d.err = err
		return nil, err
	}

	if mode == ModeAdd {
		d.form = Form{}
	}
	d.reset(Closed)
	return dev, nil
}

// State returns the current lifecycle state.
func (d *Dialog) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Mode returns whether the dialog adds or edits a device.
func (d *Dialog) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// DeviceID returns the edited device id, or uuid.Nil for add dialogs.
func (d *Dialog) DeviceID() uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deviceID
}

// Form returns a copy of the working form.
func (d *Dialog) Form() Form {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form.clone()
}

// Err returns the last failure surfaced by the dialog, if any.
func (d *Dialog) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Uploading reports whether an upload is outstanding.
func (d *Dialog) Uploading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.uploading
}
