package dashboard_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/JaimeStill/device-inventory/internal/auth"
	"github.com/JaimeStill/device-inventory/internal/dashboard"
	"github.com/JaimeStill/device-inventory/internal/devices"
	"github.com/JaimeStill/device-inventory/internal/uploads"
	"github.com/google/uuid"
)

var admin = auth.Session{User: "alice", IsAdmin: true}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeDevices struct {
	mu      sync.Mutex
	creates []devices.CreateCommand
	updates []devices.UpdateCommand
	err     error

	// block, when set, is received from before returning.
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeDevices) wait() {
	if f.block != nil {
		close(f.entered)
		<-f.block
	}
}

func (f *fakeDevices) Create(ctx context.Context, cmd devices.CreateCommand) (*devices.Device, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, cmd)
	if f.err != nil {
		return nil, f.err
	}
	return &devices.Device{ID: uuid.New(), Name: cmd.Device.Name}, nil
}

func (f *fakeDevices) Update(ctx context.Context, id uuid.UUID, cmd devices.UpdateCommand) error {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, cmd)
	return f.err
}

type memWriter struct {
	mu      sync.Mutex
	keys    []string
	block   chan struct{}
	entered chan struct{}
}

func (w *memWriter) Store(ctx context.Context, key string, data []byte) error {
	if w.block != nil {
		close(w.entered)
		<-w.block
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.keys = append(w.keys, key)
	return nil
}

func (w *memWriter) URL(key string) string {
	return "/blobs/" + key
}

func newDialog() (*dashboard.Dialog, *fakeDevices, *memWriter) {
	devs := &fakeDevices{}
	w := &memWriter{}
	up := uploads.New(w, "device-downloads", discard())
	return dashboard.NewDialog(devs, up, discard()), devs, w
}

func zipFile(name string) dashboard.FileInput {
	return dashboard.FileInput{Name: name, Size: 4, Content: strings.NewReader("PK..")}
}

func TestDialog_Transitions(t *testing.T) {
	d, _, _ := newDialog()

	if d.State() != dashboard.Closed {
		t.Fatalf("initial state = %s", d.State())
	}
	if err := d.Close(); !errors.Is(err, dashboard.ErrInvalidState) {
		t.Errorf("Close() on closed = %v", err)
	}
	if err := d.AppendRow(); !errors.Is(err, dashboard.ErrInvalidState) {
		t.Errorf("AppendRow() on closed = %v", err)
	}
	if _, err := d.Submit(context.Background(), admin); !errors.Is(err, dashboard.ErrInvalidState) {
		t.Errorf("Submit() on closed = %v", err)
	}

	if err := d.Open(nil); err != nil {
		t.Fatal(err)
	}
	if err := d.Open(nil); !errors.Is(err, dashboard.ErrInvalidState) {
		t.Errorf("Open() on open = %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestDialog_OpenAdd(t *testing.T) {
	d, _, _ := newDialog()
	d.Open(nil)

	f := d.Form()
	if d.Mode() != dashboard.ModeAdd || d.DeviceID() != uuid.Nil {
		t.Errorf("mode = %v id = %v", d.Mode(), d.DeviceID())
	}
	if len(f.Rows) != 1 || f.Rows[0] != (dashboard.Row{}) {
		t.Errorf("rows = %+v, want one empty row", f.Rows)
	}
	if f.UploadKey == "" {
		t.Error("add dialog has no provisional upload key")
	}
}

func TestDialog_OpenEditReseeds(t *testing.T) {
	d, _, _ := newDialog()
	url := "/blobs/x.zip"
	dev := &devices.Device{
		ID:          uuid.New(),
		Name:        "Giada DN74",
		Model:       "DN74",
		OS:          "Android 11",
		DownloadURL: &url,
		SoftwareVersions: []devices.SoftwareVersion{
			{Name: "Player", Version: "7059"},
			{Name: "Log Writer", Version: "16"},
		},
	}

	d.Open(dev)
	d.SetField(dashboard.FieldName, "draft")
	d.SetRow(0, "Player", "9999")
	d.AppendRow()
	d.Close()

	d.Open(dev)
	f := d.Form()
	if f.Name != "Giada DN74" || f.DownloadURL != url || f.UploadKey != dev.ID.String() {
		t.Errorf("form = %+v", f)
	}
	if len(f.Rows) != 2 || f.Rows[0].Version != "7059" {
		t.Errorf("rows = %+v, want persisted versions", f.Rows)
	}

	d.Close()
	d.Open(&devices.Device{ID: uuid.New(), Name: "bare"})
	if rows := d.Form().Rows; len(rows) != 1 {
		t.Errorf("rows = %+v, want one empty row for a device without versions", rows)
	}
}

func TestDialog_Rows(t *testing.T) {
	d, _, _ := newDialog()
	d.Open(nil)

	d.SetRow(0, "a", "1")
	d.AppendRow()
	d.SetRow(1, "b", "2")

	if err := d.RemoveRow(0); err != nil {
		t.Fatal(err)
	}
	if rows := d.Form().Rows; len(rows) != 1 || rows[0].Name != "b" {
		t.Fatalf("rows = %+v", rows)
	}

	if err := d.RemoveRow(0); err != nil {
		t.Fatal(err)
	}
	if rows := d.Form().Rows; len(rows) != 1 || rows[0] != (dashboard.Row{}) {
		t.Errorf("rows = %+v, want one empty row", rows)
	}

	for _, i := range []int{-1, 1} {
		if err := d.RemoveRow(i); !errors.Is(err, dashboard.ErrRowIndex) {
			t.Errorf("RemoveRow(%d) = %v", i, err)
		}
		if err := d.SetRow(i, "x", "y"); !errors.Is(err, dashboard.ErrRowIndex) {
			t.Errorf("SetRow(%d) = %v", i, err)
		}
	}
}

func TestDialog_AttachFile_SanitizedURL(t *testing.T) {
	d, _, w := newDialog()
	d.Restore(dashboard.ModeAdd, uuid.Nil, dashboard.Form{UploadKey: "abc123"})

	if err := d.AttachFile(context.Background(), zipFile("My File (v2).zip")); err != nil {
		t.Fatalf("AttachFile() error = %v", err)
	}

	got := d.Form().DownloadURL
	if !strings.Contains(got, "abc123/My_File__v2_.zip") {
		t.Errorf("DownloadURL = %q", got)
	}
	if len(w.keys) != 1 || w.keys[0] != "device-downloads/abc123/My_File__v2_.zip" {
		t.Errorf("stored keys = %v", w.keys)
	}
}

func TestDialog_AttachFile_FailureKeepsURL(t *testing.T) {
	d, _, w := newDialog()
	d.Restore(dashboard.ModeAdd, uuid.Nil, dashboard.Form{DownloadURL: "/blobs/previous.zip"})

	err := d.AttachFile(context.Background(), dashboard.FileInput{
		Name:    "huge.zip",
		Size:    60 << 20,
		Content: strings.NewReader(""),
	})
	if !errors.Is(err, uploads.ErrFileTooLarge) {
		t.Fatalf("AttachFile() error = %v", err)
	}
	if got := d.Form().DownloadURL; got != "/blobs/previous.zip" {
		t.Errorf("DownloadURL = %q, want previous value", got)
	}
	if len(w.keys) != 0 {
		t.Errorf("store called for rejected file: %v", w.keys)
	}
	if !errors.Is(d.Err(), uploads.ErrFileTooLarge) {
		t.Errorf("Err() = %v", d.Err())
	}
	if d.Uploading() {
		t.Error("still uploading after failure")
	}
}

func TestDialog_AttachFile_OneAtATime(t *testing.T) {
	d, _, w := newDialog()
	w.block = make(chan struct{})
	w.entered = make(chan struct{})
	d.Open(nil)

	done := make(chan error, 1)
	go func() { done <- d.AttachFile(context.Background(), zipFile("a.zip")) }()
	<-w.entered

	if !d.Uploading() {
		t.Error("Uploading() = false during upload")
	}
	if err := d.AttachFile(context.Background(), zipFile("b.zip")); !errors.Is(err, dashboard.ErrUploadInProgress) {
		t.Errorf("second AttachFile() = %v", err)
	}
	if _, err := d.Submit(context.Background(), admin); !errors.Is(err, dashboard.ErrUploadInProgress) {
		t.Errorf("Submit() during upload = %v", err)
	}

	close(w.block)
	if err := <-done; err != nil {
		t.Fatalf("first AttachFile() = %v", err)
	}
	if !strings.HasSuffix(d.Form().DownloadURL, "/a.zip") {
		t.Errorf("DownloadURL = %q", d.Form().DownloadURL)
	}
}

func TestDialog_AttachFile_DiscardedAfterClose(t *testing.T) {
	d, _, w := newDialog()
	w.block = make(chan struct{})
	w.entered = make(chan struct{})
	d.Open(nil)

	done := make(chan error, 1)
	go func() { done <- d.AttachFile(context.Background(), zipFile("a.zip")) }()
	<-w.entered

	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	d.Open(nil)

	close(w.block)
	if err := <-done; !errors.Is(err, dashboard.ErrDialogDisposed) {
		t.Fatalf("AttachFile() = %v, want ErrDialogDisposed", err)
	}
	if got := d.Form().DownloadURL; got != "" {
		t.Errorf("late result applied to reopened dialog: %q", got)
	}
	if len(w.keys) != 1 {
		t.Errorf("upload did not complete in background: %v", w.keys)
	}
}

func TestDialog_Submit_Forbidden(t *testing.T) {
	d, devs, _ := newDialog()
	d.Open(nil)
	d.SetField(dashboard.FieldName, "n")

	_, err := d.Submit(context.Background(), auth.Session{User: "bob"})
	if !errors.Is(err, dashboard.ErrForbidden) {
		t.Fatalf("Submit() = %v", err)
	}
	if d.State() != dashboard.Open || d.Form().Name != "n" {
		t.Errorf("state = %s form = %+v", d.State(), d.Form())
	}
	if len(devs.creates) != 0 {
		t.Error("Create called for non-admin")
	}
}

func TestDialog_Submit_Add(t *testing.T) {
	d, devs, _ := newDialog()
	d.Open(nil)
	d.SetField(dashboard.FieldName, "Giada DN74")
	d.SetField(dashboard.FieldModel, "DN74")
	d.SetField(dashboard.FieldOS, "Android 11")
	d.SetField(dashboard.FieldImageURL, "  ")
	d.SetRow(0, "Player", "7059")
	d.AppendRow()
	d.SetRow(1, "", "x")

	dev, err := d.Submit(context.Background(), admin)
	if err != nil {
		t.Fatalf("Submit() = %v", err)
	}
	if dev == nil || dev.Name != "Giada DN74" {
		t.Errorf("device = %+v", dev)
	}

	cmd := devs.creates[0]
	if len(cmd.SoftwareVersions) != 1 || cmd.SoftwareVersions[0] != (devices.VersionInput{Name: "Player", Version: "7059"}) {
		t.Errorf("versions = %+v", cmd.SoftwareVersions)
	}
	if cmd.Device.ImageURL != nil || cmd.Device.DownloadURL != nil {
		t.Errorf("blank urls submitted as %v, %v", cmd.Device.ImageURL, cmd.Device.DownloadURL)
	}

	if d.State() != dashboard.Closed {
		t.Errorf("state = %s, want closed", d.State())
	}
	if f := d.Form(); f.Name != "" || len(f.Rows) != 0 {
		t.Errorf("add form not reset: %+v", f)
	}
}

func TestDialog_Submit_Edit(t *testing.T) {
	d, devs, _ := newDialog()
	id := uuid.New()
	d.Open(&devices.Device{ID: id, Name: "a", Model: "m", OS: "o"})
	d.SetRow(0, "Player", "7200")

	if _, err := d.Submit(context.Background(), admin); err != nil {
		t.Fatal(err)
	}
	if len(devs.updates) != 1 || len(devs.updates[0].SoftwareVersions) != 1 {
		t.Errorf("updates = %+v", devs.updates)
	}
	if d.State() != dashboard.Closed {
		t.Errorf("state = %s", d.State())
	}
}

func TestDialog_Submit_FailureKeepsForm(t *testing.T) {
	d, devs, _ := newDialog()
	devs.err = devices.ErrDeviceCreate
	d.Open(nil)
	d.SetField(dashboard.FieldName, "n")
	d.SetRow(0, "Player", "1")

	if _, err := d.Submit(context.Background(), admin); !errors.Is(err, devices.ErrDeviceCreate) {
		t.Fatalf("Submit() = %v", err)
	}
	if d.State() != dashboard.Open {
		t.Errorf("state = %s, want open", d.State())
	}
	f := d.Form()
	if f.Name != "n" || f.Rows[0].Name != "Player" {
		t.Errorf("form lost: %+v", f)
	}
	if !errors.Is(d.Err(), devices.ErrDeviceCreate) {
		t.Errorf("Err() = %v", d.Err())
	}

	devs.err = nil
	if _, err := d.Submit(context.Background(), admin); err != nil {
		t.Errorf("retry Submit() = %v", err)
	}
}

func TestDialog_SubmittingState(t *testing.T) {
	d, devs, _ := newDialog()
	devs.block = make(chan struct{})
	devs.entered = make(chan struct{})
	d.Open(nil)

	done := make(chan error, 1)
	go func() {
		_, err := d.Submit(context.Background(), admin)
		done <- err
	}()
	<-devs.entered

	if d.State() != dashboard.Submitting {
		t.Errorf("state = %s, want submitting", d.State())
	}
	if err := d.Close(); !errors.Is(err, dashboard.ErrInvalidState) {
		t.Errorf("Close() while submitting = %v", err)
	}
	if err := d.AppendRow(); !errors.Is(err, dashboard.ErrInvalidState) {
		t.Errorf("AppendRow() while submitting = %v", err)
	}

	close(devs.block)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{dashboard.ErrForbidden, 403},
		{dashboard.ErrUploadInProgress, 409},
		{uploads.ErrFileTooLarge, 413},
		{uploads.ErrUnsupportedFileType, 400},
		{devices.ErrValidation, 400},
		{devices.ErrDeviceCreate, 500},
	}
	for _, tt := range tests {
		if got := dashboard.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
