package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/device-inventory/internal/auth"
	"github.com/JaimeStill/device-inventory/internal/dashboard"
	"github.com/JaimeStill/device-inventory/internal/devices"
	"github.com/JaimeStill/device-inventory/internal/uploads"
	"github.com/JaimeStill/device-inventory/pkg/web"
	"github.com/google/uuid"
)

const maxMemory = 32 << 20

type handler struct {
	templates     *web.TemplateSet
	devices       devices.System
	uploads       uploads.System
	maxUploadSize int64
	logger        *slog.Logger
}

type listPage struct {
	Session auth.Session
	Devices []devices.Device
	Err     error
	Notice  string
}

type dialogPage struct {
	Session auth.Session
	Edit    bool
	Action  string
	Form    dashboard.Form
	Notice  string
}

func (h *handler) render(w http.ResponseWriter, status int, view web.ViewDef, data any) {
	err := h.templates.RenderStatus(w, status, layout, view.Template, web.ViewData{
		Title:  view.Title,
		Bundle: view.Bundle,
		Data:   data,
	})
	if err != nil {
		h.logger.Error("render failed", "view", view.Template, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).IsAdmin {
			h.render(w, http.StatusForbidden, errorViews[1], nil)
			return
		}
		next(w, r)
	}
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	page := listPage{Session: auth.FromContext(r.Context())}
	status := http.StatusOK

	list, err := h.devices.List(r.Context())
	if err != nil {
		h.logger.Error("device list failed", "error", err)
		page.Err = err
		status = devices.MapHTTPStatus(err)
	}
	page.Devices = list

	h.render(w, status, listView, page)
}

func (h *handler) newDialog(w http.ResponseWriter, r *http.Request) {
	dlg := h.dialog()
	if err := dlg.Open(nil); err != nil {
		h.listWithNotice(w, r, err)
		return
	}
	h.renderDialog(w, r, http.StatusOK, dlg, "")
}

func (h *handler) editDialog(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.render(w, http.StatusNotFound, errorViews[0], nil)
		return
	}

	dev, err := h.devices.Find(r.Context(), id)
	if err != nil {
		if errors.Is(err, devices.ErrNotFound) {
			h.render(w, http.StatusNotFound, errorViews[0], nil)
			return
		}
		h.listWithNotice(w, r, err)
		return
	}

	dlg := h.dialog()
	if err := dlg.Open(dev); err != nil {
		h.listWithNotice(w, r, err)
		return
	}
	h.renderDialog(w, r, http.StatusOK, dlg, "")
}

func (h *handler) submitAdd(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, dashboard.ModeAdd, uuid.Nil)
}

func (h *handler) submitEdit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.render(w, http.StatusNotFound, errorViews[0], nil)
		return
	}
	h.submit(w, r, dashboard.ModeEdit, id)
}

// submit restores the dialog from the posted form, applies an attached
// file, and runs the requested action. Failures re-render the dialog with
// the entered data and a notice.
func (h *handler) submit(w http.ResponseWriter, r *http.Request, mode dashboard.Mode, id uuid.UUID) {
	if r.ContentLength > h.maxUploadSize {
		h.failRestored(w, r, mode, id, uploads.ErrFileTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(maxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.failRestored(w, r, mode, id, uploads.ErrFileTooLarge)
			return
		}
		h.failRestored(w, r, mode, id, uploads.ErrInvalidFile)
		return
	}

	dlg := h.dialog()
	if err := dlg.Restore(mode, id, parseForm(r.PostForm)); err != nil {
		h.listWithNotice(w, r, err)
		return
	}

	if file, header, err := r.FormFile("file"); err == nil {
		err := dlg.AttachFile(r.Context(), dashboard.FileInput{
			Name:    header.Filename,
			Size:    header.Size,
			Content: file,
		})
		file.Close()
		if err != nil {
			h.fail(w, r, dlg, err)
			return
		}
	}

	action := r.PostFormValue("action")
	switch {
	case action == "add-row":
		if err := dlg.AppendRow(); err != nil {
			h.fail(w, r, dlg, err)
			return
		}
		h.renderDialog(w, r, http.StatusOK, dlg, "")
	case strings.HasPrefix(action, "remove-row:"):
		raw := strings.TrimPrefix(action, "remove-row:")
		i, err := strconv.Atoi(raw)
		if err != nil {
			h.fail(w, r, dlg, fmt.Errorf("%w: %q", dashboard.ErrRowIndex, raw))
			return
		}
		if err := dlg.RemoveRow(i); err != nil {
			h.fail(w, r, dlg, err)
			return
		}
		h.renderDialog(w, r, http.StatusOK, dlg, "")
	case action == "upload":
		h.renderDialog(w, r, http.StatusOK, dlg, "")
	default:
		if _, err := dlg.Submit(r.Context(), auth.FromContext(r.Context())); err != nil {
			h.fail(w, r, dlg, err)
			return
		}
		http.Redirect(w, r, h.templates.BasePath()+"/", http.StatusSeeOther)
	}
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.render(w, http.StatusNotFound, errorViews[0], nil)
		return
	}

	if err := h.devices.Delete(r.Context(), id); err != nil {
		h.listWithNotice(w, r, err)
		return
	}
	http.Redirect(w, r, h.templates.BasePath()+"/", http.StatusSeeOther)
}

// listWithNotice renders the device list with a transient notice.
func (h *handler) listWithNotice(w http.ResponseWriter, r *http.Request, cause error) {
	h.logger.Error("dashboard action failed", "error", cause)
	page := listPage{
		Session: auth.FromContext(r.Context()),
		Notice:  cause.Error(),
	}
	list, err := h.devices.List(r.Context())
	if err != nil {
		page.Err = err
	}
	page.Devices = list
	h.render(w, dashboard.MapHTTPStatus(cause), listView, page)
}

func (h *handler) dialog() *dashboard.Dialog {
	return dashboard.NewDialog(h.devices, h.uploads, h.logger)
}

// failRestored reports cause on an empty dialog for mode when the request
// body is rejected before the form is read.
func (h *handler) failRestored(w http.ResponseWriter, r *http.Request, mode dashboard.Mode, id uuid.UUID, cause error) {
	dlg := h.dialog()
	if err := dlg.Restore(mode, id, dashboard.Form{}); err != nil {
		h.listWithNotice(w, r, err)
		return
	}
	h.fail(w, r, dlg, cause)
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, dlg *dashboard.Dialog, err error) {
	h.logger.Error("dialog action failed", "error", err)
	h.renderDialog(w, r, dashboard.MapHTTPStatus(err), dlg, err.Error())
}

func (h *handler) renderDialog(w http.ResponseWriter, r *http.Request, status int, dlg *dashboard.Dialog, notice string) {
	page := dialogPage{
		Session: auth.FromContext(r.Context()),
		Edit:    dlg.Mode() == dashboard.ModeEdit,
		Form:    dlg.Form(),
		Notice:  notice,
	}

	base := h.templates.BasePath()
	if page.Edit {
		page.Action = base + "/devices/" + dlg.DeviceID().String() + "/edit"
	} else {
		page.Action = base + "/devices/new"
	}

	h.render(w, status, dialogView, page)
}

func parseForm(values url.Values) dashboard.Form {
	f := dashboard.Form{
		Name:        values.Get("name"),
		Model:       values.Get("model"),
		OS:          values.Get("os"),
		ImageURL:    values.Get("image_url"),
		DownloadURL: values.Get("download_url"),
		UploadKey:   values.Get("upload_key"),
	}

	names := values["version_name"]
	versions := values["version_value"]
	for i := range max(len(names), len(versions)) {
		var row dashboard.Row
		if i < len(names) {
			row.Name = names[i]
		}
		if i < len(versions) {
			row.Version = versions[i]
		}
		f.Rows = append(f.Rows, row)
	}
	return f
}
