package devices_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/device-inventory/internal/auth"
	"github.com/JaimeStill/device-inventory/internal/devices"
	"github.com/JaimeStill/device-inventory/pkg/routes"
	"github.com/google/uuid"
)

func setupHandler(t *testing.T) (*http.ServeMux, devices.System) {
	t.Helper()
	sys := devices.New(newMemStore(), discard())
	mux := http.NewServeMux()
	routes.Register(mux, "/api", nil, devices.NewHandler(sys, discard()).Routes())
	return mux, sys
}

func serve(mux *http.ServeMux, method, target, body string, admin bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req = req.WithContext(auth.WithSession(req.Context(), auth.Session{User: "alice", IsAdmin: true}))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

const createBody = `{
	"device": {"name": "Giada DN74", "model": "DN74", "os": "Android 11", "image_url": ""},
	"software_versions": [{"name": "Player", "version": "7059"}, {"name": "", "version": "x"}]
}`

func TestHandler_Create(t *testing.T) {
	mux, _ := setupHandler(t)

	rec := serve(mux, http.MethodPost, "/devices", createBody, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}

	var d devices.Device
	if err := json.NewDecoder(rec.Body).Decode(&d); err != nil {
		t.Fatal(err)
	}
	if d.Name != "Giada DN74" || len(d.SoftwareVersions) != 1 || d.ImageURL != nil {
		t.Errorf("device = %+v", d)
	}
}

func TestHandler_MutationsRequireAdmin(t *testing.T) {
	mux, sys := setupHandler(t)
	d, _ := sys.Create(context.Background(), devices.CreateCommand{Device: fields("a")})

	tests := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodPost, "/devices", createBody},
		{http.MethodPut, "/devices/" + d.ID.String(), createBody},
		{http.MethodDelete, "/devices/" + d.ID.String(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			rec := serve(mux, tt.method, tt.target, tt.body, false)
			if rec.Code != http.StatusForbidden {
				t.Errorf("status = %d, want 403", rec.Code)
			}
		})
	}

	list, _ := sys.List(context.Background())
	if len(list) != 1 || list[0].Name != "a" {
		t.Errorf("forbidden requests changed state: %+v", list)
	}
}

func TestHandler_ListAndFind(t *testing.T) {
	mux, sys := setupHandler(t)

	rec := serve(mux, http.MethodGet, "/devices", "", false)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty list: status = %d body = %s", rec.Code, rec.Body)
	}

	d, _ := sys.Create(context.Background(), devices.CreateCommand{Device: fields("a")})

	rec = serve(mux, http.MethodGet, "/devices/"+d.ID.String(), "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("find status = %d", rec.Code)
	}

	tests := []struct {
		target string
		want   int
	}{
		{"/devices/not-a-uuid", http.StatusBadRequest},
		{"/devices/" + uuid.NewString(), http.StatusNotFound},
	}
	for _, tt := range tests {
		if rec := serve(mux, http.MethodGet, tt.target, "", false); rec.Code != tt.want {
			t.Errorf("GET %s = %d, want %d", tt.target, rec.Code, tt.want)
		}
	}
}

func TestHandler_UpdateAndDelete(t *testing.T) {
	mux, sys := setupHandler(t)
	ctx := context.Background()
	d, _ := sys.Create(ctx, devices.CreateCommand{
		Device:           fields("a"),
		SoftwareVersions: []devices.VersionInput{{"Player", "7059"}, {"Log Writer", "16"}},
	})

	body := `{"device": {"name": "a", "model": "m", "os": "o"}, "software_versions": [{"name": "Player", "version": "7200"}]}`
	if rec := serve(mux, http.MethodPut, "/devices/"+d.ID.String(), body, true); rec.Code != http.StatusNoContent {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body)
	}

	got, _ := sys.Find(ctx, d.ID)
	if len(got.SoftwareVersions) != 1 || got.SoftwareVersions[0].Version != "7200" {
		t.Errorf("versions = %+v", got.SoftwareVersions)
	}

	if rec := serve(mux, http.MethodDelete, "/devices/"+d.ID.String(), "", true); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec := serve(mux, http.MethodDelete, "/devices/"+d.ID.String(), "", true); rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestHandler_ValidationError(t *testing.T) {
	mux, _ := setupHandler(t)

	rec := serve(mux, http.MethodPost, "/devices", `{"device": {"name": " ", "model": "m", "os": "o"}}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	rec = serve(mux, http.MethodPost, "/devices", `{not json`, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec.Code)
	}
}
