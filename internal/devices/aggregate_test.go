package devices_test

import (
	"testing"

	"github.com/JaimeStill/device-inventory/internal/devices"
	"github.com/google/uuid"
)

func TestJoin(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	orphan := uuid.New()

	devs := []devices.Device{{ID: a, Name: "a"}, {ID: b, Name: "b"}, {ID: c, Name: "c"}}
	versions := []devices.SoftwareVersion{
		{DeviceID: b, Name: "b1"},
		{DeviceID: a, Name: "a1"},
		{DeviceID: orphan, Name: "x"},
		{DeviceID: b, Name: "b2"},
		{DeviceID: a, Name: "a2"},
	}

	got := devices.Join(devs, versions)

	want := map[string][]string{
		"a": {"a1", "a2"},
		"b": {"b1", "b2"},
		"c": {},
	}

	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	for i, d := range got {
		if d.ID != devs[i].ID {
			t.Errorf("device %d reordered", i)
		}
		if d.SoftwareVersions == nil {
			t.Errorf("%s: nil versions", d.Name)
		}
		names := make([]string, len(d.SoftwareVersions))
		for j, v := range d.SoftwareVersions {
			names[j] = v.Name
		}
		if len(names) != len(want[d.Name]) {
			t.Errorf("%s: versions = %v, want %v", d.Name, names, want[d.Name])
			continue
		}
		for j := range names {
			if names[j] != want[d.Name][j] {
				t.Errorf("%s: versions = %v, want %v", d.Name, names, want[d.Name])
			}
		}
	}
}

func TestJoin_Empty(t *testing.T) {
	if got := devices.Join(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("Join(nil, nil) = %#v", got)
	}
}
