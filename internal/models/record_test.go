// ABOUTME: Tests for Record, Photo refs, Settings and date helpers.
// ABOUTME: Validates builders, ref round-trips and settings updates.
package models

import (
	"testing"
	"time"
)

func TestNewRecord(t *testing.T) {
	at := time.Date(2024, 3, 5, 21, 15, 0, 0, time.UTC)
	r := NewRecord(at, 82.5).WithSleep(7.5).WithWater(2).WithNote("ok")

	if r.DateString() != "2024-03-05" {
		t.Errorf("DateString = %s, want 2024-03-05", r.DateString())
	}
	if r.Weight != 82.5 {
		t.Errorf("Weight = %f, want 82.5", r.Weight)
	}
	if r.Sleep == nil || *r.Sleep != 7.5 {
		t.Error("expected Sleep to be 7.5")
	}
	if r.Waist != nil {
		t.Error("expected Waist to be unset")
	}
	if r.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestRecordPhotoRefs(t *testing.T) {
	r := NewRecord(time.Now(), 80).WithPhotoRef(PhotoSide, "photo:side:2024-01-01")

	if r.PhotoRef(PhotoFront) != nil {
		t.Error("expected no front ref")
	}
	if got := r.PhotoRef(PhotoSide); got == nil || *got != "photo:side:2024-01-01" {
		t.Errorf("side ref = %v", got)
	}
}

func TestPhotoRefRoundTrip(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ref := PhotoRef(PhotoFront, date)
	if ref != "photo:front:2024-01-01" {
		t.Fatalf("PhotoRef = %s", ref)
	}

	pt, d, err := ParsePhotoRef(ref)
	if err != nil {
		t.Fatalf("ParsePhotoRef: %v", err)
	}
	if pt != PhotoFront || !d.Equal(date) {
		t.Errorf("got (%s, %v)", pt, d)
	}

	for _, bad := range []string{"data:image/png;base64,AA==", "photo:back:2024-01-01", "photo:front:01/01/2024"} {
		if _, _, err := ParsePhotoRef(bad); err == nil {
			t.Errorf("ParsePhotoRef(%q) expected error", bad)
		}
	}
	if !IsInlinePhoto("data:image/jpeg;base64,/9j/") || IsInlinePhoto(ref) {
		t.Error("IsInlinePhoto misclassified")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2024-01-03", "2024-01-03", false},
		{"03/01/2024", "2024-01-03", false},
		{"2024/01/03", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && FormatDate(got) != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.input, FormatDate(got), tt.want)
			}
		})
	}
}

func TestDateHelpers(t *testing.T) {
	wed := time.Date(2024, 1, 3, 15, 0, 0, 0, time.UTC)

	if got := FormatDate(StartOfWeek(wed)); got != "2023-12-31" {
		t.Errorf("StartOfWeek = %s, want 2023-12-31", got)
	}
	if got := DaysBetween(wed, wed.AddDate(0, 0, 10)); got != 10 {
		t.Errorf("DaysBetween = %d, want 10", got)
	}
}

func TestSettingsApply(t *testing.T) {
	s := DefaultSettings()
	name := "Ana"
	target := 70.0
	deadline := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	got := s.Apply(SettingsUpdate{Name: &name, TargetWeight: &target, Deadline: &deadline})
	if got.Name != "Ana" || got.TargetWeight != 70 {
		t.Errorf("Apply did not set fields: %+v", got)
	}
	if got.Deadline == nil || FormatDate(*got.Deadline) != "2024-06-01" {
		t.Errorf("Deadline = %v", got.Deadline)
	}
	if got.InitialWeight != 88 || got.ReminderTime != "20:00" {
		t.Errorf("Apply changed untouched fields: %+v", got)
	}
	if s.Name != "User" {
		t.Error("Apply mutated the receiver")
	}

	cleared := got.Apply(SettingsUpdate{ClearDeadline: true})
	if cleared.Deadline != nil {
		t.Error("expected ClearDeadline to remove the deadline")
	}
	if !(SettingsUpdate{}).IsEmpty() || (SettingsUpdate{ClearDeadline: true}).IsEmpty() {
		t.Error("IsEmpty misreported")
	}
}
