package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestFlexStringAcceptsNumbers(t *testing.T) {
	tests := map[string]string{
		`"9876543210"`: "9876543210",
		`9876543210`:   "9876543210",
		`2027`:         "2027",
		`null`:         "",
	}
	for in, want := range tests {
		var f FlexString
		if err := json.Unmarshal([]byte(in), &f); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if f.String() != want {
			t.Fatalf("%s: expected %q, got %q", in, want, f)
		}
	}
}

func TestDateFormats(t *testing.T) {
	var d struct {
		From  Date `json:"from"`
		Until Date `json:"until"`
		Unset Date `json:"unset"`
	}
	if err := json.Unmarshal([]byte(`{"from":"2027-01-01","until":"2028-01-01T00:00:00Z","unset":null}`), &d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.From.ISO() != "2027-01-01" || d.Until.ISO() != "2028-01-01" {
		t.Fatalf("unexpected dates %s %s", d.From.ISO(), d.Until.ISO())
	}
	if d.From.String() != "Fri Jan 01 2027" {
		t.Fatalf("unexpected display form %q", d.From.String())
	}
	if !d.Unset.IsZero() || d.Unset.ISO() != "" || d.Unset.String() != "" {
		t.Fatalf("expected zero date")
	}
	if _, err := ParseDate("01/01/2027"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestParseDay(t *testing.T) {
	tests := map[string]Day{"Monday": Monday, "tue": Tuesday, " SATURDAY ": Saturday, "sun": Sunday}
	for in, want := range tests {
		got, err := ParseDay(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %s, got %s (%v)", in, want, got, err)
		}
	}
	for _, bad := range []string{"", "mo", "funday"} {
		if _, err := ParseDay(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}

func TestInitialAndPartial(t *testing.T) {
	if (AdminProfile{Name: " asha"}).Initial() != "A" || (StudentRecord{}).Initial() != "" {
		t.Fatalf("unexpected initials")
	}
	r := UploadResult{Stats: UploadStats{Total: 10, Successful: 8, Failed: 2}}
	if !r.Partial() {
		t.Fatalf("8 of 10 is a partial import")
	}
	r.Stats.Successful = 10
	if r.Partial() {
		t.Fatalf("10 of 10 is not partial")
	}
}
