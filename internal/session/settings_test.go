package session

import (
	"context"
	"errors"
	"testing"

	"github.com/upasthiti/admin-console/internal/models"
)

func TestSettingsDefaultWhenMissing(t *testing.T) {
	s := NewSettings(NewMemoryStore(), nil)
	got := s.Get(context.Background(), "u-1")
	if got != models.DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", got)
	}
	if !got.Privacy.ShowEmail || got.Privacy.ShowPhone {
		t.Fatalf("unexpected default privacy %+v", got.Privacy)
	}
}

func TestSettingsSaveValidates(t *testing.T) {
	s := NewSettings(NewMemoryStore(), nil)
	bad := models.DefaultSettings()
	bad.Appearance.Theme = "neon"
	if err := s.Save(context.Background(), "u-1", bad); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}

	good := models.DefaultSettings()
	good.Appearance.Theme = "dark"
	good.Privacy.ShowEmail = false
	if err := s.Save(context.Background(), "u-1", good); err != nil {
		t.Fatalf("save: %v", err)
	}
	if p := s.Privacy(context.Background(), "u-1"); p.ShowEmail {
		t.Fatalf("expected saved privacy, got %+v", p)
	}
}

func TestSetAuthMethod(t *testing.T) {
	s := NewSettings(NewMemoryStore(), nil)
	got, err := s.SetAuthMethod(context.Background(), "u-1", AuthMethodEmail, "ignored@vips.edu")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Auth.AuthMethod != AuthMethodEmail || got.Auth.GoogleEmail != "" {
		t.Fatalf("unexpected auth settings %+v", got.Auth)
	}
	if _, err := s.SetAuthMethod(context.Background(), "u-1", "sms", ""); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected invalid method to be rejected, got %v", err)
	}
}

type brokenSettingsStore struct {
	*MemoryStore
}

func (brokenSettingsStore) LoadSettings(context.Context, string) (*models.AppSettings, error) {
	return nil, errors.New("connection refused")
}

func TestPrivacyHidesEverythingWhenStoreFails(t *testing.T) {
	s := NewSettings(brokenSettingsStore{NewMemoryStore()}, nil)
	if p := s.Privacy(context.Background(), "u-1"); p.ShowEmail || p.ShowPhone {
		t.Fatalf("expected closed privacy on store failure, got %+v", p)
	}
	if got := s.Get(context.Background(), "u-1"); got != models.DefaultSettings() {
		t.Fatalf("expected defaults for display, got %+v", got)
	}
}

func TestPrivacyHidesEverythingWhenStoredRecordIsInvalid(t *testing.T) {
	store := NewMemoryStore()
	bad := models.DefaultSettings()
	bad.Appearance.Theme = "neon"
	bad.Privacy.ShowEmail = false
	if err := store.SaveSettings(context.Background(), "u-1", bad); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	s := NewSettings(store, nil)
	if p := s.Privacy(context.Background(), "u-1"); p.ShowEmail || p.ShowPhone {
		t.Fatalf("expected closed privacy for an invalid record, got %+v", p)
	}
}

func TestSetAuthMethodDoesNotOverwriteUnreadableSettings(t *testing.T) {
	s := NewSettings(brokenSettingsStore{NewMemoryStore()}, nil)
	if _, err := s.SetAuthMethod(context.Background(), "u-1", AuthMethodEmail, ""); err == nil {
		t.Fatalf("expected the load failure to be returned")
	}
}
