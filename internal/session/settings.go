package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/upasthiti/admin-console/internal/logging"
	"github.com/upasthiti/admin-console/internal/models"
)

var ErrInvalidSettings = errors.New("session: invalid settings")

const (
	AuthMethodGoogle = "google"
	AuthMethodEmail  = "email"
)

// Settings serves each administrator's console preferences. Missing or
// unreadable settings display as the defaults, but an unreadable record
// never widens what the redaction policy reveals.
type Settings struct {
	store    Store
	validate *validator.Validate
	log      *zap.Logger
}

func NewSettings(store Store, logger *zap.Logger) *Settings {
	return &Settings{
		store:    store,
		validate: validator.New(),
		log:      logging.OrNop(logger).Named("settings"),
	}
}

func (s *Settings) Get(ctx context.Context, uid string) models.AppSettings {
	saved, err := s.load(ctx, uid)
	if err != nil {
		return models.DefaultSettings()
	}
	return saved
}

// Privacy is the redaction policy for uid. When the stored preferences
// cannot be read the policy hides everything rather than falling back to
// the defaults.
func (s *Settings) Privacy(ctx context.Context, uid string) models.PrivacySettings {
	saved, err := s.load(ctx, uid)
	switch {
	case errors.Is(err, ErrNoState):
		return models.DefaultSettings().Privacy
	case err != nil:
		return models.PrivacySettings{}
	}
	return saved.Privacy
}

func (s *Settings) load(ctx context.Context, uid string) (models.AppSettings, error) {
	saved, err := s.store.LoadSettings(ctx, uid)
	if err != nil {
		if !errors.Is(err, ErrNoState) {
			s.log.Warn("load settings", zap.String("uid", uid), zap.Error(err))
		}
		return models.AppSettings{}, err
	}
	if err := s.validate.Struct(saved); err != nil {
		s.log.Warn("stored settings are invalid", zap.String("uid", uid), zap.Error(err))
		return models.AppSettings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return *saved, nil
}

func (s *Settings) Save(ctx context.Context, uid string, in models.AppSettings) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return s.store.SaveSettings(ctx, uid, in)
}

// SetAuthMethod records which sign-in method the administrator uses.
// googleEmail is kept only for the Google method.
func (s *Settings) SetAuthMethod(ctx context.Context, uid, method, googleEmail string) (models.AppSettings, error) {
	current, err := s.load(ctx, uid)
	switch {
	case errors.Is(err, ErrNoState):
		current = models.DefaultSettings()
	case err != nil:
		return models.AppSettings{}, err
	}
	current.Auth = models.AuthSettings{AuthMethod: method}
	if method == AuthMethodGoogle {
		current.Auth.GoogleEmail = googleEmail
	}
	if err := s.Save(ctx, uid, current); err != nil {
		return models.AppSettings{}, err
	}
	return current, nil
}
