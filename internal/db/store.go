package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/upasthiti/admin-console/internal/models"
	"github.com/upasthiti/admin-console/internal/session"
)

// Store keeps per-identity console state in SQL, one JSON payload per row.
type Store struct {
	db *gorm.DB
}

func NewStore(conn *gorm.DB) *Store {
	return &Store{db: conn}
}

func (s *Store) LoadProfile(ctx context.Context, uid string) (*models.AdminProfile, error) {
	var row models.CachedProfile
	if err := s.db.WithContext(ctx).Where("uid = ?", uid).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, session.ErrNoState
		}
		return nil, err
	}
	var p models.AdminProfile
	if err := json.Unmarshal(row.Payload, &p); err != nil {
		return nil, fmt.Errorf("decode cached profile: %w", err)
	}
	return &p, nil
}

func (s *Store) SaveProfile(ctx context.Context, p *models.AdminProfile) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	row := models.CachedProfile{UID: p.UID, Payload: payload}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
}

func (s *Store) LoadSettings(ctx context.Context, uid string) (*models.AppSettings, error) {
	var row models.StoredSettings
	if err := s.db.WithContext(ctx).Where("uid = ?", uid).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, session.ErrNoState
		}
		return nil, err
	}
	var out models.AppSettings
	if err := json.Unmarshal(row.Payload, &out); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &out, nil
}

func (s *Store) SaveSettings(ctx context.Context, uid string, in models.AppSettings) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	row := models.StoredSettings{UID: uid, Payload: payload}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
}

func (s *Store) Forget(ctx context.Context, uid string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("uid = ?", uid).Delete(&models.CachedProfile{}).Error; err != nil {
			return err
		}
		return tx.Where("uid = ?", uid).Delete(&models.StoredSettings{}).Error
	})
}

func (s *Store) ProfileUIDs(ctx context.Context) ([]string, error) {
	var uids []string
	err := s.db.WithContext(ctx).Model(&models.CachedProfile{}).Order("uid").Pluck("uid", &uids).Error
	return uids, err
}
