package models

import "time"

// CachedProfile is the persisted last-known AdminProfile of one identity.
type CachedProfile struct {
	UID       string `gorm:"primaryKey;size:128"`
	Payload   []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// StoredSettings is the persisted AppSettings of one identity.
type StoredSettings struct {
	UID       string `gorm:"primaryKey;size:128"`
	Payload   []byte `gorm:"not null"`
	UpdatedAt time.Time
}
