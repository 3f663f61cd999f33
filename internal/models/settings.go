package models

type AppearanceSettings struct {
	Theme string `json:"theme" validate:"oneof=light dark"`
}

type PrivacySettings struct {
	ShowEmail   bool `json:"showEmail"`
	ShowPhone   bool `json:"showPhone"`
	DataSharing bool `json:"dataSharing"`
}

type SecuritySettings struct {
	TwoFactorAuth  bool   `json:"twoFactorAuth"`
	SessionTimeout string `json:"sessionTimeout" validate:"numeric"`
	LoginAlerts    bool   `json:"loginAlerts"`
}

type AuthSettings struct {
	AuthMethod  string `json:"authMethod" validate:"oneof=google email"`
	GoogleEmail string `json:"googleEmail,omitempty" validate:"omitempty,email"`
}

// AppSettings is the per-administrator console preference bundle.
type AppSettings struct {
	Appearance AppearanceSettings `json:"appearance"`
	Privacy    PrivacySettings    `json:"privacy"`
	Security   SecuritySettings   `json:"security"`
	Auth       AuthSettings       `json:"auth"`
}

func DefaultSettings() AppSettings {
	return AppSettings{
		Appearance: AppearanceSettings{Theme: "light"},
		Privacy:    PrivacySettings{ShowEmail: true},
		Security:   SecuritySettings{SessionTimeout: "30", LoginAlerts: true},
		Auth:       AuthSettings{AuthMethod: "google"},
	}
}
