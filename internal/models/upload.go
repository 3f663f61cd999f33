package models

import (
	"bytes"

	"github.com/goccy/go-json"
)

type UploadStats struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// UploadedAccount is the part of an imported row the credential export needs.
type UploadedAccount struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UploadResult is the backend's answer to a bulk CSV import. A partial
// failure still has Success set; callers inspect Stats.
type UploadResult struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Stats   UploadStats       `json:"stats"`
	Data    []UploadedAccount `json:"data"`
	Errors  []UploadRowError  `json:"errors,omitempty"`
}

// UploadRowError describes one rejected row. The backend sends either an
// object with a row number and message or a bare string; both decode.
type UploadRowError struct {
	Row     FlexString `json:"row,omitempty"`
	Message string     `json:"error,omitempty"`
}

// UnmarshalJSON never fails: a shape it does not recognise is kept as raw
// text in Message so a partial import is still reported.
func (e *UploadRowError) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*e = UploadRowError{}
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		return nil
	case b[0] == '"':
		if err := json.Unmarshal(b, &e.Message); err == nil {
			return nil
		}
	case b[0] == '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(b, &raw); err == nil {
			if row, ok := raw["row"]; ok {
				if err := e.Row.UnmarshalJSON(row); err != nil {
					e.Row = FlexString(bytes.TrimSpace(row))
				}
			}
			for _, key := range []string{"error", "message"} {
				if msg, ok := raw[key]; ok {
					var s string
					if err := json.Unmarshal(msg, &s); err != nil {
						s = string(bytes.TrimSpace(msg))
					}
					e.Message = s
					return nil
				}
			}
			return nil
		}
	}
	e.Message = string(b)
	return nil
}

// Partial reports whether some but not all rows were imported.
func (r UploadResult) Partial() bool {
	return r.Stats.Successful > 0 && r.Stats.Successful < r.Stats.Total
}

// Counts is the aggregate returned by the count endpoint.
type Counts struct {
	StudentTotal  int
	ByBranch      map[string]int
	FacultyByType map[string]int
}

// UploadCredential authorizes one signed upload to the image host.
type UploadCredential struct {
	Timestamp int64  `json:"timestamp" validate:"required"`
	Signature string `json:"signature" validate:"required"`
	APIKey    string `json:"apiKey" validate:"required"`
	Folder    string `json:"folder"`
}
