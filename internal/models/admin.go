package models

// AdminProfile is the signed-in administrator as stored by the backend.
type AdminProfile struct {
	ID             string     `json:"_id,omitempty"`
	AdminID        string     `json:"adminId" validate:"required"`
	Name           string     `json:"name" validate:"required"`
	OfficialEmail  string     `json:"officialEmail"`
	PhoneNumber    FlexString `json:"phoneNumber"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
	SchoolID       string     `json:"schoolId"`
	UID            string     `json:"uid" validate:"required"`
	School         SchoolInfo `json:"school"`
}

type SchoolInfo struct {
	Name string `json:"name"`
}

// Initial is the avatar fallback shown when no picture is set.
func (a AdminProfile) Initial() string {
	return initial(a.Name)
}
