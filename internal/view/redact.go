// Package view projects backend records into render-ready shapes. Every
// projection applies the administrator's privacy settings.
package view

import "github.com/upasthiti/admin-console/internal/models"

// Placeholder replaces a hidden email or phone number.
const Placeholder = "•••••"

func Email(email string, p models.PrivacySettings) string {
	if !p.ShowEmail {
		return Placeholder
	}
	return email
}

func Phone(phone string, p models.PrivacySettings) string {
	if !p.ShowPhone {
		return Placeholder
	}
	return phone
}

var departmentNames = map[string]string{
	"DEPT-CSE":   "Computer Science & Engineering",
	"DEPT-APSCI": "Applied Science",
	"DEPT-IT":    "Information Technology",
	"DEPT-ECE":   "Electronics",
	"DEPT-MECH":  "Mechanical Engineering",
	"DEPT-CIVIL": "Civil Engineering",
	"DEPT-EEE":   "Electrical & Electronics",
}

var branchNames = map[string]string{
	"CSE":    "Computer Science & Engineering",
	"AIML":   "Artificial Intelligence and Machine Learning",
	"AIDS":   "Artificial Intelligence and Data Science",
	"CS&AM":  "Computer Science and Applied Mathematics",
	"CSE-CS": "Computer Science and Engineering - Cyber Security",
	"VLSI":   "Very Large Scale Integration",
	"IIOT":   "Industrial to Internet of Things",
}

// DepartmentName returns the long name of a department code, or the code.
func DepartmentName(code string) string {
	if name, ok := departmentNames[code]; ok {
		return name
	}
	return code
}

func BranchName(code string) string {
	if name, ok := branchNames[code]; ok {
		return name
	}
	return code
}
