// Package report renders printable documents for bulk-import results.
package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/upasthiti/admin-console/internal/models"
)

type Roster string

const (
	RosterFaculty  Roster = "faculty"
	RosterStudents Roster = "students"
)

// Title is the heading printed on the credential sheet.
func (r Roster) Title() string {
	if r == RosterFaculty {
		return "Uploaded Faculty List"
	}
	return "Uploaded Student Credentials"
}

func (r Roster) Filename() string {
	if r == RosterFaculty {
		return "faculty_credentials.pdf"
	}
	return "student_credentials.pdf"
}

func ParseRoster(s string) (Roster, error) {
	switch Roster(s) {
	case RosterFaculty, RosterStudents:
		return Roster(s), nil
	}
	return "", fmt.Errorf("report: unknown roster %q", s)
}

// Credentials writes an A4 table of the imported accounts with the default
// password each one was created with.
func Credentials(w io.Writer, roster Roster, accounts []models.UploadedAccount, password string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(roster.Title(), true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, roster.Title())
	pdf.Ln(12)

	widths := []float64{65, 80, 45}
	header := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(220, 38, 38)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range []string{"Name", "Email", "Password"} {
			ln := 0
			if i == len(widths)-1 {
				ln = 1
			}
			pdf.CellFormat(widths[i], 8, h, "1", ln, "L", true, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "", 10)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	pdf.SetFillColor(245, 245, 245)
	for i, a := range accounts {
		if pdf.GetY()+7 > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		fill := i%2 == 1
		pdf.CellFormat(widths[0], 7, tr(a.Name), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[1], 7, tr(a.Email), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[2], 7, tr(password), "1", 1, "L", fill, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render credentials pdf: %w", err)
	}
	return nil
}
