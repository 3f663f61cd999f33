package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/upasthiti/admin-console/internal/view"
)

// Sheet is one worksheet of an export.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

const maxSheetName = 31

// Export writes sheets as an XLSX workbook. Header rows are bold and
// frozen.
func Export(w io.Writer, sheets []Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if len(sheets) == 0 {
		sheets = []Sheet{{Name: "Empty"}}
	}
	used := make(map[string]int)
	for i, s := range sheets {
		name := sheetName(s.Name, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}

		if len(s.Header) > 0 {
			if err := f.SetSheetRow(name, "A1", &s.Header); err != nil {
				return err
			}
			last, _ := excelize.CoordinatesToCellName(len(s.Header), 1)
			if err := f.SetCellStyle(name, "A1", last, bold); err != nil {
				return err
			}
			if err := f.SetPanes(name, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
				return err
			}
		}
		for r, row := range s.Rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return err
			}
		}
	}
	f.SetActiveSheet(0)
	_, err = f.WriteTo(w)
	return err
}

// sheetName makes a valid, unique worksheet name.
func sheetName(name string, used map[string]int) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "Sheet"
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	key := strings.ToLower(name)
	used[key]++
	if n := used[key]; n > 1 {
		suffix := fmt.Sprintf(" (%d)", n)
		r := []rune(name)
		if len(r)+len(suffix) > maxSheetName {
			r = r[:maxSheetName-len(suffix)]
		}
		name = string(r) + suffix
	}
	return name
}

var (
	facultyHeader = []string{"Faculty ID", "Name", "Email", "Phone", "Type", "Department"}
	studentHeader = []string{"Enrollment No", "Name", "Email", "Phone", "Branch", "Batch End"}
)

// FacultySheets lays out a faculty roster, one sheet per rank.
func FacultySheets(r view.Roster[view.FacultyCard]) []Sheet {
	sheets := make([]Sheet, 0, len(r.Groups))
	for _, g := range r.Groups {
		s := Sheet{Name: g.Heading, Header: facultyHeader}
		for _, m := range g.Members {
			s.Rows = append(s.Rows, []string{m.FacultyID, m.Name, m.Email, m.Phone, m.Type, m.Department})
		}
		sheets = append(sheets, s)
	}
	return sheets
}

// StudentSheets lays out a student roster, one sheet per graduation year.
func StudentSheets(r view.Roster[view.StudentCard]) []Sheet {
	sheets := make([]Sheet, 0, len(r.Groups))
	for _, g := range r.Groups {
		s := Sheet{Name: g.Heading, Header: studentHeader}
		for _, m := range g.Members {
			s.Rows = append(s.Rows, []string{m.EnrollmentNo, m.Name, m.Email, m.Phone, m.BranchName, m.BatchEnd})
		}
		sheets = append(sheets, s)
	}
	return sheets
}
