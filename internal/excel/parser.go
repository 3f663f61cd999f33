package excel

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFile = errors.New("excel: only .csv and .xlsx files are accepted")

// PrepareUpload turns an uploaded roster file into CSV for the backend.
// CSV passes through untouched; XLSX is converted from its first sheet.
func PrepareUpload(filename string, r io.Reader) (string, io.Reader, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return filename, r, nil
	case ".xlsx":
		var buf bytes.Buffer
		if _, err := ToCSV(r, &buf); err != nil {
			return "", nil, err
		}
		return strings.TrimSuffix(filename, filepath.Ext(filename)) + ".csv", &buf, nil
	}
	return "", nil, ErrUnsupportedFile
}

// ToCSV writes the first sheet of a workbook as CSV and returns the number
// of records written. Merged ranges repeat their value in every covered
// cell, rows are padded to the widest row, and trailing blank rows are
// dropped.
func ToCSV(r io.Reader, w io.Writer) (int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, errors.New("excel: workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if err := fillMerged(f, sheet, &rows); err != nil {
		return 0, err
	}

	for len(rows) > 0 && blank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	cw := csv.NewWriter(w)
	for _, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		if err := cw.Write(row); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(rows), cw.Error()
}

// fillMerged copies each merged range's value into every cell it spans.
func fillMerged(f *excelize.File, sheet string, rows *[][]string) error {
	merged, err := f.GetMergeCells(sheet)
	if err != nil {
		return fmt.Errorf("read merged cells: %w", err)
	}
	for _, mc := range merged {
		val := mc.GetCellValue()
		if val == "" {
			continue
		}
		startCol, startRow, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			return err
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			return err
		}
		for r := startRow; r <= endRow; r++ {
			for len(*rows) < r {
				*rows = append(*rows, nil)
			}
			row := (*rows)[r-1]
			for len(row) < endCol {
				row = append(row, "")
			}
			for c := startCol; c <= endCol; c++ {
				row[c-1] = val
			}
			(*rows)[r-1] = row
		}
	}
	return nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
