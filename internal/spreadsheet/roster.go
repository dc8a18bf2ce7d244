// Package spreadsheet exports and imports person rosters as Excel workbooks.
//
// A roster workbook has one sheet per kind. Row 1 holds the header, data
// starts at row 2 with the columns Name, Age and Major (Students sheet) or
// Subject (Teachers sheet).
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/asakaida/edurecords/internal/entities"
	"github.com/xuri/excelize/v2"
)

// Sheet names, one per kind
const (
	StudentsSheet = "Students"
	TeachersSheet = "Teachers"
)

var sheetKinds = []struct {
	sheet  string
	kind   entities.Kind
	header []interface{}
}{
	{StudentsSheet, entities.KindStudent, []interface{}{"Name", "Age", "Major"}},
	{TeachersSheet, entities.KindTeacher, []interface{}{"Name", "Age", "Subject"}},
}

// WriteRoster writes persons to w as an .xlsx workbook
func WriteRoster(w io.Writer, persons []entities.Person) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", closeErr)
		}
	}()

	defaultSheet := f.GetSheetName(0)

	for _, sk := range sheetKinds {
		if _, err := f.NewSheet(sk.sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sk.sheet, err)
		}
		if err := f.SetSheetRow(sk.sheet, "A1", &sk.header); err != nil {
			return fmt.Errorf("failed to write header of %s: %w", sk.sheet, err)
		}

		row := 2
		for _, p := range persons {
			if p.Kind != sk.kind {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			values := []interface{}{p.Name, p.Age, p.Attribute()}
			if err := f.SetSheetRow(sk.sheet, cell, &values); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", sk.sheet, row, err)
			}
			row++
		}
	}

	if err := f.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

// ReadRoster reads persons from an .xlsx workbook written by WriteRoster
// Missing sheets are treated as empty; blank rows are skipped.
func ReadRoster(r io.Reader) (persons []entities.Person, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", closeErr)
		}
	}()

	persons = make([]entities.Person, 0)
	for _, sk := range sheetKinds {
		if idx, _ := f.GetSheetIndex(sk.sheet); idx < 0 {
			continue
		}

		rows, err := f.GetRows(sk.sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sk.sheet, err)
		}

		for i, row := range rows {
			if i == 0 || isBlank(row) {
				continue
			}
			p, err := rowToPerson(sk.kind, row)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", sk.sheet, i+1, err)
			}
			persons = append(persons, p)
		}
	}

	return persons, nil
}

func rowToPerson(kind entities.Kind, row []string) (entities.Person, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	name := cell(0)
	if name == "" {
		return entities.Person{}, errors.New("name is required")
	}
	age, err := strconv.Atoi(cell(1))
	if err != nil {
		return entities.Person{}, fmt.Errorf("invalid age %q", cell(1))
	}

	return entities.NewPerson(string(kind), name, age, cell(2))
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
