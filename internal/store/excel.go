package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"
)

// ExcelAdapter keeps each table as a sheet of a local .xlsx workbook: a header
// row followed by one row per record. Cells are stored as UTF-8, so Chinese
// headers and values round-trip unchanged.
type ExcelAdapter struct {
	mu   sync.Mutex
	path string
}

func NewExcelAdapter(path string) *ExcelAdapter {
	return &ExcelAdapter{path: filepath.Clean(path)}
}

func (e *ExcelAdapter) Load(_ context.Context, table string) ([]Row, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	f, err := excelize.OpenFile(e.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Row{}, nil
	}
	if err != nil {
		return nil, unavailable("load", table, err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(table); idx == -1 {
		return []Row{}, nil
	}
	cells, err := f.GetRows(table)
	if err != nil {
		return nil, unavailable("load", table, err)
	}
	if len(cells) == 0 {
		return []Row{}, nil
	}

	head := cells[0]
	rows := make([]Row, 0, len(cells)-1)
	for _, line := range cells[1:] {
		if blank(line) {
			continue
		}
		row := make(Row, len(head))
		for i, col := range head {
			if col == "" || i >= len(line) {
				continue
			}
			row[col] = line[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (e *ExcelAdapter) Save(_ context.Context, table string, rows []Row) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	f, created, err := e.open()
	if err != nil {
		return unavailable("save", table, err)
	}
	defer f.Close()

	idx, _ := f.GetSheetIndex(table)
	if idx == -1 {
		if idx, err = f.NewSheet(table); err != nil {
			return unavailable("save", table, err)
		}
		if created {
			_ = f.DeleteSheet("Sheet1")
		}
	} else if err := clearSheet(f, table); err != nil {
		return unavailable("save", table, err)
	}
	f.SetActiveSheet(idx)

	cols := header(table, rows)
	headCells := make([]any, len(cols))
	for i, c := range cols {
		headCells[i] = c
	}
	if err := f.SetSheetRow(table, "A1", &headCells); err != nil {
		return unavailable("save", table, err)
	}
	for i, r := range rows {
		line := make([]any, len(cols))
		for j, c := range cols {
			line[j] = r[c]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return unavailable("save", table, err)
		}
		if err := f.SetSheetRow(table, cell, &line); err != nil {
			return unavailable("save", table, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(e.path), 0o755); err != nil {
		return unavailable("save", table, err)
	}
	tmp := filepath.Join(filepath.Dir(e.path), ".~"+filepath.Base(e.path))
	if err := f.SaveAs(tmp); err != nil {
		return unavailable("save", table, err)
	}
	if err := os.Rename(tmp, e.path); err != nil {
		_ = os.Remove(tmp)
		return unavailable("save", table, err)
	}
	return nil
}

func (e *ExcelAdapter) open() (*excelize.File, bool, error) {
	f, err := excelize.OpenFile(e.path)
	if errors.Is(err, fs.ErrNotExist) {
		return excelize.NewFile(), true, nil
	}
	return f, false, err
}

func clearSheet(f *excelize.File, sheet string) error {
	cells, err := f.GetRows(sheet)
	if err != nil {
		return err
	}
	for r := len(cells); r >= 1; r-- {
		if err := f.RemoveRow(sheet, r); err != nil {
			return err
		}
	}
	return nil
}

func blank(line []string) bool {
	for _, c := range line {
		if c != "" {
			return false
		}
	}
	return true
}
