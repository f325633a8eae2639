package utils

import (
	"github.com/xuri/excelize/v2"
)

// ExcelColumn describes one sheet column: header text plus width.
type ExcelColumn struct {
	Header string
	Width  float64
}

// dataStartRow is the first data row; row 1 holds the header.
const dataStartRow = 2

// MergeRun is a vertical run of rows [Start, End] sharing one cell value.
type MergeRun struct {
	Start int
	End   int
}

// AdjacentRuns returns the runs of adjacent identical values, as 1-based row
// numbers offset past the header. Runs of length 1 are omitted; non-adjacent
// repeats of the same value stay separate.
func AdjacentRuns(values []string) []MergeRun {
	var runs []MergeRun
	start := 0
	for i := 0; i < len(values); i++ {
		last := i == len(values)-1
		if last || values[i] != values[i+1] {
			if i > start {
				runs = append(runs, MergeRun{Start: start + dataStartRow, End: i + dataStartRow})
			}
			start = i + 1
		}
	}
	return runs
}

// MergeColumn merges adjacent identical cells in the given 1-based column,
// starting below the header row.
func MergeColumn(f *excelize.File, sheet string, col int, rowCount int) error {
	values := make([]string, 0, rowCount)
	for row := dataStartRow; row <= rowCount; row++ {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		v, err := f.GetCellValue(sheet, cell)
		if err != nil {
			return err
		}
		values = append(values, v)
	}

	for _, run := range AdjacentRuns(values) {
		top, err := excelize.CoordinatesToCellName(col, run.Start)
		if err != nil {
			return err
		}
		bottom, err := excelize.CoordinatesToCellName(col, run.End)
		if err != nil {
			return err
		}
		if err := f.MergeCell(sheet, top, bottom); err != nil {
			return err
		}
	}
	return nil
}

// BuildSheet fills a worksheet with a styled header row and the given data
// rows, returning the total row count (header included).
func BuildSheet(f *excelize.File, sheet string, columns []ExcelColumn, rows [][]interface{}) (int, error) {
	for i, col := range columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return 0, err
		}
		if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
			return 0, err
		}
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return 0, err
		}
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			return 0, err
		}
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+dataStartRow)
			if err != nil {
				return 0, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return 0, err
			}
		}
	}

	rowCount := len(rows) + 1

	headerStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return 0, err
	}
	lastHeaderCell, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return 0, err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeaderCell, headerStyle); err != nil {
		return 0, err
	}

	for row := 1; row <= rowCount; row++ {
		if err := f.SetRowHeight(sheet, row, 32); err != nil {
			return 0, err
		}
	}

	return rowCount, nil
}
