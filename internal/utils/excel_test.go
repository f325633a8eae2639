package utils

import (
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestAdjacentRuns_MergesAdjacent(t *testing.T) {
	runs := AdjacentRuns([]string{"a", "a", "a", "b"})

	expected := []MergeRun{{Start: 2, End: 4}}
	if !reflect.DeepEqual(runs, expected) {
		t.Errorf("AdjacentRuns() = %v, expected %v", runs, expected)
	}
}

func TestAdjacentRuns_NonAdjacentStaySeparate(t *testing.T) {
	runs := AdjacentRuns([]string{"a", "a", "b", "a", "a"})

	expected := []MergeRun{{Start: 2, End: 3}, {Start: 5, End: 6}}
	if !reflect.DeepEqual(runs, expected) {
		t.Errorf("AdjacentRuns() = %v, expected %v", runs, expected)
	}
}

func TestAdjacentRuns_SingletonsOmitted(t *testing.T) {
	runs := AdjacentRuns([]string{"a", "b", "c"})

	if len(runs) != 0 {
		t.Errorf("AdjacentRuns() = %v, expected no runs", runs)
	}
}

func TestAdjacentRuns_Empty(t *testing.T) {
	if runs := AdjacentRuns(nil); len(runs) != 0 {
		t.Errorf("AdjacentRuns(nil) = %v, expected no runs", runs)
	}
}

func TestAdjacentRuns_AllIdentical(t *testing.T) {
	runs := AdjacentRuns([]string{"x", "x"})

	expected := []MergeRun{{Start: 2, End: 3}}
	if !reflect.DeepEqual(runs, expected) {
		t.Errorf("AdjacentRuns() = %v, expected %v", runs, expected)
	}
}

func TestBuildSheet_And_MergeColumn(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	columns := []ExcelColumn{
		{Header: "ID", Width: 10},
		{Header: "Group", Width: 20},
		{Header: "Value", Width: 30},
	}
	rows := [][]interface{}{
		{"-", "auth", "signup"},
		{"-", "auth", "signin"},
		{"-", "projects", "create"},
	}

	rowCount, err := BuildSheet(f, sheet, columns, rows)
	if err != nil {
		t.Fatalf("BuildSheet() error = %v", err)
	}
	if rowCount != 4 {
		t.Errorf("rowCount = %d, expected 4", rowCount)
	}

	header, _ := f.GetCellValue(sheet, "B1")
	if header != "Group" {
		t.Errorf("header B1 = %q, expected %q", header, "Group")
	}
	cell, _ := f.GetCellValue(sheet, "B3")
	if cell != "auth" {
		t.Errorf("cell B3 = %q, expected %q", cell, "auth")
	}

	if err := MergeColumn(f, sheet, 2, rowCount); err != nil {
		t.Fatalf("MergeColumn() error = %v", err)
	}

	merged, err := f.GetMergeCells(sheet)
	if err != nil {
		t.Fatalf("GetMergeCells() error = %v", err)
	}
	if len(merged) != 1 {
		t.Fatalf("merge count = %d, expected 1", len(merged))
	}
	if merged[0].GetStartAxis() != "B2" || merged[0].GetEndAxis() != "B3" {
		t.Errorf("merged range = %s:%s, expected B2:B3",
			merged[0].GetStartAxis(), merged[0].GetEndAxis())
	}
}
