// Package output renders extraction results in the fixed column order
// shared by the table preview and every export format.
package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/xuri/excelize/v2"

	"github.com/candex/candex/internal/extract"
)

// Columns is the presentation order for every output format.
var Columns = []string{
	"name",
	"email",
	"phone",
	"pan",
	"aadhaar",
	"address",
	"bank_account",
	"ifsc",
	"emergency_contact_name",
	"emergency_contact_phone",
	"source_file_name",
}

// WriteTable renders records as an ASCII table preview.
func WriteTable(w io.Writer, records []extract.Record) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(Columns)
	for i := range records {
		table.Append(records[i].Values())
	}
	table.Render()
}

// WriteCSV writes a header row followed by one row per record. Absent
// fields render as empty cells.
func WriteCSV(w io.Writer, records []extract.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("csv write header: %w", err)
	}
	for i := range records {
		if err := cw.Write(records[i].Values()); err != nil {
			return fmt.Errorf("csv write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX returns an XLSX workbook with one "Candidates" sheet: a
// header row and one row per record.
func WriteXLSX(records []extract.Record) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Candidates"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defaultIndex, _ := f.GetSheetIndex("Sheet1"); defaultIndex != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	for i, h := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for rowIdx := range records {
		for colIdx, v := range records[rowIdx].Values() {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "B", 24) // name, email
	_ = f.SetColWidth(sheet, "C", "E", 16) // phone, pan, aadhaar
	_ = f.SetColWidth(sheet, "F", "F", 48) // address
	_ = f.SetColWidth(sheet, "G", "H", 20) // bank account, ifsc
	_ = f.SetColWidth(sheet, "I", "J", 24) // emergency contact
	_ = f.SetColWidth(sheet, "K", "K", 32) // source file

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
