package importexport

import (
	"fmt"
	"time"

	"github.com/smith3v/tg-phrase-reminder/pkg/db"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{"Word", "Translation", "Example", "Source"}

// BuildExportXLSX renders the entries as a single-sheet workbook with a
// header row.
func BuildExportXLSX(entries []db.WordEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, exportHeader)
	for _, e := range entries {
		rows = append(rows, []string{e.Word, e.Translation, e.ExamplePhrase, e.ExampleSource})
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}
	if err := f.SetColWidth(sheet, "A", "B", 24); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "C", "C", 60); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func ExportFilename(now time.Time) string {
	return fmt.Sprintf("vocabulary-%s.xlsx", now.Format("20060102"))
}
