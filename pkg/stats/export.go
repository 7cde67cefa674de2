package stats

import (
	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/xuri/excelize/v2"
)

// WriteTSV writes the records with a title line, tab separated.
func WriteTSV(path string, records []Record) {
	var out = osUtil.Create(path)
	defer simpleUtil.DeferClose(out)

	fmtUtil.FprintStringArray(out, Title, "\t")
	for _, r := range records {
		fmtUtil.FprintStringArray(out, r.Values(), "\t")
	}
}

// Xlsx returns a one-sheet workbook holding the records.
func Xlsx(records []Record) (*excelize.File, error) {
	var xlsx = excelize.NewFile()
	if err := fillSheet(xlsx, records); err != nil {
		simpleUtil.DeferClose(xlsx)
		return nil, err
	}
	return xlsx, nil
}

func fillSheet(xlsx *excelize.File, records []Record) error {
	if err := xlsx.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	if err := xlsx.SetSheetRow(SheetName, "A1", &Title); err != nil {
		return err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		var row = r.Values()
		if err = xlsx.SetSheetRow(SheetName, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func WriteXlsx(path string, records []Record) error {
	xlsx, err := Xlsx(records)
	if err != nil {
		return err
	}
	defer simpleUtil.DeferClose(xlsx)
	return xlsx.SaveAs(path)
}
