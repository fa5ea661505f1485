// Package export renders a measurement list as a [Name, Area] table with a
// trailing total row.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"plan-measure/measure"
)

const (
	SheetName = "Measurements"
	TotalName = "Total"
)

var Header = []string{"Name", "Area (m²)"}

// Row is one line of the exported table.
type Row struct {
	Name string
	Area float64
}

// Rows returns one row per measurement in list order followed by the total.
func Rows(list []measure.Measurement) []Row {
	rows := lo.Map(list, func(m measure.Measurement, _ int) Row {
		return Row{Name: m.Name, Area: round2(m.AreaM2)}
	})
	total := lo.SumBy(list, func(m measure.Measurement) float64 { return m.AreaM2 })
	return append(rows, Row{Name: TotalName, Area: round2(total)})
}

func round2(v float64) float64 {
	f, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return f
}

// Write renders list in the given format ("csv" or "xlsx").
func Write(w io.Writer, format string, list []measure.Measurement) error {
	switch strings.ToLower(format) {
	case "csv":
		return WriteCSV(w, list)
	case "xlsx":
		return WriteXLSX(w, list)
	}
	return errors.Errorf("unknown export format %q", format)
}

// ContentType returns the MIME type for a format accepted by Write.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case "csv":
		return "text/csv"
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

func WriteCSV(w io.Writer, list []measure.Measurement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return errors.Wrap(err, "write csv")
	}
	for _, r := range Rows(list) {
		if err := cw.Write([]string{r.Name, strconv.FormatFloat(r.Area, 'f', 2, 64)}); err != nil {
			return errors.Wrap(err, "write csv")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "write csv")
}

func WriteXLSX(w io.Writer, list []measure.Measurement) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return errors.Wrap(err, "write xlsx")
	}
	if err := f.SetSheetRow(SheetName, "A1", &[]interface{}{Header[0], Header[1]}); err != nil {
		return errors.Wrap(err, "write xlsx")
	}

	for i, r := range Rows(list) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "write xlsx")
		}
		if err := f.SetSheetRow(SheetName, cell, &[]interface{}{r.Name, r.Area}); err != nil {
			return errors.Wrap(err, "write xlsx")
		}
	}

	_, err := f.WriteTo(w)
	return errors.Wrap(err, "write xlsx")
}
