package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"
)

// Format names a supported export encoding.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
	FormatExcel   Format = "xlsx"
	FormatPDF     Format = "pdf"
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSON, FormatParquet, FormatExcel, FormatPDF:
		return Format(s), nil
	case "excel":
		return FormatExcel, nil
	}
	return "", fmt.Errorf("unsupported export format: %s", s)
}

// ContentType returns the download MIME type for a format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatJSON:
		return "application/json"
	case FormatParquet:
		return "application/vnd.apache.parquet"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Write encodes rows in the given format.
func Write(w io.Writer, format Format, rows []Row, title string) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatParquet:
		return writeParquet(w, rows)
	case FormatExcel:
		return writeExcel(w, rows)
	case FormatPDF:
		return writePDF(w, rows, title)
	}
	return fmt.Errorf("unsupported export format: %s", format)
}

func writeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.ID, r.Acquired, r.Title, r.Franchise, r.Description, r.Source,
			strconv.FormatFloat(r.OriginalCost, 'f', 2, 64),
			strconv.FormatFloat(r.CurrentValue, 'f', 2, 64),
			r.IsVerified,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func writeParquet(w io.Writer, rows []Row) error {
	pw := parquet.NewGenericWriter[Row](w)
	if _, err := pw.Write(rows); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}

// writeExcel produces an "Export" sheet with currency formatting on the
// money columns and a trailing totals row driven by SUM formulas.
func writeExcel(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Export"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &Headers); err != nil {
		return err
	}
	for i, r := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []any{
			r.ID, r.Acquired, r.Title, r.Franchise, r.Description, r.Source,
			r.OriginalCost, r.CurrentValue, r.IsVerified,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	currencyFmt := "$#,##0.00"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFmt})
	if err != nil {
		return err
	}
	lastData := len(rows) + 1
	totalRow := lastData + 1
	if err := f.SetCellStyle(sheet, "G2", fmt.Sprintf("H%d", totalRow), style); err != nil {
		return err
	}

	if err := f.SetCellStr(sheet, fmt.Sprintf("F%d", totalRow), "Total:"); err != nil {
		return err
	}
	for _, col := range []string{"G", "H"} {
		formula := fmt.Sprintf("SUM(%s2:%s%d)", col, col, lastData)
		if err := f.SetCellFormula(sheet, fmt.Sprintf("%s%d", col, totalRow), formula); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// writePDF renders a landscape A4 grid in the style of the site's PDF
// export: small cells, filled header band, document title line.
func writePDF(w io.Writer, rows []Row, title string) error {
	pdf := fpdf.New("L", "pt", "A4", "")
	pdf.SetAutoPageBreak(true, 30)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(40, 30, title)

	widths := []float64{40, 65, 130, 90, 200, 90, 70, 70, 60}
	rowHeight := 14.0

	pdf.SetY(50)
	pdf.SetX(40)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range Headers {
		pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(rowHeight)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for _, r := range rows {
		cells := []string{
			r.ID, r.Acquired, r.Title, r.Franchise, r.Description, r.Source,
			strconv.FormatFloat(r.OriginalCost, 'f', 2, 64),
			strconv.FormatFloat(r.CurrentValue, 'f', 2, 64),
			r.IsVerified,
		}
		pdf.SetX(40)
		for i, cell := range cells {
			pdf.CellFormat(widths[i], rowHeight, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(rowHeight)
	}

	return pdf.Output(w)
}
