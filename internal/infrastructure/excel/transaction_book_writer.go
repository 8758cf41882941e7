// Package excel genera el libro de transacciones descargable en formato XLSX.
package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/onedelivery/onedelivery-api/internal/application/report"
	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
)

var _ report.TransactionBookWriter = (*TransactionBookWriter)(nil)

const sheetName = "Transacciones"

var bookHeaders = []string{
	"Transaction No", "Type", "Driver", "Branch", "Oil Type",
	"Total Loaded Liters", "Oil Supplied Liters", "Actual Delivered Liters",
	"Start Meter Reading", "End Meter Reading", "Status", "Created At", "Last Edited At",
}

// TransactionBookWriter implementa report.TransactionBookWriter con excelize.
type TransactionBookWriter struct{}

// NewTransactionBookWriter construye el escritor.
func NewTransactionBookWriter() *TransactionBookWriter { return &TransactionBookWriter{} }

// Write genera el XLSX en memoria y devuelve sus bytes.
func (w *TransactionBookWriter) Write(txs []*entity.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	f.SetCellValue(sheetName, "A1", "Libro de transacciones")
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 24)
	f.SetCellValue(sheetName, "A2", "Generado: "+time.Now().Format("2006-01-02 15:04:05"))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#00467F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	const headerRow = 4
	for i, h := range bookHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	for r, t := range txs {
		values := []any{
			t.TransactionNo, t.Type, t.DriverName, t.BranchName, t.OilTypeName,
			t.TotalLoadedLiters.String(), t.OilSuppliedLiters.String(), t.ActualDeliveredLiters.String(),
			t.StartMeterReading.String(), t.EndMeterReading.String(), t.Status,
			t.CreatedAt.Format("2006-01-02 15:04:05"), formatEditedAt(t.LastEditedAt),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, headerRow+1+r)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func formatEditedAt(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
