package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
)

const SheetName = "Reservas"

var headers = []string{
	"ID", "Fecha", "Inicio", "Fin", "Estado",
	"Cliente", "Teléfono", "Email", "Servicio", "Peluquero", "Precio", "Notas",
}

var statusLabels = map[string]string{
	"pending":   "Pendiente",
	"confirmed": "Confirmada",
	"cancelled": "Cancelada",
}

// WriteReservations renders one row per reservation, a header row and a
// total of non cancelled prices, and writes the workbook to w.
func WriteReservations(w io.Writer, from, to string, rows []dto.ReservationListDTO) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(SheetName, "A1", fmt.Sprintf("Período: %s - %s", from, to))
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	_ = f.SetCellStyle(SheetName, "A1", "A1", titleStyle)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(SheetName, cell, h)
		_ = f.SetCellStyle(SheetName, cell, cell, headerStyle)
	}

	var total float64
	for i, r := range rows {
		row := i + 3
		status := statusLabels[r.Status]
		if status == "" {
			status = r.Status
		}

		values := []any{
			r.ID, r.Date, r.StartTime, r.EndTime, status,
			r.ClientName, r.ClientPhone, r.ClientEmail, r.ServiceName, r.StylistName, r.FinalPrice, r.Notes,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("error writing row %d: %w", row, err)
		}

		if r.Status != "cancelled" {
			total += r.FinalPrice
		}
	}

	totalRow := len(rows) + 3
	_ = f.SetCellValue(SheetName, fmt.Sprintf("J%d", totalRow), "Total")
	_ = f.SetCellValue(SheetName, fmt.Sprintf("K%d", totalRow), total)
	_ = f.SetCellStyle(SheetName, fmt.Sprintf("J%d", totalRow), fmt.Sprintf("K%d", totalRow), titleStyle)

	_ = f.SetColWidth(SheetName, "A", "E", 12)
	_ = f.SetColWidth(SheetName, "F", "J", 22)
	_ = f.SetColWidth(SheetName, "L", "L", 40)

	_ = f.DeleteSheet("Sheet1")

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

func FileName(from, to string) string {
	return fmt.Sprintf("reservas_%s_a_%s.xlsx", from, to)
}
