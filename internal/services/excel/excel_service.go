// Package excel builds spreadsheet exports for the admin panel.
package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/muhajir-foundation/muhajir-api/internal/models"
)

// ContentType is the MIME type of the workbooks produced here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Service handles Excel exports
type Service struct{}

// NewExcelService creates a new Excel service instance
func NewExcelService() *Service {
	return &Service{}
}

type column struct {
	title string
	width float64
}

// ExportFeedback writes one row per feedback message.
func (s *Service) ExportFeedback(items []models.Feedback) ([]byte, error) {
	columns := []column{
		{"id", 10}, {"name", 25}, {"email", 30}, {"message", 60},
		{"is_read", 10}, {"created_at", 22},
	}
	rows := make([][]interface{}, 0, len(items))
	for _, fb := range items {
		rows = append(rows, []interface{}{
			fb.ID, fb.Name, fb.Email, fb.Message, fb.IsRead, fb.CreatedAt.Format(time.RFC3339),
		})
	}
	return build("Feedback", columns, rows)
}

// ExportCampaigns writes one row per campaign with its wallets listed by name.
func (s *Service) ExportCampaigns(items []models.DonationCampaign) ([]byte, error) {
	columns := []column{
		{"id", 10}, {"uuid", 38}, {"title", 30}, {"description", 50},
		{"is_active", 10}, {"wallets", 30}, {"created_at", 22},
	}
	rows := make([][]interface{}, 0, len(items))
	for _, c := range items {
		names := make([]string, 0, len(c.Wallets))
		for _, w := range c.Wallets {
			names = append(names, w.Name)
		}
		rows = append(rows, []interface{}{
			c.ID, c.UUID, c.Title, c.Description, c.IsActive,
			strings.Join(names, ", "), c.CreatedAt.Format(time.RFC3339),
		})
	}
	return build("Campaigns", columns, rows)
}

func build(sheet string, columns []column, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col.title); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, name, name, col.width)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(columns), 1)
		f.SetCellStyle(sheet, "A1", last, headerStyle)
	}

	for r, row := range rows {
		start, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, start, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
