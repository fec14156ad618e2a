package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/muhajir-foundation/muhajir-api/internal/models"
)

func readSheet(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestExportFeedback(t *testing.T) {
	created := time.Date(2025, 5, 2, 14, 55, 0, 0, time.UTC)
	data, err := NewExcelService().ExportFeedback([]models.Feedback{
		{ID: 1, Name: "Amina", Email: "amina@example.org", Message: "Thank you", CreatedAt: created},
		{ID: 2, Name: "Yusuf", Email: "yusuf@example.org", Message: "How to donate?", IsRead: true, CreatedAt: created},
	})
	require.NoError(t, err)

	rows := readSheet(t, data, "Feedback")
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "name", "email", "message", "is_read", "created_at"}, rows[0])
	assert.Equal(t, "Amina", rows[1][1])
	assert.Equal(t, "How to donate?", rows[2][3])
	assert.Equal(t, "2025-05-02T14:55:00Z", rows[2][5])
}

func TestExportCampaigns(t *testing.T) {
	data, err := NewExcelService().ExportCampaigns([]models.DonationCampaign{
		{
			ID: 7, UUID: "0b7c3a52-6a5e-4c43-9c57-1f1e5d3c9b10", Title: "Winter", Description: "Blankets", IsActive: true,
			Wallets: []models.Wallet{{Name: "main"}, {Name: "backup"}},
		},
	})
	require.NoError(t, err)

	rows := readSheet(t, data, "Campaigns")
	require.Len(t, rows, 2)
	assert.Equal(t, "Winter", rows[1][2])
	assert.Equal(t, "main, backup", rows[1][5])
}

func TestExportEmpty(t *testing.T) {
	data, err := NewExcelService().ExportFeedback(nil)
	require.NoError(t, err)

	rows := readSheet(t, data, "Feedback")
	require.Len(t, rows, 1)
}
