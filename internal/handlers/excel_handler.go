package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muhajir-foundation/muhajir-api/internal/database/repository"
	"github.com/muhajir-foundation/muhajir-api/internal/models"
	"github.com/muhajir-foundation/muhajir-api/internal/services/excel"
)

// ExcelHandler handles HTTP requests related to Excel operations
type ExcelHandler struct {
	excelService *excel.Service
	feedback     *repository.CRUDRepository[models.Feedback]
	campaigns    *repository.CampaignRepository
}

// NewExcelHandler creates a new ExcelHandler instance
func NewExcelHandler(
	excelService *excel.Service,
	feedback *repository.CRUDRepository[models.Feedback],
	campaigns *repository.CampaignRepository,
) *ExcelHandler {
	return &ExcelHandler{
		excelService: excelService,
		feedback:     feedback,
		campaigns:    campaigns,
	}
}

// ExportFeedback handles GET /api/v1/admin/feedback/export
// @Summary Export feedback to Excel
// @Tags admin-feedback
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/feedback/export [get]
func (h *ExcelHandler) ExportFeedback(c *gin.Context) {
	items, err := h.feedback.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := h.excelService.ExportFeedback(items)
	if err != nil {
		respondError(c, err)
		return
	}
	sendWorkbook(c, "feedback", data)
}

// ExportCampaigns handles GET /api/v1/admin/campaigns/export
// @Summary Export donation campaigns to Excel
// @Tags admin-donations
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/campaigns/export [get]
func (h *ExcelHandler) ExportCampaigns(c *gin.Context) {
	items, err := h.campaigns.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := h.excelService.ExportCampaigns(items)
	if err != nil {
		respondError(c, err)
		return
	}
	sendWorkbook(c, "campaigns", data)
}

func sendWorkbook(c *gin.Context, name string, data []byte) {
	filename := fmt.Sprintf("%s_%s.xlsx", name, time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, excel.ContentType, data)
}
