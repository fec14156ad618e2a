package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhajir-foundation/muhajir-api/internal/models"
	"github.com/muhajir-foundation/muhajir-api/internal/services/api_key"
)

// APIKeyHandler handles HTTP requests related to API keys
type APIKeyHandler struct {
	apiKeyService *api_key.Service
	crud          *CRUDHandler[models.APIKey, noCreate[models.APIKey], models.APIKeyUpdateRequest]
}

// NewAPIKeyHandler creates a new APIKeyHandler instance
func NewAPIKeyHandler(apiKeyService *api_key.Service) *APIKeyHandler {
	crud := NewCRUDHandler[models.APIKey, noCreate[models.APIKey], models.APIKeyUpdateRequest](
		apiKeyService.Repository().CRUDRepository, "API key",
	).WithoutCreate()

	return &APIKeyHandler{
		apiKeyService: apiKeyService,
		crud:          crud,
	}
}

// Register mounts issue, list, get, update and delete under rg
func (h *APIKeyHandler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	h.crud.Register(rg)
}

// Create handles POST /api/v1/admin/api-keys
// @Summary Issue API key
// @Description Create a key pair for a bot. The secret is only ever returned by this call.
// @Tags admin-api-keys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.APIKeyCreateRequest true "Key name and initial state"
// @Success 201 {object} models.APIKeyCreatedResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/admin/api-keys [post]
func (h *APIKeyHandler) Create(c *gin.Context) {
	var req models.APIKeyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	apiKey, err := h.apiKeyService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewAPIKeyCreatedResponse(apiKey))
}
