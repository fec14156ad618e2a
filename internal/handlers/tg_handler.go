package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhajir-foundation/muhajir-api/internal/database/repository"
)

// TgHandler serves the bot-facing Telegram endpoints.
type TgHandler struct {
	tgUsers *repository.TgUserRepository
}

func NewTgHandler(tgUsers *repository.TgUserRepository) *TgHandler {
	return &TgHandler{tgUsers: tgUsers}
}

// ListTelegramIDs godoc
// @Summary Registered Telegram chat ids
// @Description Requires x-api-key and x-api-signature, the hex HMAC-SHA256 of "all" under the key's secret.
// @Tags tg
// @Produce json
// @Param x-api-key header string true "API key"
// @Param x-api-signature header string true "HMAC-SHA256 signature"
// @Success 200 {array} int64
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/tg/all [get]
func (h *TgHandler) ListTelegramIDs(c *gin.Context) {
	ids, err := h.tgUsers.ListTelegramIDs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ids)
}
