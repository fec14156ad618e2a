package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/muhajir-foundation/muhajir-api/internal/database/repository"
	"github.com/muhajir-foundation/muhajir-api/internal/models"
	"github.com/muhajir-foundation/muhajir-api/internal/services"
)

// PublicHandler serves the read-only site content and the contact form.
type PublicHandler struct {
	fund            *repository.FundRepository
	publications    *repository.PublicationRepository
	campaigns       *repository.CampaignRepository
	wallets         *repository.WalletRepository
	feedbackService *services.FeedbackService
}

func NewPublicHandler(
	fund *repository.FundRepository,
	publications *repository.PublicationRepository,
	campaigns *repository.CampaignRepository,
	wallets *repository.WalletRepository,
	feedbackService *services.FeedbackService,
) *PublicHandler {
	return &PublicHandler{
		fund:            fund,
		publications:    publications,
		campaigns:       campaigns,
		wallets:         wallets,
		feedbackService: feedbackService,
	}
}

// FundInfo godoc
// @Summary Foundation details
// @Description Name, contacts, social links and bank details
// @Tags public
// @Produce json
// @Success 200 {object} models.FundInfo
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/fund/info [get]
func (h *PublicHandler) FundInfo(c *gin.Context) {
	info, err := h.fund.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if info == nil {
		respondNotFound(c, "Fund info")
		return
	}
	c.JSON(http.StatusOK, info)
}

// ListPublications godoc
// @Summary Published items
// @Tags public
// @Produce json
// @Param skip query int false "Rows to skip"
// @Param limit query int false "Maximum rows" default(100)
// @Success 200 {array} models.Publication
// @Router /api/v1/publications [get]
func (h *PublicHandler) ListPublications(c *gin.Context) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	items, err := h.publications.ListActive(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetPublication godoc
// @Summary One published item
// @Description Counts a view on every successful read
// @Tags public
// @Produce json
// @Param id path int true "Publication ID"
// @Success 200 {object} models.Publication
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/publications/{id} [get]
func (h *PublicHandler) GetPublication(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	pub, err := h.publications.GetActive(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if pub == nil {
		respondNotFound(c, "Publication")
		return
	}
	if err := h.publications.IncrementViews(ctx, id); err != nil {
		logrus.WithError(err).Warnf("Failed to count view of publication %d", id)
	} else {
		pub.Views++
	}
	c.JSON(http.StatusOK, pub)
}

// ListCampaigns godoc
// @Summary Active donation campaigns with wallets
// @Tags public
// @Produce json
// @Param skip query int false "Rows to skip"
// @Param limit query int false "Maximum rows" default(100)
// @Success 200 {array} models.DonationCampaign
// @Router /api/v1/campaigns [get]
func (h *PublicHandler) ListCampaigns(c *gin.Context) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	items, err := h.campaigns.ListActive(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetCampaign godoc
// @Summary Campaign by public identifier
// @Tags public
// @Produce json
// @Param uuid path string true "Campaign UUID"
// @Success 200 {object} models.DonationCampaign
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{uuid} [get]
func (h *PublicHandler) GetCampaign(c *gin.Context) {
	campaign, err := h.campaigns.GetByUUID(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		respondError(c, err)
		return
	}
	if campaign == nil || !campaign.IsActive {
		respondNotFound(c, "Campaign")
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// GetWallet godoc
// @Summary Wallet by public identifier
// @Tags public
// @Produce json
// @Param uuid path string true "Wallet UUID"
// @Success 200 {object} models.Wallet
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/wallets/{uuid} [get]
func (h *PublicHandler) GetWallet(c *gin.Context) {
	wallet, err := h.wallets.GetByUUID(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		respondError(c, err)
		return
	}
	if wallet == nil {
		respondNotFound(c, "Wallet")
		return
	}
	c.JSON(http.StatusOK, wallet)
}

// SubmitFeedback godoc
// @Summary Leave feedback
// @Tags public
// @Accept json
// @Produce json
// @Param request body models.FeedbackCreateRequest true "Feedback"
// @Success 201 {object} models.Feedback
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/feedback [post]
func (h *PublicHandler) SubmitFeedback(c *gin.Context) {
	var req models.FeedbackCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	fb, err := h.feedbackService.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}
