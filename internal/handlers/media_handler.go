package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhajir-foundation/muhajir-api/internal/services"
)

type MediaHandler struct {
	mediaService *services.MediaService
}

func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// UploadImage godoc
// @Summary Attach an image to a publication
// @Tags admin-publications
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Publication ID"
// @Param file formData file true "Image file"
// @Success 201 {object} models.PublicationImage
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 413 {object} map[string]interface{}
// @Router /api/v1/admin/publications/{id}/images [post]
func (h *MediaHandler) UploadImage(c *gin.Context) {
	h.upload(c, func(ctx context.Context, id uint, fh *multipart.FileHeader) (interface{}, error) {
		return h.mediaService.UploadImage(ctx, id, fh)
	})
}

// UploadVideo godoc
// @Summary Attach a video to a publication
// @Tags admin-publications
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Publication ID"
// @Param file formData file true "Video file"
// @Success 201 {object} models.PublicationVideo
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 413 {object} map[string]interface{}
// @Router /api/v1/admin/publications/{id}/videos [post]
func (h *MediaHandler) UploadVideo(c *gin.Context) {
	h.upload(c, func(ctx context.Context, id uint, fh *multipart.FileHeader) (interface{}, error) {
		return h.mediaService.UploadVideo(ctx, id, fh)
	})
}

func (h *MediaHandler) upload(c *gin.Context, store func(context.Context, uint, *multipart.FileHeader) (interface{}, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Form field \"file\" is required", "details": err.Error()})
		return
	}

	row, err := store(c.Request.Context(), id, fh)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, row)
	case errors.Is(err, services.ErrPublicationNotFound):
		respondNotFound(c, "Publication")
	case errors.Is(err, services.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnsupportedMedia):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
	default:
		respondError(c, err)
	}
}

// DeleteImage godoc
// @Summary Remove a publication image and its file
// @Tags admin-publications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Image ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/admin/publications/images/{id} [delete]
func (h *MediaHandler) DeleteImage(c *gin.Context) {
	h.remove(c, "Image", h.mediaService.DeleteImage)
}

// DeleteVideo godoc
// @Summary Remove a publication video and its file
// @Tags admin-publications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/admin/publications/videos/{id} [delete]
func (h *MediaHandler) DeleteVideo(c *gin.Context) {
	h.remove(c, "Video", h.mediaService.DeleteVideo)
}

func (h *MediaHandler) remove(c *gin.Context, entity string, del func(context.Context, uint) (bool, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := del(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondNotFound(c, entity)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": entity + " deleted successfully"})
}
