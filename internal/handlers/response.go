package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/muhajir-foundation/muhajir-api/internal/database/repository"
	"github.com/muhajir-foundation/muhajir-api/internal/utils"
)

// respondError writes the status that matches err. Server faults are
// logged and answered without their details.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Record already exists", "details": err.Error()})
	default:
		logrus.WithError(err).Errorf("%s %s failed", c.Request.Method, c.FullPath())
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
}

func respondNotFound(c *gin.Context, entity string) {
	c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
}

// pathID parses a numeric path parameter, answering 400 itself on failure.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := utils.ParseID(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// pageParams reads skip and limit, answering 400 itself on failure.
func pageParams(c *gin.Context) (int, int, bool) {
	skip, limit, err := utils.ParseSkipLimit(c.Query("skip"), c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination", "details": err.Error()})
		return 0, 0, false
	}
	return skip, limit, true
}
