package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhajir-foundation/muhajir-api/internal/database/repository"
)

// Creator is a create payload that can build the model it describes.
type Creator[T any] interface {
	ToModel() (*T, error)
}

// Patcher is a partial update payload. Changes returns only the columns the
// client actually sent.
type Patcher interface {
	Changes() (map[string]interface{}, error)
}

// CRUDHandler serves list, get, create, update and delete for one entity
// over the generic repository. C and U are the bound request types.
type CRUDHandler[T any, C Creator[T], U Patcher] struct {
	repo        *repository.CRUDRepository[T]
	entity      string
	allowCreate bool
	remove      func(ctx context.Context, id uint) (bool, error)
}

// NewCRUDHandler creates a handler. entity is the singular display name used
// in messages, e.g. "Campaign".
func NewCRUDHandler[T any, C Creator[T], U Patcher](repo *repository.CRUDRepository[T], entity string) *CRUDHandler[T, C, U] {
	return &CRUDHandler[T, C, U]{repo: repo, entity: entity, allowCreate: true, remove: repo.Remove}
}

// WithoutCreate drops the POST route from Register.
func (h *CRUDHandler[T, C, U]) WithoutCreate() *CRUDHandler[T, C, U] {
	h.allowCreate = false
	return h
}

// WithRemover replaces the delete step, for entities that own more than
// their row.
func (h *CRUDHandler[T, C, U]) WithRemover(remove func(ctx context.Context, id uint) (bool, error)) *CRUDHandler[T, C, U] {
	h.remove = remove
	return h
}

// Register mounts the handler on rg. Updates answer on PUT and PATCH.
func (h *CRUDHandler[T, C, U]) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	if h.allowCreate {
		rg.POST("", h.Create)
	}
	rg.PUT("/:id", h.Update)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// List handles GET with optional skip and limit query parameters
func (h *CRUDHandler[T, C, U]) List(c *gin.Context) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	items, err := h.repo.GetMulti(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CRUDHandler[T, C, U]) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	obj, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if obj == nil {
		respondNotFound(c, h.entity)
		return
	}
	c.JSON(http.StatusOK, obj)
}

func (h *CRUDHandler[T, C, U]) Create(c *gin.Context) {
	var req C
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	obj, err := req.ToModel()
	if err != nil {
		respondError(c, err)
		return
	}
	created, err := h.repo.Create(c.Request.Context(), obj)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update applies a partial update. Fields missing from the body are left as
// they are; an empty body returns the record unchanged.
func (h *CRUDHandler[T, C, U]) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req U
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	changes, err := req.Changes()
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	existing, err := h.repo.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing == nil {
		respondNotFound(c, h.entity)
		return
	}

	updated, err := h.repo.Update(ctx, existing, changes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CRUDHandler[T, C, U]) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.remove(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondNotFound(c, h.entity)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": h.entity + " deleted successfully"})
}

// noCreate fills the Creator slot for entities whose POST route is served by
// a dedicated handler.
type noCreate[T any] struct{}

func (noCreate[T]) ToModel() (*T, error) {
	return nil, fmt.Errorf("%w: create is not available here", repository.ErrValidation)
}
