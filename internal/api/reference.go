package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/types"
)

// ReferenceHandler serves tags and ingredients. Lists are not paginated.
type ReferenceHandler struct {
	reference service.IReferenceService
	auth      middleware.TokenValidator
}

func NewReferenceHandler(reference service.IReferenceService, auth middleware.TokenValidator) *ReferenceHandler {
	return &ReferenceHandler{reference: reference, auth: auth}
}

func (h *ReferenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	required := middleware.AuthMiddleware(h.auth)

	tags := router.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.GET("/:id", h.GetTag)
		tags.POST("", required, h.SaveTag)
		tags.PUT("/:id", required, h.SaveTag)
		tags.DELETE("/:id", required, h.DeleteTag)
	}

	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)
		ingredients.POST("", required, h.SaveIngredient)
		ingredients.PUT("/:id", required, h.SaveIngredient)
		ingredients.DELETE("/:id", required, h.DeleteIngredient)
	}
}

func (h *ReferenceHandler) ListTags(c *gin.Context) {
	tags, err := h.reference.ListTags(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, nonNil(tags))
}

func (h *ReferenceHandler) GetTag(c *gin.Context) {
	id, err := idParam(c, "tag")
	if err != nil {
		_ = c.Error(err)
		return
	}
	tag, err := h.reference.GetTag(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// SaveTag handles both POST /tags and PUT /tags/:id
func (h *ReferenceHandler) SaveTag(c *gin.Context) {
	var id uint
	if c.Param("id") != "" {
		var err error
		if id, err = idParam(c, "tag"); err != nil {
			_ = c.Error(err)
			return
		}
	}
	var req types.TagRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	tag, err := h.reference.SaveTag(c.Request.Context(), middleware.ViewerFrom(c), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(savedStatus(id), tag)
}

func (h *ReferenceHandler) DeleteTag(c *gin.Context) {
	id, err := idParam(c, "tag")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.reference.DeleteTag(c.Request.Context(), middleware.ViewerFrom(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListIngredients supports ?name= as a case-insensitive prefix filter
func (h *ReferenceHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.reference.ListIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, nonNil(ingredients))
}

func (h *ReferenceHandler) GetIngredient(c *gin.Context) {
	id, err := idParam(c, "ingredient")
	if err != nil {
		_ = c.Error(err)
		return
	}
	ingredient, err := h.reference.GetIngredient(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *ReferenceHandler) SaveIngredient(c *gin.Context) {
	var id uint
	if c.Param("id") != "" {
		var err error
		if id, err = idParam(c, "ingredient"); err != nil {
			_ = c.Error(err)
			return
		}
	}
	var req types.IngredientRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	ingredient, err := h.reference.SaveIngredient(c.Request.Context(), middleware.ViewerFrom(c), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(savedStatus(id), ingredient)
}

func (h *ReferenceHandler) DeleteIngredient(c *gin.Context) {
	id, err := idParam(c, "ingredient")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.reference.DeleteIngredient(c.Request.Context(), middleware.ViewerFrom(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func savedStatus(id uint) int {
	if id == 0 {
		return http.StatusCreated
	}
	return http.StatusOK
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
