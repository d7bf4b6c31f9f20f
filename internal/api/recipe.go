package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/repository"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/types"
)

type RecipeHandler struct {
	recipes     service.IRecipeService
	relations   service.IRelationService
	shopping    service.IShoppingListService
	auth        middleware.TokenValidator
	rateLimiter *middleware.RateLimiter
	pageSize    int
}

func NewRecipeHandler(deps *Dependencies) *RecipeHandler {
	pageSize := deps.PageSize
	if pageSize <= 0 {
		pageSize = 6
	}
	return &RecipeHandler{
		recipes:     deps.Recipes,
		relations:   deps.Relations,
		shopping:    deps.Shopping,
		auth:        deps.Auth,
		rateLimiter: deps.RateLimiter,
		pageSize:    pageSize,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	required := middleware.AuthMiddleware(h.auth)
	create := []gin.HandlerFunc{required}
	if h.rateLimiter != nil {
		create = append(create, h.rateLimiter.RateLimitMiddleware())
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuth(h.auth), h.Collection)
		recipes.POST("", append(create, h.Collection)...)
		recipes.GET("/download_shopping_cart", required, h.DownloadShoppingCart)

		recipes.GET("/:id", middleware.OptionalAuth(h.auth), h.Item)
		recipes.PUT("/:id", required, h.Item)
		recipes.PATCH("/:id", required, h.Item)
		recipes.DELETE("/:id", required, h.DeleteRecipe)

		recipes.POST("/:id/favorite", required, h.addRelation(repository.FavoriteRelation))
		recipes.DELETE("/:id/favorite", required, h.removeRelation(repository.FavoriteRelation))
		recipes.POST("/:id/shopping_cart", required, h.addRelation(repository.PurchaseRelation))
		recipes.DELETE("/:id/shopping_cart", required, h.removeRelation(repository.PurchaseRelation))
	}
}

// Collection serves /recipes: reads list, writes create
func (h *RecipeHandler) Collection(c *gin.Context) {
	switch service.RepresentationFor(c.Request.Method) {
	case service.WriteRepresentation:
		h.CreateRecipe(c)
	default:
		h.ListRecipes(c)
	}
}

// Item serves /recipes/:id: reads retrieve, writes update
func (h *RecipeHandler) Item(c *gin.Context) {
	switch service.RepresentationFor(c.Request.Method) {
	case service.WriteRepresentation:
		h.UpdateRecipe(c)
	default:
		h.GetRecipe(c)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	p, err := parsePage(c, h.pageSize)
	if err != nil {
		_ = c.Error(err)
		return
	}

	q := service.RecipeQuery{
		Tags:             c.QueryArray("tags"),
		IsFavorited:      flagParam(c, "is_favorited"),
		IsInShoppingCart: flagParam(c, "is_in_shopping_cart"),
		Limit:            p.Limit,
		Offset:           p.offset(),
	}
	if raw := c.Query("author"); raw != "" {
		authorID, err := uuid.Parse(raw)
		if err != nil {
			_ = c.Error(service.ValidationError("author", "select a valid author"))
			return
		}
		q.AuthorID = &authorID
	}

	recipes, total, err := h.recipes.List(c.Request.Context(), middleware.ViewerFrom(c), q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if p.Page > 1 && int64(p.offset()) >= total {
		_ = c.Error(service.NotFoundError("invalid page"))
		return
	}
	c.JSON(http.StatusOK, newPage(c, p, total, recipes))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := idParam(c, "recipe")
	if err != nil {
		_ = c.Error(err)
		return
	}
	recipe, err := h.recipes.Get(c.Request.Context(), middleware.ViewerFrom(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.RecipeWriteRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	recipe, err := h.recipes.Create(c.Request.Context(), middleware.ViewerFrom(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := idParam(c, "recipe")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req types.RecipeWriteRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	recipe, err := h.recipes.Update(c.Request.Context(), middleware.ViewerFrom(c), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := idParam(c, "recipe")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.recipes.Delete(c.Request.Context(), middleware.ViewerFrom(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) addRelation(kind repository.RelationKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c, "recipe")
		if err != nil {
			_ = c.Error(err)
			return
		}
		summary, err := h.relations.Add(c.Request.Context(), kind, middleware.ViewerFrom(c), id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, summary)
	}
}

func (h *RecipeHandler) removeRelation(kind repository.RelationKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c, "recipe")
		if err != nil {
			_ = c.Error(err)
			return
		}
		if err := h.relations.Remove(c.Request.Context(), kind, middleware.ViewerFrom(c), id); err != nil {
			_ = c.Error(err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// DownloadShoppingCart sends the aggregated shopping list as a text file
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	body, err := h.shopping.Render(c.Request.Context(), middleware.ViewerFrom(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.ShoppingListFilename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", body)
}
