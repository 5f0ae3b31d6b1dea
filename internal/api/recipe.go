package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sanchezegido/recipedia/internal/cache"
	"github.com/sanchezegido/recipedia/internal/i18n"
	"github.com/sanchezegido/recipedia/internal/middleware"
	"github.com/sanchezegido/recipedia/internal/models"
	"github.com/sanchezegido/recipedia/internal/search"
	"github.com/sanchezegido/recipedia/internal/service"
	"github.com/sanchezegido/recipedia/internal/types"
)

type RecipeHandler struct {
	recipes service.IRecipeService
	catalog *i18n.Catalog
	logger  *zap.Logger
}

func NewRecipeHandler(recipes service.IRecipeService, catalog *i18n.Catalog, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		catalog: catalog,
		logger:  logger.With(zap.String("component", "recipe_handler")),
	}
}

// RegisterRoutes mounts the recipe routes on router. Handlers in mutate run
// in front of every route that changes state.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, mutate ...gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	with := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, mutate...), handler)
	}
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/search", h.SearchRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", with(h.CreateRecipe)...)
		recipes.PUT("/:id", with(h.UpdateRecipe)...)
		recipes.PATCH("/:id", with(h.PartialUpdateRecipe)...)
		recipes.DELETE("/:id", with(h.DeleteRecipe)...)
		recipes.POST("/:id/ingredients/:ingredient", with(h.AddIngredient)...)
		recipes.DELETE("/:id/ingredients/:ingredient", with(h.DeleteIngredient)...)
		recipes.POST("/:id/tags/:tag", with(h.AddTag)...)
		recipes.DELETE("/:id/tags/:tag", with(h.DeleteTag)...)
		recipes.POST("/:id/reviews", with(h.AddReview)...)
	}
}

func (h *RecipeHandler) fail(c *gin.Context, err error) {
	respondError(c, h.catalog, h.logger, err)
}

// render writes a body produced for media
func render(c *gin.Context, media cache.MediaType, body []byte) {
	c.Data(http.StatusOK, contentTypes[media], body)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	media, ok := negotiate(c)
	if !ok {
		h.fail(c, service.ErrUnsupportedMedia)
		return
	}
	page, err := service.ParsePage(c.Query("page"))
	if err != nil {
		h.fail(c, err)
		return
	}
	body, err := h.recipes.ListRecipes(c.Request.Context(), page, media)
	if err != nil {
		h.fail(c, err)
		return
	}
	render(c, media, body)
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	media, ok := negotiate(c)
	if !ok {
		h.fail(c, service.ErrUnsupportedMedia)
		return
	}
	var params search.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		invalidBody(c, h.catalog, err)
		return
	}
	body, err := h.recipes.SearchRecipes(c.Request.Context(), params, media)
	if err != nil {
		h.fail(c, err)
		return
	}
	render(c, media, body)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	media, ok := negotiate(c)
	if !ok {
		h.fail(c, service.ErrUnsupportedMedia)
		return
	}
	body, err := h.recipes.RetrieveRecipe(c.Request.Context(), c.Param("id"), media)
	if err != nil {
		h.fail(c, err)
		return
	}
	render(c, media, body)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	var req types.RecipeRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, h.catalog, err)
		return
	}
	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), user, &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+recipe.ID.String())
	c.Status(http.StatusCreated)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	var req types.RecipeRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, h.catalog, err)
		return
	}
	if err := h.recipes.UpdateRecipe(c.Request.Context(), c.Param("id"), user, &req); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *RecipeHandler) PartialUpdateRecipe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		invalidBody(c, h.catalog, err)
		return
	}
	if err := h.recipes.PartialUpdateRecipe(c.Request.Context(), c.Param("id"), user, body); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if err := h.recipes.DeleteRecipe(c.Request.Context(), c.Param("id"), user); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *RecipeHandler) AddIngredient(c *gin.Context) {
	h.child(c, http.StatusCreated, h.recipes.AddIngredient, "ingredient")
}

func (h *RecipeHandler) DeleteIngredient(c *gin.Context) {
	h.child(c, http.StatusOK, h.recipes.DeleteIngredient, "ingredient")
}

func (h *RecipeHandler) AddTag(c *gin.Context) {
	h.child(c, http.StatusCreated, h.recipes.AddTag, "tag")
}

func (h *RecipeHandler) DeleteTag(c *gin.Context) {
	h.child(c, http.StatusOK, h.recipes.DeleteTag, "tag")
}

type childOp func(ctx context.Context, id string, user *models.User, value string) error

// child runs an ingredient or tag mutation named by the path parameter param
func (h *RecipeHandler) child(c *gin.Context, status int, op childOp, param string) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if err := op(c.Request.Context(), c.Param("id"), user, c.Param(param)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(status)
}

func (h *RecipeHandler) AddReview(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	var req types.ReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c, h.catalog, err)
		return
	}
	if err := h.recipes.AddReview(c.Request.Context(), c.Param("id"), user, &req); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusCreated)
}
