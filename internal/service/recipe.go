package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanchezegido/recipedia/internal/cache"
	"github.com/sanchezegido/recipedia/internal/metrics"
	"github.com/sanchezegido/recipedia/internal/models"
	"github.com/sanchezegido/recipedia/internal/repository"
	"github.com/sanchezegido/recipedia/internal/search"
	"github.com/sanchezegido/recipedia/internal/types"
)

// RecipeService handles recipe operations. Reads go through the cache layer
// and fall back to the store; every mutation writes to the store and then
// evicts the cached forms of the recipe it touched.
type RecipeService struct {
	recipes  RecipeStore
	reviews  ReviewStore
	cache    *cache.Layer
	renderer Renderer
	validate *validator.Validate
	metrics  *metrics.Collector
	logger   *zap.Logger
}

// Option customises a RecipeService
type Option func(*RecipeService)

// WithRenderer replaces the default body renderer
func WithRenderer(r Renderer) Option {
	return func(s *RecipeService) { s.renderer = r }
}

// WithMetrics records mutations on m
func WithMetrics(m *metrics.Collector) Option {
	return func(s *RecipeService) { s.metrics = m }
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) Option {
	return func(s *RecipeService) { s.logger = l }
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(recipes RecipeStore, reviews ReviewStore, layer *cache.Layer, opts ...Option) *RecipeService {
	s := &RecipeService{
		recipes:  recipes,
		reviews:  reviews,
		cache:    layer,
		renderer: BodyRenderer{},
		validate: NewValidator(),
		logger:   zap.NewNop(),
	}
	if s.cache == nil {
		s.cache = cache.NewLayer(nil, nil, nil)
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("component", "recipe_service"))
	return s
}

// CreateRecipe stores a new recipe owned by user
func (s *RecipeService) CreateRecipe(ctx context.Context, user *models.User, req *types.RecipeRequest) (*models.Recipe, error) {
	if err := s.validateRecipe(req); err != nil {
		return nil, err
	}
	taken, err := s.recipes.ExistsByName(ctx, req.Name, uuid.Nil)
	if err != nil {
		return nil, internal(err)
	}
	if taken {
		return nil, conflict(CodeDuplicateRecipe, nil)
	}

	recipe := &models.Recipe{UserID: user.ID, User: *user}
	assign(recipe, req)
	recipe.Ingredients = models.NewIngredients(req.Ingredients)
	recipe.Tags = models.NewTags(req.Tags)

	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, storeError(err, CodeDuplicateRecipe)
	}
	s.metrics.RecipeMutation("create")
	s.logger.Info("recipe created", zap.String("recipe_id", recipe.ID.String()), zap.String("user_id", user.ID.String()))
	return recipe, nil
}

// RetrieveRecipe returns the rendered recipe, serving both the entity and the
// rendered body from cache when present
func (s *RecipeService) RetrieveRecipe(ctx context.Context, id string, media cache.MediaType) ([]byte, error) {
	if !supported(media) {
		return nil, ErrUnsupportedMedia
	}
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	key := rid.String()

	recipe, err := s.snapshot(ctx, rid)
	if err != nil {
		return nil, err
	}

	responseKey := cache.RecipeResponseKey(key, media)
	if body, ok := s.cache.Get(ctx, responseKey); ok {
		return body, nil
	}
	body, err := s.renderer.Render(types.NewRecipeResponse(recipe), media)
	if err != nil {
		return nil, internal(err)
	}
	s.cache.Set(ctx, responseKey, body, 0)
	return body, nil
}

// snapshot loads a recipe through the entity cache
func (s *RecipeService) snapshot(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	key := cache.RecipeKey(id.String())
	if raw, ok := s.cache.Get(ctx, key); ok {
		var recipe models.Recipe
		if err := json.Unmarshal(raw, &recipe); err == nil {
			return &recipe, nil
		}
		s.logger.Warn("discarding unreadable recipe snapshot", zap.String("key", key))
	}

	recipe, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "")
	}
	if raw, err := json.Marshal(recipe); err == nil {
		s.cache.Set(ctx, key, raw, 0)
	}
	return recipe, nil
}

// UpdateRecipe replaces every mutable field of the recipe
func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, user *models.User, req *types.RecipeRequest) error {
	recipe, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(recipe, user, CodeUpdateUnauthorized); err != nil {
		return err
	}
	if err := s.validateRecipe(req); err != nil {
		return err
	}
	if err := s.ensureNameFree(ctx, req.Name, recipe.ID); err != nil {
		return err
	}

	assign(recipe, req)
	if req.Ingredients != nil {
		recipe.Ingredients = models.NewIngredients(req.Ingredients)
	}
	if req.Tags != nil {
		recipe.Tags = models.NewTags(req.Tags)
	}
	if err := s.recipes.Replace(ctx, recipe); err != nil {
		return storeError(err, CodeDuplicateRecipe)
	}
	s.mutated(ctx, "update", recipe.ID)
	return nil
}

// PartialUpdateRecipe merges the recognised fields of body into the recipe
func (s *RecipeService) PartialUpdateRecipe(ctx context.Context, id string, user *models.User, body map[string]json.RawMessage) error {
	recipe, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(recipe, user, CodeUpdateUnauthorized); err != nil {
		return err
	}
	previous := recipe.Name
	if err := applyPatch(s.validate, recipe, body); err != nil {
		return err
	}
	if recipe.Name != previous {
		if err := s.ensureNameFree(ctx, recipe.Name, recipe.ID); err != nil {
			return err
		}
	}
	if err := s.recipes.Update(ctx, recipe); err != nil {
		return storeError(err, CodeDuplicateRecipe)
	}
	s.mutated(ctx, "partial_update", recipe.ID)
	return nil
}

// DeleteRecipe removes the recipe. Deleting a recipe that does not exist succeeds.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string, user *models.User) error {
	recipe, err := s.find(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := authorize(recipe, user, CodeDeleteUnauthorized); err != nil {
		return err
	}
	if err := s.recipes.Delete(ctx, recipe); err != nil {
		return internal(err)
	}
	s.mutated(ctx, "delete", recipe.ID)
	return nil
}

// ListRecipes returns one page of every recipe, cached per page for a short time
func (s *RecipeService) ListRecipes(ctx context.Context, page int, media cache.MediaType) ([]byte, error) {
	if !supported(media) {
		return nil, ErrUnsupportedMedia
	}
	if page < 0 {
		return nil, validationError(map[string]string{"page": "must not be negative"})
	}
	return s.listPage(ctx, page, media)
}

func (s *RecipeService) listPage(ctx context.Context, page int, media cache.MediaType) ([]byte, error) {
	key := cache.RecipePageKey(page)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var p repository.Page
		if err := json.Unmarshal(raw, &p); err == nil {
			return s.renderPage(page, &p, media)
		}
		s.logger.Warn("discarding unreadable recipe page", zap.String("key", key))
	}

	p, err := s.recipes.FindAll(ctx, page)
	if err != nil {
		return nil, internal(err)
	}
	if raw, err := json.Marshal(p); err == nil {
		s.cache.Set(ctx, key, raw, cache.PageTTL)
	}
	return s.renderPage(page, p, media)
}

// SearchRecipes applies the search parameters. Searches without any filter or
// sort share the listing cache; filtered results are always read from the store.
func (s *RecipeService) SearchRecipes(ctx context.Context, params search.Params, media cache.MediaType) ([]byte, error) {
	if !supported(media) {
		return nil, ErrUnsupportedMedia
	}
	criteria, err := search.Parse(params)
	if err != nil {
		var verr *search.ValidationError
		if errors.As(err, &verr) {
			return nil, validationError(verr.Fields)
		}
		return nil, internal(err)
	}
	if criteria.Unfiltered() {
		return s.listPage(ctx, criteria.Page, media)
	}

	p, err := s.recipes.FindBy(ctx, criteria)
	if err != nil {
		return nil, internal(err)
	}
	return s.renderPage(criteria.Page, p, media)
}

func (s *RecipeService) renderPage(page int, p *repository.Page, media cache.MediaType) ([]byte, error) {
	body, err := s.renderer.Render(types.NewRecipePageResponse(page, p.Total, p.Recipes), media)
	if err != nil {
		return nil, internal(err)
	}
	return body, nil
}

// AddIngredient appends an ingredient the recipe does not list yet
func (s *RecipeService) AddIngredient(ctx context.Context, id string, user *models.User, ingredient string) error {
	recipe, name, err := s.prepareChild(ctx, id, user, "ingredient", ingredient)
	if err != nil {
		return err
	}
	if recipe.HasIngredient(name) {
		return conflict(CodeDuplicateIngredient, nil)
	}
	if err := s.recipes.AddIngredient(ctx, recipe.ID, name); err != nil {
		return storeError(err, CodeDuplicateIngredient)
	}
	s.mutated(ctx, "add_ingredient", recipe.ID)
	return nil
}

// DeleteIngredient removes an ingredient; removing an absent one succeeds
func (s *RecipeService) DeleteIngredient(ctx context.Context, id string, user *models.User, ingredient string) error {
	recipe, err := s.findOwned(ctx, id, user)
	if err != nil || recipe == nil {
		return err
	}
	if err := s.recipes.RemoveIngredient(ctx, recipe.ID, strings.TrimSpace(ingredient)); err != nil {
		return internal(err)
	}
	s.mutated(ctx, "delete_ingredient", recipe.ID)
	return nil
}

// AddTag tags the recipe
func (s *RecipeService) AddTag(ctx context.Context, id string, user *models.User, tag string) error {
	recipe, name, err := s.prepareChild(ctx, id, user, "tag", tag)
	if err != nil {
		return err
	}
	if recipe.HasTag(name) {
		return conflict(CodeDuplicateTag, nil)
	}
	if err := s.recipes.AddTag(ctx, recipe.ID, name); err != nil {
		return storeError(err, CodeDuplicateTag)
	}
	s.mutated(ctx, "add_tag", recipe.ID)
	return nil
}

// DeleteTag removes a tag; removing an absent one succeeds
func (s *RecipeService) DeleteTag(ctx context.Context, id string, user *models.User, tag string) error {
	recipe, err := s.findOwned(ctx, id, user)
	if err != nil || recipe == nil {
		return err
	}
	if err := s.recipes.RemoveTag(ctx, recipe.ID, strings.TrimSpace(tag)); err != nil {
		return internal(err)
	}
	s.mutated(ctx, "delete_tag", recipe.ID)
	return nil
}

// AddReview records user's single review of the recipe
func (s *RecipeService) AddReview(ctx context.Context, id string, user *models.User, req *types.ReviewRequest) error {
	if err := s.validateStruct(req); err != nil {
		return err
	}
	recipe, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	exists, err := s.reviews.Exists(ctx, user.ID, recipe.ID)
	if err != nil {
		return internal(err)
	}
	if exists {
		return conflict(CodeDuplicateReview, nil)
	}
	review := &models.Review{
		Comment:  req.Comment,
		Rating:   *req.Rating,
		UserID:   user.ID,
		RecipeID: recipe.ID,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return storeError(err, CodeDuplicateReview)
	}
	s.mutated(ctx, "add_review", recipe.ID)
	return nil
}

// find loads a recipe from the store; mutations never trust the cache
func (s *RecipeService) find(ctx context.Context, id string) (*models.Recipe, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	recipe, err := s.recipes.FindByID(ctx, rid)
	if err != nil {
		return nil, storeError(err, "")
	}
	return recipe, nil
}

// findOwned loads a recipe for an idempotent removal. A missing recipe yields
// (nil, nil).
func (s *RecipeService) findOwned(ctx context.Context, id string, user *models.User) (*models.Recipe, error) {
	recipe, err := s.find(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := authorize(recipe, user, CodeUpdateUnauthorized); err != nil {
		return nil, err
	}
	return recipe, nil
}

// prepareChild loads and authorises the recipe and validates the sub-resource value
func (s *RecipeService) prepareChild(ctx context.Context, id string, user *models.User, field, value string) (*models.Recipe, string, error) {
	recipe, err := s.find(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if err := authorize(recipe, user, CodeUpdateUnauthorized); err != nil {
		return nil, "", err
	}
	name := strings.TrimSpace(value)
	if msg, ok := check(s.validate, name, "required,max=100"); !ok {
		return nil, "", validationError(map[string]string{field: msg})
	}
	return recipe, name, nil
}

func (s *RecipeService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	taken, err := s.recipes.ExistsByName(ctx, name, self)
	if err != nil {
		return internal(err)
	}
	if taken {
		return conflict(CodeDuplicateRecipe, nil)
	}
	return nil
}

// mutated evicts the cached forms of a recipe after a successful write
func (s *RecipeService) mutated(ctx context.Context, op string, id uuid.UUID) {
	s.cache.EvictRecipe(ctx, id.String())
	s.metrics.RecipeMutation(op)
	s.logger.Debug("recipe mutated", zap.String("op", op), zap.String("recipe_id", id.String()))
}

func assign(r *models.Recipe, req *types.RecipeRequest) {
	r.Name = req.Name
	r.Description = req.Description
	r.Steps = req.Steps
	r.Difficulty = models.Difficulty(req.Difficulty)
	r.Kitchen = req.Kitchen
	r.Rations = req.Rations
	r.Time = req.Time
	r.Type = models.RecipeType(req.Type)
}

func supported(media cache.MediaType) bool {
	for _, m := range cache.MediaTypes {
		if m == media {
			return true
		}
	}
	return false
}

// storeError maps repository sentinels onto service errors. A duplicate is a
// conflict with dupCode; an empty dupCode makes it internal.
func storeError(err error, dupCode string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate) && dupCode != "":
		return conflict(dupCode, err)
	default:
		return internal(err)
	}
}

// ParsePage converts the page query value of a listing, defaulting to 0
func ParsePage(raw string) (int, error) {
	n, err := search.ParsePage(raw)
	if err != nil {
		return 0, validationError(map[string]string{"page": err.Error()})
	}
	return n, nil
}
