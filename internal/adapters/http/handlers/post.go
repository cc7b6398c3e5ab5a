package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/blog-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/blog-service/internal/domain"
)

// PostService is what the post handler needs from the application layer.
type PostService interface {
	List(ctx context.Context) ([]domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	Create(ctx context.Context, post domain.Post) (*domain.Post, error)
	Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

// PostHandler serves /posts.
type PostHandler struct {
	service PostService
}

// NewPostHandler creates a post handler.
func NewPostHandler(service PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List handles GET /posts.
//
// @Summary List posts
// @Tags posts
// @Produce json
// @Success 200 {array} dto.PostResponse
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.service.List(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPostListResponse(posts))
}

// Create handles POST /posts. author_id must name an existing author.
//
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param post body dto.CreatePostRequest true "Post"
// @Success 200 {object} dto.PostResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := dto.BindStrict(c, domain.PostFields, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	post, err := h.service.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPostResponse(post))
}

// Get handles GET /posts/:id.
//
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPostResponse(post))
}

// Update handles PATCH /posts/:id. The key set is checked first, then the
// post is looked up, then the values are decoded.
//
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param post body dto.UpdatePostRequest true "Fields to change"
// @Success 200 {object} dto.PostResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /posts/{id} [patch]
func (h *PostHandler) Update(c *gin.Context) {
	body, err := dto.ReadPartial(c, domain.PostFields)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	if _, err := h.service.Get(ctx, id); err != nil {
		dto.HandleError(c, err)
		return
	}

	var req dto.UpdatePostRequest
	if err := body.Decode(&req); err != nil {
		dto.HandleError(c, err)
		return
	}

	post, err := h.service.Update(ctx, id, req.ToPatch())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPostResponse(post))
}

// Delete handles DELETE /posts/:id.
//
// @Summary Delete a post
// @Tags posts
// @Param id path string true "Post ID"
// @Success 200
// @Failure 404 {object} dto.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// RegisterPostRoutes registers the post routes on rg.
func (h *PostHandler) RegisterPostRoutes(rg gin.IRoutes) {
	rg.GET("/posts", h.List)
	rg.POST("/posts", h.Create)
	rg.GET("/posts/:id", h.Get)
	rg.PATCH("/posts/:id", h.Update)
	rg.DELETE("/posts/:id", h.Delete)
}
