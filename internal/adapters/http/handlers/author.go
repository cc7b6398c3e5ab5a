package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/blog-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/blog-service/internal/domain"
)

// AuthorService is what the author and login handlers need from the
// application layer.
type AuthorService interface {
	List(ctx context.Context) ([]domain.Author, error)
	Get(ctx context.Context, id string) (*domain.Author, error)
	Create(ctx context.Context, author domain.Author) (*domain.Author, error)
	Update(ctx context.Context, id string, patch domain.AuthorPatch) (*domain.Author, error)
	Delete(ctx context.Context, id string) error
	Login(ctx context.Context, email string) (*domain.Author, error)
}

// AuthorHandler serves /authors.
type AuthorHandler struct {
	service AuthorService
}

// NewAuthorHandler creates an author handler.
func NewAuthorHandler(service AuthorService) *AuthorHandler {
	return &AuthorHandler{service: service}
}

// List handles GET /authors.
//
// @Summary List authors
// @Tags authors
// @Produce json
// @Success 200 {array} dto.AuthorResponse
// @Router /authors [get]
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthorListResponse(authors))
}

// Create handles POST /authors. The body must carry exactly first_name,
// last_name and email.
//
// @Summary Create an author
// @Tags authors
// @Accept json
// @Produce json
// @Param author body dto.CreateAuthorRequest true "Author"
// @Success 200 {object} dto.AuthorResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /authors [post]
func (h *AuthorHandler) Create(c *gin.Context) {
	var req dto.CreateAuthorRequest
	if err := dto.BindStrict(c, domain.AuthorFields, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	author, err := h.service.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthorResponse(author))
}

// Get handles GET /authors/:id.
//
// @Summary Get an author
// @Tags authors
// @Produce json
// @Param id path string true "Author ID"
// @Success 200 {object} dto.AuthorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /authors/{id} [get]
func (h *AuthorHandler) Get(c *gin.Context) {
	author, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthorResponse(author))
}

// Update handles PATCH /authors/:id. Unknown or null keys are a 400 for any
// id. Otherwise the author must exist before the values are decoded, so an
// unknown id is a 404 whatever the values hold.
//
// @Summary Update an author
// @Tags authors
// @Accept json
// @Produce json
// @Param id path string true "Author ID"
// @Param author body dto.UpdateAuthorRequest true "Fields to change"
// @Success 200 {object} dto.AuthorResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /authors/{id} [patch]
func (h *AuthorHandler) Update(c *gin.Context) {
	body, err := dto.ReadPartial(c, domain.AuthorFields)
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

	var req dto.UpdateAuthorRequest
	if err := body.Decode(&req); err != nil {
		dto.HandleError(c, err)
		return
	}

	author, err := h.service.Update(ctx, id, req.ToPatch())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthorResponse(author))
}

// Delete handles DELETE /authors/:id. Posts by the author are kept.
//
// @Summary Delete an author
// @Tags authors
// @Param id path string true "Author ID"
// @Success 200
// @Failure 404 {object} dto.ErrorResponse
// @Router /authors/{id} [delete]
func (h *AuthorHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// RegisterAuthorRoutes registers the author routes on rg.
func (h *AuthorHandler) RegisterAuthorRoutes(rg gin.IRoutes) {
	rg.GET("/authors", h.List)
	rg.POST("/authors", h.Create)
	rg.GET("/authors/:id", h.Get)
	rg.PATCH("/authors/:id", h.Update)
	rg.DELETE("/authors/:id", h.Delete)
}
