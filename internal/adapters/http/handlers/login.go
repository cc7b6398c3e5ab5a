package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/blog-service/internal/adapters/http/dto"
)

// LoginHandler serves /login, which only checks that an author with the
// given email exists. No session or token is issued.
type LoginHandler struct {
	service AuthorService
}

// NewLoginHandler creates a login handler.
func NewLoginHandler(service AuthorService) *LoginHandler {
	return &LoginHandler{service: service}
}

// Login handles POST /login.
//
// @Summary Look up an author by email
// @Tags login
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Email"
// @Success 200 {object} dto.AuthorResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /login [post]
func (h *LoginHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := dto.BindStrict(c, dto.LoginFields, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	author, err := h.service.Login(c.Request.Context(), *req.Email)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthorResponse(author))
}

// RegisterLoginRoutes registers the login route on rg.
func (h *LoginHandler) RegisterLoginRoutes(rg gin.IRoutes) {
	rg.POST("/login", h.Login)
}
