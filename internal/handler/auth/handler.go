package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelmate/marketplace-api/internal/handler"
	"github.com/hostelmate/marketplace-api/internal/service/auth"
	"github.com/hostelmate/marketplace-api/pkg/errors"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/auth")
	{
		group.POST("/register", h.Register)
		group.POST("/login", h.Login)
	}
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

func (h *Handler) Register(c *gin.Context) {
	var in auth.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		handler.RespondError(c, errors.NewValidation(err.Error()))
		return
	}

	aggregate, token, err := h.service.Register(c.Request.Context(), in)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(sessionResponse{Token: token, User: aggregate}))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, errors.NewValidation(err.Error()))
		return
	}

	aggregate, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(sessionResponse{Token: token, User: aggregate}))
}
