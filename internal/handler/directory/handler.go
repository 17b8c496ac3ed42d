package directory

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelmate/marketplace-api/internal/handler"
	"github.com/hostelmate/marketplace-api/internal/model"
	"github.com/hostelmate/marketplace-api/internal/service/request"
	"github.com/hostelmate/marketplace-api/pkg/errors"
)

type Handler struct {
	service *request.Service
}

func NewHandler(service *request.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/volunteers/search", h.SearchVolunteers)
}

func (h *Handler) SearchVolunteers(c *gin.Context) {
	var criteria model.SearchCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		handler.RespondError(c, errors.NewValidation(err.Error()))
		return
	}

	volunteers, err := h.service.SearchVolunteers(c.Request.Context(), criteria)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(volunteers))
}
