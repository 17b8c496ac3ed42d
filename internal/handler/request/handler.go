package request

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelmate/marketplace-api/internal/handler"
	"github.com/hostelmate/marketplace-api/internal/middleware"
	"github.com/hostelmate/marketplace-api/internal/model"
	"github.com/hostelmate/marketplace-api/internal/service/request"
	"github.com/hostelmate/marketplace-api/internal/store"
	"github.com/hostelmate/marketplace-api/pkg/errors"
)

type Handler struct {
	service *request.Service
	stores  *store.Factory
	auth    *middleware.AuthMiddleware
}

func NewHandler(service *request.Service, stores *store.Factory, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, stores: stores, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/requests")
	{
		requests.POST("", h.auth.RequireType(model.UserTypeHostel), h.SendRequest)
		requests.POST("/:id/respond", h.auth.RequireType(model.UserTypeVolunteer), h.RespondToRequest)
		requests.GET("", h.ListRequests)
	}
}

type sendRequestBody struct {
	VolunteerID   string `json:"volunteerId" binding:"required"`
	VolunteerName string `json:"volunteerName" binding:"required"`
	Message       string `json:"message"`
	Position      string `json:"position,omitempty"`
	Duration      string `json:"duration,omitempty"`
	StartDate     string `json:"startDate,omitempty"`
}

// SendRequest creates a request from the authenticated hostel. The hostel's
// display name is captured from its stored profile at creation time.
func (h *Handler) SendRequest(c *gin.Context) {
	var body sendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		handler.RespondError(c, errors.NewValidation(err.Error()))
		return
	}

	hostelID, _ := middleware.CurrentUser(c)
	hostelName := hostelID
	if aggregate, err := h.stores.ForUser(hostelID).Load(c.Request.Context()); err == nil && aggregate != nil && aggregate.Hostel != nil {
		hostelName = aggregate.Hostel.Name
	}

	req, err := h.service.SendVolunteerRequest(c.Request.Context(), model.RequestDraft{
		HostelID:      hostelID,
		HostelName:    hostelName,
		VolunteerID:   body.VolunteerID,
		VolunteerName: body.VolunteerName,
		Message:       body.Message,
		Position:      body.Position,
		Duration:      body.Duration,
		StartDate:     body.StartDate,
	})
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(req))
}

type respondBody struct {
	Decision model.RequestStatus `json:"decision" binding:"required,oneof=accepted declined"`
	Message  string              `json:"message,omitempty"`
}

// RespondToRequest answers a request on behalf of the authenticated
// volunteer. Only the addressee may answer; requests addressed to someone
// else read as not found rather than forbidden, since other volunteers
// cannot see them at all.
func (h *Handler) RespondToRequest(c *gin.Context) {
	var body respondBody
	if err := c.ShouldBindJSON(&body); err != nil {
		handler.RespondError(c, errors.NewValidation(err.Error()))
		return
	}

	volunteerID, _ := middleware.CurrentUser(c)
	existing, err := h.service.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	if existing.VolunteerID != volunteerID {
		handler.RespondError(c, errors.NewNotFound("volunteer request", nil))
		return
	}

	req, err := h.service.RespondToVolunteerRequest(c.Request.Context(), c.Param("id"), body.Decision, body.Message)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(req))
}

// ListRequests returns the side of the request log the current account can
// see: requests addressed to a volunteer, or sent by a hostel.
func (h *Handler) ListRequests(c *gin.Context) {
	userID, userType := middleware.CurrentUser(c)

	var (
		requests []model.VolunteerRequest
		err      error
	)
	switch userType {
	case model.UserTypeVolunteer:
		requests, err = h.service.GetVolunteerRequests(c.Request.Context(), userID)
	case model.UserTypeHostel:
		requests, err = h.service.GetHostelRequests(c.Request.Context(), userID)
	default:
		handler.RespondError(c, errors.NewValidation("unknown account type"))
		return
	}
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(requests))
}
