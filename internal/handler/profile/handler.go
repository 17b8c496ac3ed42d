package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelmate/marketplace-api/internal/handler"
	"github.com/hostelmate/marketplace-api/internal/middleware"
	"github.com/hostelmate/marketplace-api/internal/model"
	"github.com/hostelmate/marketplace-api/internal/store"
	"github.com/hostelmate/marketplace-api/pkg/errors"
)

// Handler exposes the current user's aggregate: profile, saved items,
// applications, messages and the per-user notification list.
type Handler struct {
	stores *store.Factory
}

func NewHandler(stores *store.Factory) *Handler {
	return &Handler{stores: stores}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	me := r.Group("/me")
	{
		me.GET("", h.GetAggregate)
		me.PATCH("", h.UpdateProfile)
		me.GET("/unread-counts", h.UnreadCounts)

		me.POST("/saved-items/:id", h.AddSavedItem)
		me.DELETE("/saved-items/:id", h.RemoveSavedItem)

		me.POST("/applications", h.AddApplication)
		me.POST("/messages", h.AddMessage)
		me.POST("/messages/:id/read", h.MarkMessageAsRead)
		me.POST("/notifications/:id/read", h.MarkNotificationAsRead)
	}
}

func (h *Handler) currentStore(c *gin.Context) *store.UserStore {
	userID, _ := middleware.CurrentUser(c)
	return h.stores.ForUser(userID)
}

func (h *Handler) GetAggregate(c *gin.Context) {
	aggregate, err := h.currentStore(c).Load(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	if aggregate == nil {
		handler.RespondError(c, errors.NewNotFound("account", nil))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(aggregate))
}

type profilePatch struct {
	Volunteer *model.VolunteerProfile `json:"volunteerProfile,omitempty"`
	Hostel    *model.HostelProfile    `json:"hostelProfile,omitempty"`
}

// UpdateProfile shallow-merges the supplied profile over the stored
// aggregate. A missing aggregate makes this a no-op, mirroring the store.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var patch profilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		handler.RespondError(c, errors.NewValidation(err.Error()))
		return
	}

	err := h.currentStore(c).Update(c.Request.Context(), func(a *model.UserAggregate) {
		if patch.Volunteer != nil && a.Type == model.UserTypeVolunteer {
			a.Volunteer = patch.Volunteer
		}
		if patch.Hostel != nil && a.Type == model.UserTypeHostel {
			a.Hostel = patch.Hostel
		}
	})
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) UnreadCounts(c *gin.Context) {
	s := h.currentStore(c)
	ctx := c.Request.Context()

	notifications, err := s.UnreadNotificationCount(ctx)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	messages, err := s.UnreadMessageCount(ctx)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"notifications": notifications,
		"messages":      messages,
	}))
}

func (h *Handler) AddSavedItem(c *gin.Context) {
	if err := h.currentStore(c).AddSavedItem(c.Request.Context(), c.Param("id")); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) RemoveSavedItem(c *gin.Context) {
	if err := h.currentStore(c).RemoveSavedItem(c.Request.Context(), c.Param("id")); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

type applicationBody struct {
	HostelID   string `json:"hostelId" binding:"required"`
	HostelName string `json:"hostelName" binding:"required"`
	Position   string `json:"position,omitempty"`
	Message    string `json:"message,omitempty"`
}

func (h *Handler) AddApplication(c *gin.Context) {
	var body applicationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		handler.RespondError(c, errors.NewValidation(err.Error()))
		return
	}

	app, err := h.currentStore(c).AddApplication(c.Request.Context(), model.Application{
		HostelID:   body.HostelID,
		HostelName: body.HostelName,
		Position:   body.Position,
		Message:    body.Message,
	})
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(app))
}

type messageBody struct {
	SenderID   string `json:"senderId" binding:"required"`
	SenderName string `json:"senderName" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// AddMessage stores an inbound message on the current user's aggregate. The
// sender's role is taken from the request body counterpart of the current
// account type: messages arriving at a volunteer were sent by a hostel and
// vice versa.
func (h *Handler) AddMessage(c *gin.Context) {
	var body messageBody
	if err := c.ShouldBindJSON(&body); err != nil {
		handler.RespondError(c, errors.NewValidation(err.Error()))
		return
	}

	_, userType := middleware.CurrentUser(c)
	senderRole := model.SenderRoleHostel
	if userType == model.UserTypeHostel {
		senderRole = model.SenderRoleVolunteer
	}

	msg, err := h.currentStore(c).AddMessage(c.Request.Context(), model.Message{
		SenderID:   body.SenderID,
		SenderName: body.SenderName,
		SenderRole: senderRole,
		Content:    body.Content,
	})
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(msg))
}

func (h *Handler) MarkMessageAsRead(c *gin.Context) {
	if err := h.currentStore(c).MarkMessageAsRead(c.Request.Context(), c.Param("id")); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) MarkNotificationAsRead(c *gin.Context) {
	if err := h.currentStore(c).MarkNotificationAsRead(c.Request.Context(), c.Param("id")); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
