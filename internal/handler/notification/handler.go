package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hostelmate/marketplace-api/internal/handler"
	"github.com/hostelmate/marketplace-api/internal/middleware"
	"github.com/hostelmate/marketplace-api/internal/service/request"
)

// Handler exposes the service-side notification feed. The per-user
// aggregate keeps its own capped copy; this feed is the canonical one for
// request-lifecycle events.
type Handler struct {
	service *request.Service
}

func NewHandler(service *request.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", h.ListNotifications)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.POST("/:id/read", h.MarkAsRead)
		notifications.POST("/read-all", h.MarkAllAsRead)
	}
}

func (h *Handler) ListNotifications(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	notifications := h.service.GetNotifications(c.Request.Context(), userID, limit)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(notifications))
}

func (h *Handler) UnreadCount(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)
	count := h.service.UnreadNotificationCount(c.Request.Context(), userID)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"count": count}))
}

// MarkAsRead only touches notifications addressed to the current user;
// someone else's id is silently a no-op.
func (h *Handler) MarkAsRead(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)
	h.service.MarkNotificationAsRead(c.Request.Context(), userID, c.Param("id"))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) MarkAllAsRead(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)
	h.service.MarkAllNotificationsAsRead(c.Request.Context(), userID)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
