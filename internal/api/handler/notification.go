package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/subtrack/subtrack_go_server/internal/api/middleware"
	"github.com/subtrack/subtrack_go_server/internal/pkg/response"
	"github.com/subtrack/subtrack_go_server/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// List 获取通知列表
// GET /api/v1/notifications?unread=true
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	unreadOnly := c.Query("unread") == "true"
	notifications, err := h.notificationService.List(userID, unreadOnly)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, notifications)
}

// UnreadCount 未读通知数量
// GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	count, err := h.notificationService.UnreadCount(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, gin.H{"count": count})
}

// MarkRead 标记单条通知已读
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的通知 ID")
		return
	}

	if err := h.notificationService.MarkRead(id, userID); err != nil {
		h.handleNotificationError(c, err)
		return
	}

	response.SuccessWithMessage(c, "已标记为已读", nil)
}

// MarkAllRead 全部标记已读
// PUT /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	if err := h.notificationService.MarkAllRead(userID); err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "已全部标记为已读", nil)
}

// Delete 删除单条通知
// DELETE /api/v1/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的通知 ID")
		return
	}

	if err := h.notificationService.Delete(id, userID); err != nil {
		h.handleNotificationError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// Clear 清空通知
// DELETE /api/v1/notifications
func (h *NotificationHandler) Clear(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	if err := h.notificationService.Clear(userID); err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "已清空", nil)
}

func (h *NotificationHandler) handleNotificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotificationNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.PermissionError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
