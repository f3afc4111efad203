package handler

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/subtrack/subtrack_go_server/internal/api/middleware"
	"github.com/subtrack/subtrack_go_server/internal/billing"
	"github.com/subtrack/subtrack_go_server/internal/model/dto"
	"github.com/subtrack/subtrack_go_server/internal/pkg/response"
	"github.com/subtrack/subtrack_go_server/internal/service"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
	reminderService     *service.ReminderService
}

func NewSubscriptionHandler(
	subscriptionService *service.SubscriptionService,
	reminderService *service.ReminderService,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		reminderService:     reminderService,
	}
}

// Create 新建订阅
// POST /api/v1/subscriptions
func (h *SubscriptionHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	sub, err := h.subscriptionService.Create(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrInvalidCycle):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrInvalidBillingDate):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	h.recheckReminders(userID)
	response.SuccessWithMessage(c, "创建成功", sub)
}

// List 获取订阅列表
// GET /api/v1/subscriptions?status=active
func (h *SubscriptionHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	subs, err := h.subscriptionService.List(userID, c.Query("status"))
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, subs)
}

// Get 获取订阅详情
// GET /api/v1/subscriptions/:id
func (h *SubscriptionHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的订阅 ID")
		return
	}

	sub, err := h.subscriptionService.Get(id, userID)
	if err != nil {
		h.handleSubscriptionError(c, err)
		return
	}

	response.Success(c, sub)
}

// Update 更新订阅
// PUT /api/v1/subscriptions/:id
func (h *SubscriptionHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的订阅 ID")
		return
	}

	var req dto.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	sub, err := h.subscriptionService.Update(id, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrInvalidCycle):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrInvalidBillingDate):
			response.ParamError(c, err.Error())
		default:
			h.handleSubscriptionError(c, err)
		}
		return
	}

	h.recheckReminders(userID)
	response.SuccessWithMessage(c, "更新成功", sub)
}

// Delete 删除订阅
// DELETE /api/v1/subscriptions/:id
func (h *SubscriptionHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的订阅 ID")
		return
	}

	if err := h.subscriptionService.Delete(id, userID); err != nil {
		h.handleSubscriptionError(c, err)
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// Stats 订阅统计概览
// GET /api/v1/subscriptions/stats
func (h *SubscriptionHandler) Stats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	stats, err := h.subscriptionService.Stats(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, stats)
}

// Upcoming 即将到期的付款
// GET /api/v1/subscriptions/upcoming?days=30
func (h *SubscriptionHandler) Upcoming(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	upcoming, err := h.subscriptionService.Upcoming(userID, days)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, upcoming)
}

func (h *SubscriptionHandler) handleSubscriptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubscriptionNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.PermissionError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}

// recheckReminders 订阅变更后立即重新评估提醒，失败不影响请求本身
func (h *SubscriptionHandler) recheckReminders(userID int64) {
	if h.reminderService == nil {
		return
	}
	if _, err := h.reminderService.CheckUser(context.Background(), userID); err != nil {
		log.Printf("Reminder recheck after subscription change failed: user=%d err=%v", userID, err)
	}
}
