package handler

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/subtrack/subtrack_go_server/internal/api/middleware"
	"github.com/subtrack/subtrack_go_server/internal/model/dto"
	"github.com/subtrack/subtrack_go_server/internal/pkg/response"
	"github.com/subtrack/subtrack_go_server/internal/service"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
	reminderService *service.ReminderService
}

func NewSettingsHandler(
	settingsService *service.SettingsService,
	reminderService *service.ReminderService,
) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		reminderService: reminderService,
	}
}

// Get 获取提醒设置
// GET /api/v1/settings/reminders
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	settings, err := h.settingsService.Get(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, settings)
}

// Update 更新提醒设置
// PUT /api/v1/settings/reminders
func (h *SettingsHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	settings, err := h.settingsService.Update(userID, &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	// 设置变更后按新窗口立即重新评估
	if h.reminderService != nil && settings.Enabled {
		if _, err := h.reminderService.CheckUser(context.Background(), userID); err != nil {
			log.Printf("Reminder recheck after settings change failed: user=%d err=%v", userID, err)
		}
	}

	response.SuccessWithMessage(c, "更新成功", settings)
}

// Check 手动触发一轮提醒评估
// POST /api/v1/settings/reminders/check
func (h *SettingsHandler) Check(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	created, err := h.reminderService.CheckUser(c.Request.Context(), userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, gin.H{"created": created})
}
