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

type BudgetHandler struct {
	budgetService   *service.BudgetService
	reminderService *service.ReminderService
}

func NewBudgetHandler(
	budgetService *service.BudgetService,
	reminderService *service.ReminderService,
) *BudgetHandler {
	return &BudgetHandler{
		budgetService:   budgetService,
		reminderService: reminderService,
	}
}

// Get 获取预算配置
// GET /api/v1/budget
func (h *BudgetHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	budget, err := h.budgetService.Get(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, budget)
}

// Update 更新预算配置
// PUT /api/v1/budget
func (h *BudgetHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	budget, err := h.budgetService.Update(userID, &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	// 预算变更后立即重新评估告警
	if h.reminderService != nil {
		if _, err := h.reminderService.CheckUser(context.Background(), userID); err != nil {
			log.Printf("Budget recheck after update failed: user=%d err=%v", userID, err)
		}
	}

	response.SuccessWithMessage(c, "更新成功", budget)
}

// Summary 预算使用概览
// GET /api/v1/budget/summary
func (h *BudgetHandler) Summary(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	summary, err := h.budgetService.Summary(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, summary)
}

// Alerts 按当前支出评估预算告警
// GET /api/v1/budget/alerts
func (h *BudgetHandler) Alerts(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	alerts, err := h.budgetService.EvaluateAlerts(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, alerts)
}

// SetCategory 设置分类预算
// PUT /api/v1/budget/categories
func (h *BudgetHandler) SetCategory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SetCategoryBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	cb, err := h.budgetService.SetCategoryBudget(userID, &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "设置成功", cb)
}

// DeleteCategory 删除分类预算
// DELETE /api/v1/budget/categories/:category
func (h *BudgetHandler) DeleteCategory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	category := c.Param("category")
	if category == "" {
		response.ParamError(c, "无效的分类")
		return
	}

	if err := h.budgetService.DeleteCategoryBudget(userID, category); err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// CategoryStatus 分类预算使用情况
// GET /api/v1/budget/categories
func (h *BudgetHandler) CategoryStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	statuses, err := h.budgetService.CategoryStatus(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, statuses)
}
