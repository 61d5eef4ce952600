package api

import (
	"strconv"

	"fintrack/analytics"
	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BudgetHandler 预算处理器
type BudgetHandler struct {
	budgets *service.BudgetLedger
	ledger  *service.TransactionLedger
}

// NewBudgetHandler 创建预算处理器
func NewBudgetHandler(cfg *config.Config) *BudgetHandler {
	return &BudgetHandler{
		budgets: service.NewBudgetLedger(database.DB),
		ledger:  service.NewTransactionLedger(database.DB, cfg.Ledger.StrictDates),
	}
}

// BudgetRequest 设置预算请求
type BudgetRequest struct {
	Category string           `json:"category" example:"Food"`
	Amount   *decimal.Decimal `json:"amount" swaggertype:"number" example:"500"`
	Month    *int             `json:"month" example:"3"`
	Year     *int             `json:"year" example:"2024"`
}

// queryInt 读取可选的整数查询参数
func queryInt(c *gin.Context, key string) (*int, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, &service.ValidationError{Field: key, Message: "must be an integer"}
	}
	return &n, nil
}

// List 某月预算及消耗
// @Summary 预算列表
// @Description 返回指定月份（缺省为当前月）的预算，并附带已花费、剩余与百分比
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Param month query int false "月份 1-12"
// @Param year query int false "年份"
// @Success 200 {array} analytics.BudgetReport "获取成功"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Router /api/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	month, err := queryInt(c, "month")
	if err != nil {
		respondError(c, err, "")
		return
	}
	year, err := queryInt(c, "year")
	if err != nil {
		respondError(c, err, "")
		return
	}
	m, y, err := h.budgets.ResolvePeriod(month, year)
	if err != nil {
		respondError(c, err, "")
		return
	}

	ctx := c.Request.Context()
	userID := middleware.GetCurrentUserID(c)

	budgets, err := h.budgets.List(ctx, userID, m, y)
	if err != nil {
		respondError(c, err, "")
		return
	}
	if len(budgets) == 0 {
		Success(c, []analytics.BudgetReport{})
		return
	}

	expenses, err := h.ledger.ExpensesInMonth(ctx, userID, m, y)
	if err != nil {
		respondError(c, err, "")
		return
	}

	Success(c, analytics.BudgetReports(budgets, expenses))
}

// Upsert 设置预算
// @Summary 设置预算
// @Description 同一类别同一月份只有一条预算：已存在时更新金额并返回 200，否则创建并返回 201
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BudgetRequest true "预算"
// @Success 200 {object} models.Budget "更新成功"
// @Success 201 {object} models.Budget "创建成功"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Router /api/budgets [post]
func (h *BudgetHandler) Upsert(c *gin.Context) {
	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}
	if req.Category == "" || req.Amount == nil {
		BadRequest(c, "Missing required fields")
		return
	}

	budget, created, err := h.budgets.Upsert(c.Request.Context(), middleware.GetCurrentUserID(c), service.BudgetInput{
		Category: req.Category,
		Amount:   req.Amount,
		Month:    req.Month,
		Year:     req.Year,
	})
	if err != nil {
		respondError(c, err, "Budget not found")
		return
	}

	if created {
		Created(c, budget)
		return
	}
	Success(c, budget)
}

// Delete 删除预算
// @Summary 删除预算
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算 ID"
// @Success 200 {object} MessageResponse "删除成功"
// @Failure 404 {object} ErrorResponse "预算不存在"
// @Router /api/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		NotFound(c, "Budget not found")
		return
	}

	if err := h.budgets.Delete(c.Request.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		respondError(c, err, "Budget not found")
		return
	}

	SuccessWithMessage(c, "Budget deleted successfully")
}
