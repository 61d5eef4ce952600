package api

import (
	"strconv"

	"fintrack/analytics"
	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/service"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler 汇总、分析与月度报告
type AnalyticsHandler struct {
	cfg     *config.Config
	ledger  *service.TransactionLedger
	budgets *service.BudgetLedger
	users   *service.CredentialStore
	email   *service.EmailService
}

// NewAnalyticsHandler 创建分析处理器
func NewAnalyticsHandler(cfg *config.Config) *AnalyticsHandler {
	return &AnalyticsHandler{
		cfg:     cfg,
		ledger:  service.NewTransactionLedger(database.DB, cfg.Ledger.StrictDates),
		budgets: service.NewBudgetLedger(database.DB),
		users:   service.NewCredentialStore(database.DB),
		email:   service.NewEmailService(&cfg.Email),
	}
}

// ReportRequest 月度报告请求，缺省为当前月份
type ReportRequest struct {
	Month *int `json:"month" example:"3"`
	Year  *int `json:"year" example:"2024"`
}

// Summary 收支汇总
// @Summary 收支汇总
// @Description 统计日期区间内的总收入、总支出与结余
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "开始日期"
// @Param end_date query string false "结束日期"
// @Success 200 {object} analytics.Summary "获取成功"
// @Failure 400 {object} ErrorResponse "日期格式错误"
// @Router /api/transactions/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	txs, err := h.ledger.List(c.Request.Context(), middleware.GetCurrentUserID(c), filter)
	if err != nil {
		respondError(c, err, "")
		return
	}

	Success(c, analytics.Summarize(txs))
}

// Analytics 分类与月度分析
// @Summary 收支分析
// @Description 按类别、月份拆分收支，并给出收入/支出最多的类别，排行项格式为 [类别, 金额]
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "开始日期"
// @Param end_date query string false "结束日期"
// @Param limit query int false "排行榜长度，默认 5"
// @Success 200 {object} analytics.Report "获取成功"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Router /api/transactions/analytics [get]
func (h *AnalyticsHandler) Analytics(c *gin.Context) {
	limit := h.cfg.Ledger.TopCategories
	if limit <= 0 {
		limit = analytics.DefaultTopN
	}
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			BadRequest(c, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	txs, err := h.ledger.List(c.Request.Context(), middleware.GetCurrentUserID(c), filter)
	if err != nil {
		respondError(c, err, "")
		return
	}

	Success(c, analytics.Analyze(txs, limit))
}

// Report 发送月度报告邮件
// @Summary 发送月度报告
// @Description 将指定月份的收支汇总、支出排行与预算消耗发送到当前用户邮箱
// @Tags 统计
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ReportRequest false "月份，缺省为当前月"
// @Success 200 {object} MessageResponse "发送成功"
// @Failure 400 {object} ErrorResponse "参数错误或邮件服务未启用"
// @Router /api/transactions/report [post]
func (h *AnalyticsHandler) Report(c *gin.Context) {
	if !h.email.Enabled() {
		BadRequest(c, "Email service is not enabled")
		return
	}

	var req ReportRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, "Invalid request body")
			return
		}
	}

	month, year, err := h.budgets.ResolvePeriod(req.Month, req.Year)
	if err != nil {
		respondError(c, err, "")
		return
	}

	ctx := c.Request.Context()
	userID := middleware.GetCurrentUserID(c)

	user, err := h.users.Get(ctx, userID)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}

	start, end := service.MonthBounds(month, year)
	txs, err := h.ledger.List(ctx, userID, service.Filter{Start: &start, End: &end})
	if err != nil {
		respondError(c, err, "")
		return
	}
	budgets, err := h.budgets.List(ctx, userID, month, year)
	if err != nil {
		respondError(c, err, "")
		return
	}

	report := service.MonthlyReport{
		Month:       month,
		Year:        year,
		Summary:     analytics.Summarize(txs),
		TopExpenses: analytics.TopExpenseCategories(txs, h.cfg.Ledger.TopCategories),
		Budgets:     analytics.BudgetReports(budgets, txs),
	}
	if err := h.email.SendMonthlyReport(user.Email, user.Username, report); err != nil {
		respondError(c, err, "")
		return
	}

	SuccessWithMessage(c, "Report sent")
}
