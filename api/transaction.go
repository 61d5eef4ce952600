package api

import (
	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionHandler 收支记录处理器
type TransactionHandler struct {
	cfg    *config.Config
	ledger *service.TransactionLedger
}

// NewTransactionHandler 创建收支记录处理器
func NewTransactionHandler(cfg *config.Config) *TransactionHandler {
	return &TransactionHandler{
		cfg:    cfg,
		ledger: service.NewTransactionLedger(database.DB, cfg.Ledger.StrictDates),
	}
}

// TransactionRequest 创建/更新收支记录请求，更新时所有字段可选
type TransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount" swaggertype:"number" example:"12.5"`
	Category    *string          `json:"category" example:"Food"`
	Description *string          `json:"description" example:"Lunch"`
	Type        *models.Kind     `json:"transaction_type" swaggertype:"string" enums:"income,expense" example:"expense"`
	Date        *string          `json:"date" example:"2024-03-15T12:00:00Z"`
}

func (r TransactionRequest) input() service.TransactionInput {
	return service.TransactionInput{
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		Kind:        r.Type,
		Date:        r.Date,
	}
}

// parseFilter 从查询参数构造筛选条件
func parseFilter(c *gin.Context) (service.Filter, error) {
	var f service.Filter

	start, err := service.ParseRangeStart(c.Query("start_date"))
	if err != nil {
		return f, err
	}
	end, err := service.ParseRangeEnd(c.Query("end_date"))
	if err != nil {
		return f, err
	}
	f.Start, f.End = start, end
	f.Category = c.Query("category")

	if kind := models.Kind(c.Query("type")); kind != "" {
		if !kind.Valid() {
			return f, &service.ValidationError{Field: "type", Message: "must be income or expense"}
		}
		f.Kind = kind
	}
	return f, nil
}

// List 收支记录列表
// @Summary 收支记录列表
// @Description 按日期倒序返回当前用户的收支记录，可按类别、类型、日期区间筛选
// @Tags 收支记录
// @Produce json
// @Security BearerAuth
// @Param category query string false "类别"
// @Param type query string false "类型" Enums(income, expense)
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-01-31)，只有日期时包含当天"
// @Success 200 {array} models.Transaction "获取成功"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Failure 401 {object} ErrorResponse "未授权"
// @Router /api/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
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

	Success(c, txs)
}

// Get 获取单条收支记录
// @Summary 获取收支记录
// @Tags 收支记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录 ID"
// @Success 200 {object} models.Transaction "获取成功"
// @Failure 404 {object} ErrorResponse "记录不存在"
// @Router /api/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		NotFound(c, "Transaction not found")
		return
	}

	tx, err := h.ledger.Get(c.Request.Context(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		respondError(c, err, "Transaction not found")
		return
	}

	Success(c, tx)
}

// Create 新增收支记录
// @Summary 新增收支记录
// @Description amount、category、transaction_type 必填；date 缺省为当前时间
// @Tags 收支记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransactionRequest true "收支记录"
// @Success 201 {object} models.Transaction "创建成功"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Router /api/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}

	tx, err := h.ledger.Create(c.Request.Context(), middleware.GetCurrentUserID(c), req.input())
	if err != nil {
		respondError(c, err, "Transaction not found")
		return
	}

	Created(c, tx)
}

// Update 更新收支记录
// @Summary 更新收支记录
// @Description 仅更新请求中出现的字段
// @Tags 收支记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录 ID"
// @Param request body TransactionRequest true "需要更新的字段"
// @Success 200 {object} models.Transaction "更新成功"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Failure 404 {object} ErrorResponse "记录不存在"
// @Router /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		NotFound(c, "Transaction not found")
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}

	tx, err := h.ledger.Update(c.Request.Context(), middleware.GetCurrentUserID(c), id, req.input())
	if err != nil {
		respondError(c, err, "Transaction not found")
		return
	}

	Success(c, tx)
}

// Delete 删除收支记录
// @Summary 删除收支记录
// @Tags 收支记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录 ID"
// @Success 200 {object} MessageResponse "删除成功"
// @Failure 404 {object} ErrorResponse "记录不存在"
// @Router /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		NotFound(c, "Transaction not found")
		return
	}

	if err := h.ledger.Delete(c.Request.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		respondError(c, err, "Transaction not found")
		return
	}

	SuccessWithMessage(c, "Transaction deleted successfully")
}

// Categories 当前用户使用过的类别
// @Summary 类别列表
// @Tags 收支记录
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string "获取成功"
// @Router /api/transactions/categories [get]
func (h *TransactionHandler) Categories(c *gin.Context) {
	categories, err := h.ledger.Categories(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		respondError(c, err, "")
		return
	}

	Success(c, categories)
}
