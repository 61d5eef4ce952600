package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fintrack/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	minBudgetYear = 2000
	maxBudgetYear = 2100
)

// BudgetInput 创建或更新预算的入参，Month/Year 为 nil 时取当前 UTC 月份
type BudgetInput struct {
	Category string
	Amount   *decimal.Decimal
	Month    *int
	Year     *int
}

// BudgetLedger 预算存取。每个 (用户, 类别, 月, 年) 至多一条预算
type BudgetLedger struct {
	db  *gorm.DB
	now func() time.Time
}

// NewBudgetLedger 创建 BudgetLedger
func NewBudgetLedger(db *gorm.DB) *BudgetLedger {
	return &BudgetLedger{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// CurrentPeriod 当前 UTC 月份与年份
func (l *BudgetLedger) CurrentPeriod() (int, int) {
	now := l.now()
	return int(now.Month()), now.Year()
}

// ResolvePeriod 补全并校验月份与年份
func (l *BudgetLedger) ResolvePeriod(month, year *int) (int, int, error) {
	m, y := l.CurrentPeriod()
	if month != nil {
		m = *month
	}
	if year != nil {
		y = *year
	}
	if m < 1 || m > 12 {
		return 0, 0, invalid("month", "must be between 1 and 12")
	}
	if y < minBudgetYear || y > maxBudgetYear {
		return 0, 0, invalid("year", fmt.Sprintf("must be between %d and %d", minBudgetYear, maxBudgetYear))
	}
	return m, y, nil
}

// List 列出用户某月的预算，按类别排序
func (l *BudgetLedger) List(ctx context.Context, userID uint, month, year int) ([]models.Budget, error) {
	budgets := []models.Budget{}
	err := l.db.WithContext(ctx).
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Order("category ASC").
		Find(&budgets).Error
	if err != nil {
		return nil, fmt.Errorf("查询预算失败: %w", err)
	}
	return budgets, nil
}

// Upsert 设置某类别某月的预算。已存在则替换金额并返回 created=false，否则新建
func (l *BudgetLedger) Upsert(ctx context.Context, userID uint, in BudgetInput) (*models.Budget, bool, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, false, invalid("category", "is required")
	}
	if len(category) > maxCategoryLength {
		return nil, false, invalid("category", "is too long")
	}
	if in.Amount == nil {
		return nil, false, invalid("amount", "must be greater than 0")
	}
	amount, err := normalizeAmount(*in.Amount)
	if err != nil {
		return nil, false, err
	}
	month, year, err := l.ResolvePeriod(in.Month, in.Year)
	if err != nil {
		return nil, false, err
	}

	budget, err := l.updateExisting(ctx, userID, category, month, year, amount)
	if err == nil {
		return budget, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	budget = &models.Budget{
		UserID:   userID,
		Category: category,
		Amount:   amount,
		Month:    month,
		Year:     year,
	}
	err = l.db.WithContext(ctx).Create(budget).Error
	if err == nil {
		return budget, true, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, false, fmt.Errorf("创建预算失败: %w", err)
	}

	// 并发写入被唯一索引拦下，对方已插入，改为更新一次
	budget, err = l.updateExisting(ctx, userID, category, month, year, amount)
	if err != nil {
		return nil, false, fmt.Errorf("更新预算失败: %w", err)
	}
	return budget, false, nil
}

func (l *BudgetLedger) updateExisting(ctx context.Context, userID uint, category string, month, year int, amount decimal.Decimal) (*models.Budget, error) {
	db := l.db.WithContext(ctx)

	var budget models.Budget
	err := db.Where("user_id = ? AND category = ? AND month = ? AND year = ?", userID, category, month, year).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询预算失败: %w", err)
	}

	if err := db.Model(&budget).Update("amount", amount).Error; err != nil {
		return nil, fmt.Errorf("更新预算失败: %w", err)
	}
	budget.Amount = amount
	return &budget, nil
}

// Delete 删除预算
func (l *BudgetLedger) Delete(ctx context.Context, userID, id uint) error {
	result := l.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Budget{}, id)
	if result.Error != nil {
		return fmt.Errorf("删除预算失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
