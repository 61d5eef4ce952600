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
	"gorm.io/gorm/clause"
)

const (
	maxCategoryLength    = 50
	maxDescriptionLength = 255
)

// Filter 收支记录筛选条件，零值字段不参与筛选
type Filter struct {
	Category string
	Kind     models.Kind
	Start    *time.Time // 含
	End      *time.Time // 含
}

// TransactionInput 创建或更新收支记录的入参，nil 字段表示未提供
type TransactionInput struct {
	Amount      *decimal.Decimal
	Category    *string
	Description *string
	Kind        *models.Kind
	Date        *string
}

// TransactionLedger 收支记录存取，所有操作都限定在单个用户范围内
type TransactionLedger struct {
	db          *gorm.DB
	strictDates bool
	now         func() time.Time
}

// NewTransactionLedger 创建 TransactionLedger，strictDates 为 true 时拒绝无法解析的日期
func NewTransactionLedger(db *gorm.DB, strictDates bool) *TransactionLedger {
	return &TransactionLedger{
		db:          db,
		strictDates: strictDates,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// List 按条件列出用户的收支记录，按日期倒序
func (l *TransactionLedger) List(ctx context.Context, userID uint, f Filter) ([]models.Transaction, error) {
	query := l.db.WithContext(ctx).Where("user_id = ?", userID)

	if category := strings.TrimSpace(f.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if f.Kind != "" {
		query = query.Where("transaction_type = ?", f.Kind)
	}
	if f.Start != nil {
		query = query.Where("date >= ?", *f.Start)
	}
	if f.End != nil {
		query = query.Where("date <= ?", *f.End)
	}

	txs := []models.Transaction{}
	if err := query.Order("date DESC, id ASC").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("查询收支记录失败: %w", err)
	}
	return txs, nil
}

// Get 获取单条记录，其他用户的记录视为不存在
func (l *TransactionLedger) Get(ctx context.Context, userID, id uint) (*models.Transaction, error) {
	var t models.Transaction
	err := l.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询收支记录失败: %w", err)
	}
	return &t, nil
}

// Create 新增收支记录，amount、category、transaction_type 必填
func (l *TransactionLedger) Create(ctx context.Context, userID uint, in TransactionInput) (*models.Transaction, error) {
	if in.Amount == nil || in.Category == nil || in.Kind == nil {
		return nil, invalid("", "Missing required fields")
	}

	t := models.Transaction{UserID: userID, Date: l.now()}
	if err := l.apply(&t, in); err != nil {
		return nil, err
	}

	if err := l.db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, fmt.Errorf("创建收支记录失败: %w", err)
	}
	return &t, nil
}

// Update 部分更新收支记录，未提供的字段保持不变
func (l *TransactionLedger) Update(ctx context.Context, userID, id uint, in TransactionInput) (*models.Transaction, error) {
	t, err := l.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := l.apply(t, in); err != nil {
		return nil, err
	}

	if err := l.db.WithContext(ctx).Omit(clause.Associations).Save(t).Error; err != nil {
		return nil, fmt.Errorf("更新收支记录失败: %w", err)
	}
	return t, nil
}

// Delete 删除收支记录
func (l *TransactionLedger) Delete(ctx context.Context, userID, id uint) error {
	result := l.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Transaction{}, id)
	if result.Error != nil {
		return fmt.Errorf("删除收支记录失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Categories 用户使用过的全部类别，去重并按字母排序
func (l *TransactionLedger) Categories(ctx context.Context, userID uint) ([]string, error) {
	categories := []string{}
	err := l.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("查询类别失败: %w", err)
	}
	return categories, nil
}

// ExpensesInMonth 某个 UTC 自然月内的全部支出
func (l *TransactionLedger) ExpensesInMonth(ctx context.Context, userID uint, month, year int) ([]models.Transaction, error) {
	start, end := monthRange(month, year)

	txs := []models.Transaction{}
	err := l.db.WithContext(ctx).
		Where("user_id = ? AND transaction_type = ? AND date >= ? AND date < ?", userID, models.KindExpense, start, end).
		Order("date DESC, id ASC").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("查询当月支出失败: %w", err)
	}
	return txs, nil
}

// normalizeAmount 保留两位小数，结果须在 (0, models.MaxAmount] 内
func normalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return decimal.Zero, invalid("amount", "must be greater than 0")
	}
	if amount.GreaterThan(models.MaxAmount) {
		return decimal.Zero, invalid("amount", "must not exceed "+models.MaxAmount.StringFixed(2))
	}
	return amount, nil
}

// apply 校验入参并写入 t
func (l *TransactionLedger) apply(t *models.Transaction, in TransactionInput) error {
	if in.Amount != nil {
		amount, err := normalizeAmount(*in.Amount)
		if err != nil {
			return err
		}
		t.Amount = amount
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		if category == "" {
			return invalid("category", "is required")
		}
		if len(category) > maxCategoryLength {
			return invalid("category", "is too long")
		}
		t.Category = category
	}
	if in.Description != nil {
		if len(*in.Description) > maxDescriptionLength {
			return invalid("description", "is too long")
		}
		t.Description = *in.Description
	}
	if in.Kind != nil {
		if !in.Kind.Valid() {
			return invalid("transaction_type", "must be income or expense")
		}
		t.Kind = *in.Kind
	}
	if in.Date != nil && strings.TrimSpace(*in.Date) != "" {
		date, err := ParseDate(*in.Date)
		switch {
		case err == nil:
			t.Date = date
		case l.strictDates:
			return invalid("date", "invalid date format")
		}
		// 宽松模式下无法解析的日期保持原值：新建时为当前时间，更新时为旧日期
	}
	return nil
}
