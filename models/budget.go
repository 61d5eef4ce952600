package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget 某类别的月度预算。(user_id, category, month, year) 唯一，
// 已花费金额不落库，读取时按同用户、同类别、同月份的支出记录计算
type Budget struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	UserID    uint            `json:"user_id" gorm:"not null;uniqueIndex:idx_budget_period"`
	Category  string          `json:"category" gorm:"size:50;not null;uniqueIndex:idx_budget_period"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Month     int             `json:"month" gorm:"not null;uniqueIndex:idx_budget_period"`
	Year      int             `json:"year" gorm:"not null;uniqueIndex:idx_budget_period"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"-"`
	User      User            `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName 设置表名
func (Budget) TableName() string {
	return "budgets"
}

// Covers 判断时间点是否落在预算所在的自然月（UTC）
func (b Budget) Covers(t time.Time) bool {
	t = t.UTC()
	return t.Year() == b.Year && int(t.Month()) == b.Month
}
