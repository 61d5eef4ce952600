package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// 金额在 JSON 中输出为数字而不是字符串
	decimal.MarshalJSONWithoutQuotes = true
}

// MaxAmount decimal(12,2) 列能存下的最大金额
var MaxAmount = decimal.RequireFromString("9999999999.99")

// Kind 交易类型
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid 是否为合法的交易类型
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction 收支记录模型，金额恒为正数，方向由 Kind 决定
type Transaction struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"user_id" gorm:"index;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Category    string          `json:"category" gorm:"size:50;not null;index"`
	Description string          `json:"description" gorm:"size:255"`
	Kind        Kind            `json:"transaction_type" gorm:"column:transaction_type;size:10;not null"`
	Date        time.Time       `json:"date" gorm:"index;not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"-"`
	User        User            `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}

// IsExpense 是否为支出
func (t Transaction) IsExpense() bool {
	return t.Kind == KindExpense
}
