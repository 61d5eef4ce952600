// Package analytics 提供对单个用户收支记录的聚合计算：汇总、按类别/月份拆分、
// 类别排行以及预算消耗。所有函数都是纯函数，不访问数据库，相同输入总是得到相同输出。
package analytics

import (
	"encoding/json"
	"sort"

	"fintrack/models"

	"github.com/shopspring/decimal"
)

// DefaultTopN 排行榜默认长度
const DefaultTopN = 5

var hundred = decimal.NewFromInt(100)

// Summary 收支汇总
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expenses"`
	Balance      decimal.Decimal `json:"balance"`
}

// KindTotals 同一分组下收入、支出各自的合计，两个键总是存在
type KindTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

func (k KindTotals) add(t models.Transaction) KindTotals {
	switch t.Kind {
	case models.KindIncome:
		k.Income = k.Income.Add(t.Amount)
	case models.KindExpense:
		k.Expense = k.Expense.Add(t.Amount)
	}
	return k
}

// CategoryTotal 排行榜中的一项
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// MarshalJSON 输出为 ["类别", 金额] 二元组，与前端约定的格式一致
func (c CategoryTotal) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{c.Category, c.Amount})
}

// Summarize 按类型汇总金额，balance = income - expense
func Summarize(txs []models.Transaction) Summary {
	var totals KindTotals
	for _, t := range txs {
		totals = totals.add(t)
	}
	return Summary{
		TotalIncome:  totals.Income,
		TotalExpense: totals.Expense,
		Balance:      totals.Income.Sub(totals.Expense),
	}
}

// BreakdownByCategory 按类别拆分收入与支出
func BreakdownByCategory(txs []models.Transaction) map[string]KindTotals {
	return groupBy(txs, func(t models.Transaction) string { return t.Category })
}

// BreakdownByMonth 按交易发生的自然月（UTC，YYYY-MM）拆分收入与支出
func BreakdownByMonth(txs []models.Transaction) map[string]KindTotals {
	return groupBy(txs, func(t models.Transaction) string { return t.Date.UTC().Format("2006-01") })
}

func groupBy(txs []models.Transaction, key func(models.Transaction) string) map[string]KindTotals {
	out := make(map[string]KindTotals)
	for _, t := range txs {
		k := key(t)
		out[k] = out[k].add(t)
	}
	return out
}

// TopCategories 指定类型下按金额降序的前 n 个类别，金额相同按类别名升序
func TopCategories(txs []models.Transaction, kind models.Kind, n int) []CategoryTotal {
	if n <= 0 {
		return []CategoryTotal{}
	}

	sums := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Kind != kind {
			continue
		}
		sums[t.Category] = sums[t.Category].Add(t.Amount)
	}

	ranked := make([]CategoryTotal, 0, len(sums))
	for category, amount := range sums {
		ranked = append(ranked, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if c := ranked[i].Amount.Cmp(ranked[j].Amount); c != 0 {
			return c > 0
		}
		return ranked[i].Category < ranked[j].Category
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TopExpenseCategories 支出最多的前 n 个类别
func TopExpenseCategories(txs []models.Transaction, n int) []CategoryTotal {
	return TopCategories(txs, models.KindExpense, n)
}

// TopIncomeCategories 收入最多的前 n 个类别
func TopIncomeCategories(txs []models.Transaction, n int) []CategoryTotal {
	return TopCategories(txs, models.KindIncome, n)
}

// Report 分析页数据
type Report struct {
	CategoryBreakdown    map[string]KindTotals `json:"category_breakdown"`
	MonthlyTrends        map[string]KindTotals `json:"monthly_trends"`
	TopExpenseCategories []CategoryTotal       `json:"top_expense_categories"`
	TopIncomeCategories  []CategoryTotal       `json:"top_income_categories"`
}

// Analyze 生成完整的分析数据，n 为排行榜长度
func Analyze(txs []models.Transaction, n int) Report {
	return Report{
		CategoryBreakdown:    BreakdownByCategory(txs),
		MonthlyTrends:        BreakdownByMonth(txs),
		TopExpenseCategories: TopExpenseCategories(txs, n),
		TopIncomeCategories:  TopIncomeCategories(txs, n),
	}
}
