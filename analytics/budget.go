package analytics

import (
	"fintrack/models"

	"github.com/shopspring/decimal"
)

// BudgetStatus 预算消耗情况，spent + remaining 恒等于预算金额
type BudgetStatus struct {
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"` // 超支时为负数
	Percentage float64         `json:"percentage"`
}

// ComputeBudgetStatus 根据预算金额与已匹配的支出记录计算消耗。
// 调用方负责筛选 matching，这里只做求和。amount 非正时 percentage 为 0
func ComputeBudgetStatus(amount decimal.Decimal, matching []models.Transaction) BudgetStatus {
	spent := decimal.Zero
	for _, t := range matching {
		spent = spent.Add(t.Amount)
	}

	status := BudgetStatus{
		Spent:     spent,
		Remaining: amount.Sub(spent),
	}
	if amount.IsPositive() {
		status.Percentage = spent.Div(amount).Mul(hundred).InexactFloat64()
	}
	return status
}

// MatchingExpenses 筛选与预算对应的支出：同类别（区分大小写）、支出类型、同一 UTC 自然月
func MatchingExpenses(b models.Budget, txs []models.Transaction) []models.Transaction {
	var out []models.Transaction
	for _, t := range txs {
		if t.Kind != models.KindExpense || t.Category != b.Category || t.UserID != b.UserID {
			continue
		}
		if !b.Covers(t.Date) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// BudgetReport 预算及其消耗，JSON 展开为 {...budget, spent, remaining, percentage}
type BudgetReport struct {
	models.Budget
	BudgetStatus
}

// BudgetReports 为每个预算计算消耗，txs 通常是该用户当月的全部支出
func BudgetReports(budgets []models.Budget, txs []models.Transaction) []BudgetReport {
	reports := make([]BudgetReport, 0, len(budgets))
	for _, b := range budgets {
		reports = append(reports, BudgetReport{
			Budget:       b,
			BudgetStatus: ComputeBudgetStatus(b.Amount, MatchingExpenses(b, txs)),
		})
	}
	return reports
}
