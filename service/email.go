package service

import (
	"fmt"
	"html"
	"strings"

	"fintrack/analytics"
	"fintrack/config"

	"gopkg.in/gomail.v2"
)

// MonthlyReport 月度报告邮件的数据
type MonthlyReport struct {
	Month       int
	Year        int
	Summary     analytics.Summary
	TopExpenses []analytics.CategoryTotal
	Budgets     []analytics.BudgetReport
}

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled 是否已启用邮件服务
func (s *EmailService) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled
}

// SendMonthlyReport 发送月度收支报告
func (s *EmailService) SendMonthlyReport(toEmail, username string, report MonthlyReport) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}

	subject := fmt.Sprintf("[Fintrack] Monthly report %04d-%02d", report.Year, report.Month)
	body := s.generateMonthlyReportBody(username, report)

	return s.sendEmail(toEmail, subject, body)
}

// generateMonthlyReportBody 生成月度报告邮件内容
func (s *EmailService) generateMonthlyReportBody(username string, report MonthlyReport) string {
	var top strings.Builder
	if len(report.TopExpenses) == 0 {
		top.WriteString(`<tr><td colspan="2" class="empty">No expenses recorded</td></tr>`)
	}
	for _, c := range report.TopExpenses {
		fmt.Fprintf(&top, "<tr><td>%s</td><td class=\"num\">%s</td></tr>",
			html.EscapeString(c.Category), c.Amount.StringFixed(2))
	}

	var budgets strings.Builder
	if len(report.Budgets) == 0 {
		budgets.WriteString(`<tr><td colspan="4" class="empty">No budgets set</td></tr>`)
	}
	for _, b := range report.Budgets {
		class := "num"
		if b.Remaining.IsNegative() {
			class = "num over"
		}
		fmt.Fprintf(&budgets, "<tr><td>%s</td><td class=\"num\">%s</td><td class=\"num\">%s</td><td class=\"%s\">%.1f%%</td></tr>",
			html.EscapeString(b.Category), b.Amount.StringFixed(2), b.Spent.StringFixed(2), class, b.Percentage)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #2563eb, #1d4ed8); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .summary { display: flex; justify-content: space-between; margin-bottom: 24px; }
        .summary div { flex: 1; text-align: center; }
        .summary strong { display: block; font-size: 20px; }
        table { width: 100%%; border-collapse: collapse; margin-bottom: 24px; }
        th, td { padding: 8px; border-bottom: 1px solid #eee; text-align: left; }
        .num { text-align: right; }
        .over { color: #dc2626; font-weight: 600; }
        .empty { color: #6c757d; text-align: center; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Fintrack %04d-%02d</h1>
        </div>
        <div class="content">
            <p>Hi <strong>%s</strong>, here is your summary for the month.</p>
            <div class="summary">
                <div>Income<strong>%s</strong></div>
                <div>Expenses<strong>%s</strong></div>
                <div>Balance<strong>%s</strong></div>
            </div>
            <h3>Top expense categories</h3>
            <table>
                <tr><th>Category</th><th class="num">Amount</th></tr>
                %s
            </table>
            <h3>Budgets</h3>
            <table>
                <tr><th>Category</th><th class="num">Budget</th><th class="num">Spent</th><th class="num">Used</th></tr>
                %s
            </table>
        </div>
        <div class="footer">
            <p>This email was sent automatically, please do not reply.</p>
        </div>
    </div>
</body>
</html>
`, report.Year, report.Month, html.EscapeString(username),
		report.Summary.TotalIncome.StringFixed(2),
		report.Summary.TotalExpense.StringFixed(2),
		report.Summary.Balance.StringFixed(2),
		top.String(), budgets.String())
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}
