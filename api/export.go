package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"fintrack/analytics"
	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出处理器
type ExportHandler struct {
	ledger *service.TransactionLedger
}

// NewExportHandler 创建导出处理器
func NewExportHandler(cfg *config.Config) *ExportHandler {
	return &ExportHandler{
		ledger: service.NewTransactionLedger(database.DB, cfg.Ledger.StrictDates),
	}
}

// load 按查询参数中的日期区间取出当前用户的记录
func (h *ExportHandler) load(c *gin.Context) ([]models.Transaction, bool) {
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err, "")
		return nil, false
	}
	txs, err := h.ledger.List(c.Request.Context(), middleware.GetCurrentUserID(c), filter)
	if err != nil {
		respondError(c, err, "")
		return nil, false
	}
	return txs, true
}

// WriteCSV 写出 CSV：表头 Date,Category,Description,Type,Amount
func WriteCSV(buf *bytes.Buffer, txs []models.Transaction) error {
	writer := csv.NewWriter(buf)

	if err := writer.Write([]string{"Date", "Category", "Description", "Type", "Amount"}); err != nil {
		return err
	}
	for _, t := range txs {
		row := []string{
			t.Date.UTC().Format("2006-01-02"),
			t.Category,
			t.Description,
			string(t.Kind),
			t.Amount.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportCSV 导出收支记录为 CSV
// @Summary 导出 CSV
// @Description 按日期区间导出收支记录，不传则导出全部
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param start_date query string false "开始日期"
// @Param end_date query string false "结束日期"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} ErrorResponse "日期格式错误"
// @Router /api/transactions/export [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	txs, ok := h.load(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	if err := WriteCSV(buf, txs); err != nil {
		respondError(c, fmt.Errorf("生成 CSV 失败: %w", err), "")
		return
	}

	filename := fmt.Sprintf("transactions_%s.csv", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// BuildWorkbook 生成 Excel 工作簿，末尾附合计行
func BuildWorkbook(txs []models.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "Transactions"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    border,
	})
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Border: border,
	})

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 18)
	f.SetColWidth(sheetName, "C", "C", 36)
	f.SetColWidth(sheetName, "D", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 14)

	headers := []string{"Date", "Category", "Description", "Type", "Amount"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, t := range txs {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), t.Date.UTC().Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), string(t.Kind))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.Amount.InexactFloat64())
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), dataStyle)
	}

	// 合计行：收入、支出、结余各一行
	summary := analytics.Summarize(txs)
	totals := []struct {
		label string
		value float64
	}{
		{"Total income", summary.TotalIncome.InexactFloat64()},
		{"Total expenses", summary.TotalExpense.InexactFloat64()},
		{"Balance", summary.Balance.InexactFloat64()},
	}
	for i, total := range totals {
		row := len(txs) + 2 + i
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), total.label)
		f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), total.value)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), summaryStyle)
	}

	return f, nil
}

// ExportExcel 导出收支记录为 Excel
// @Summary 导出 Excel
// @Description 按日期区间导出收支记录为 xlsx，末尾附收入、支出与结余合计
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_date query string false "开始日期"
// @Param end_date query string false "结束日期"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} ErrorResponse "日期格式错误"
// @Router /api/transactions/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	txs, ok := h.load(c)
	if !ok {
		return
	}

	f, err := BuildWorkbook(txs)
	if err != nil {
		respondError(c, fmt.Errorf("生成 Excel 失败: %w", err), "")
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		respondError(c, fmt.Errorf("生成 Excel 失败: %w", err), "")
		return
	}

	filename := fmt.Sprintf("transactions_%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, excelContentType, buf.Bytes())
}
