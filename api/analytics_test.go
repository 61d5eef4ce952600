package api

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fintrack/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyticsRouter(cfg *config.Config, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAnalyticsHandler(cfg)
	router := gin.New()
	router.Use(setUserIDMiddleware(userID))
	router.GET("/summary", h.Summary)
	router.GET("/analytics", h.Analytics)
	router.POST("/report", h.Report)
	return router
}

func sampleTransactionRows() *sqlmock.Rows {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(transactionColumns).
		AddRow(4, 1, "3000.00", "Salary", "", "income", feb, feb, feb).
		AddRow(3, 1, "40.00", "Food", "", "expense", feb, feb, feb).
		AddRow(2, 1, "60.00", "Food", "", "expense", jan, jan, jan).
		AddRow(1, 1, "500.00", "Rent", "", "expense", jan, jan, jan)
}

func TestAnalyticsHandler_Summary(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `transactions`").WillReturnRows(sampleTransactionRows())

	w := doJSON(analyticsRouter(cfg, 1), "GET", "/summary", "")
	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"total_income":3000,"total_expenses":600,"balance":2400}`, w.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsHandler_Summary_Empty(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `transactions`").WillReturnRows(sqlmock.NewRows(transactionColumns))

	w := doJSON(analyticsRouter(cfg, 1), "GET", "/summary", "")
	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"total_income":0,"total_expenses":0,"balance":0}`, w.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsHandler_Analytics(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `transactions`").WillReturnRows(sampleTransactionRows())

	w := doJSON(analyticsRouter(cfg, 1), "GET", "/analytics?limit=1", "")
	assert.Equal(t, 200, w.Code)

	var resp struct {
		CategoryBreakdown map[string]map[string]float64 `json:"category_breakdown"`
		MonthlyTrends     map[string]map[string]float64 `json:"monthly_trends"`
		TopExpense        [][]interface{}               `json:"top_expense_categories"`
		TopIncome         [][]interface{}               `json:"top_income_categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 100.0, resp.CategoryBreakdown["Food"]["expense"])
	assert.Equal(t, 0.0, resp.CategoryBreakdown["Food"]["income"])
	assert.Equal(t, 560.0, resp.MonthlyTrends["2024-01"]["expense"])
	assert.Equal(t, 3000.0, resp.MonthlyTrends["2024-02"]["income"])
	require.Len(t, resp.TopExpense, 1)
	assert.Equal(t, []interface{}{"Rent", 500.0}, resp.TopExpense[0])
	require.Len(t, resp.TopIncome, 1)
	assert.Equal(t, "Salary", resp.TopIncome[0][0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsHandler_Analytics_InvalidLimit(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	w := doJSON(analyticsRouter(cfg, 1), "GET", "/analytics?limit=many", "")
	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsHandler_Report_EmailDisabled(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	w := doJSON(analyticsRouter(cfg, 1), "POST", "/report", `{"month":3,"year":2024}`)
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "Email service is not enabled", decodeBody(t, w)["error"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsHandler_Report_InvalidMonth(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	cfg.Email.Enabled = true
	defer func() { config.GlobalConfig = nil }()

	w := doJSON(analyticsRouter(cfg, 1), "POST", "/report", `{"month":13}`)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "month")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsHandler_Summary_InternalErrorHidesDetail(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	cfg.Server.Mode = "release"
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnError(errors.New("Error 1146: Table 'fintrack.transactions' doesn't exist"))

	w := doJSON(analyticsRouter(cfg, 1), "GET", "/summary", "")
	assert.Equal(t, 500, w.Code)
	assert.Equal(t, "Internal server error", decodeBody(t, w)["error"])
	assert.NotContains(t, w.Body.String(), "1146")
	require.NoError(t, mock.ExpectationsWereMet())
}
