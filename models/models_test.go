package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_Valid(t *testing.T) {
	assert.True(t, KindIncome.Valid())
	assert.True(t, KindExpense.Valid())
	assert.False(t, Kind("transfer").Valid())
	assert.False(t, Kind("").Valid())
	assert.False(t, Kind("Expense").Valid())
}

func TestBudget_Covers(t *testing.T) {
	b := Budget{Month: 1, Year: 2026}

	assert.True(t, b.Covers(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, b.Covers(time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, b.Covers(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, b.Covers(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)))

	// 按 UTC 判断：东八区 2 月 1 日 05:00 仍是 UTC 1 月 31 日
	shanghai := time.FixedZone("CST", 8*3600)
	assert.True(t, b.Covers(time.Date(2026, 2, 1, 5, 0, 0, 0, shanghai)))
}

func TestTransaction_JSON(t *testing.T) {
	tx := Transaction{
		ID:          7,
		UserID:      1,
		Amount:      decimal.RequireFromString("20.50"),
		Category:    "Food",
		Description: "lunch",
		Kind:        KindExpense,
		Date:        time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(tx)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, 20.5, got["amount"])
	assert.Equal(t, "expense", got["transaction_type"])
	assert.Equal(t, "2026-01-05T12:00:00Z", got["date"])
	assert.NotContains(t, got, "User")
	assert.True(t, tx.IsExpense())
}

func TestUser_PasswordNotSerialized(t *testing.T) {
	raw, err := json.Marshal(User{ID: 1, Username: "alice", Email: "a@example.com", Password: "hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
	assert.Contains(t, string(raw), `"username":"alice"`)
}
