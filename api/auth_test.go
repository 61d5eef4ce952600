package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var userColumns = []string{"id", "username", "email", "password", "created_at", "updated_at"}

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

func setUserIDMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func testConfig() *config.Config {
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
		Ledger: config.LedgerConfig{TopCategories: 5},
	}
	config.GlobalConfig = cfg
	middleware.InitJWT(cfg)
	return cfg
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAuthHandler_Register(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("newuser").
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("new@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/register", NewAuthHandler(cfg).Register)

	w := doJSON(router, "POST", "/register", `{"username":"newuser","password":"password123","email":"new@example.com"}`)

	assert.Equal(t, 201, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "User registered successfully", resp["message"])
	user := resp["user"].(map[string]interface{})
	assert.Equal(t, "newuser", user["username"])
	assert.NotContains(t, user, "password")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Register_UsernameExists(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("existinguser").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(1, "existinguser", "e@x.com", "hash", time.Now(), time.Now()))

	router := gin.New()
	router.POST("/register", NewAuthHandler(cfg).Register)

	w := doJSON(router, "POST", "/register", `{"username":"existinguser","password":"password123","email":"other@example.com"}`)

	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "Username already exists", decodeBody(t, w)["error"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	router := gin.New()
	router.POST("/register", NewAuthHandler(cfg).Register)

	w := doJSON(router, "POST", "/register", `{"username":"alice"}`)
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "Missing required fields", decodeBody(t, w)["error"])

	w = doJSON(router, "POST", "/register", `not json`)
	assert.Equal(t, 400, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("alice", "alice").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(7, "alice", "alice@example.com", hashPassword(t, "password123"), time.Now(), time.Now()))

	router := gin.New()
	router.POST("/login", NewAuthHandler(cfg).Login)

	w := doJSON(router, "POST", "/login", `{"username":"alice","password":"password123"}`)

	assert.Equal(t, 200, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "Login successful", resp["message"])
	token, _ := resp["access_token"].(string)
	require.NotEmpty(t, token)

	claims, err := middleware.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	// 密码错误
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(7, "alice", "alice@example.com", hashPassword(t, "password123"), time.Now(), time.Now()))
	// 用户不存在
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns))

	router := gin.New()
	router.POST("/login", NewAuthHandler(cfg).Login)

	w1 := doJSON(router, "POST", "/login", `{"username":"alice","password":"wrong"}`)
	w2 := doJSON(router, "POST", "/login", `{"username":"nobody","password":"password123"}`)

	assert.Equal(t, 401, w1.Code)
	assert.Equal(t, 401, w2.Code)
	// 两种情况响应完全一致
	assert.Equal(t, w1.Body.String(), w2.Body.String())
	assert.Equal(t, "Invalid credentials", decodeBody(t, w1)["error"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	router := gin.New()
	router.POST("/login", NewAuthHandler(cfg).Login)

	w := doJSON(router, "POST", "/login", `{"username":"alice"}`)
	assert.Equal(t, 400, w.Code)
}

func TestAuthHandler_Me(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(7, "alice", "alice@example.com", "hash", time.Now(), time.Now()))

	router := gin.New()
	router.Use(setUserIDMiddleware(7))
	router.GET("/me", NewAuthHandler(cfg).Me)

	w := doJSON(router, "GET", "/me", "")
	assert.Equal(t, 200, w.Code)
	user := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", user["email"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(7, "alice", "alice@example.com", hashPassword(t, "password123"), time.Now(), time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(7))
	router.PUT("/me/password", NewAuthHandler(cfg).ChangePassword)

	w := doJSON(router, "PUT", "/me/password", `{"old_password":"password123","new_password":"newpassword"}`)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "Password updated successfully", decodeBody(t, w)["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_DeleteAccount(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(7, "alice", "alice@example.com", hashPassword(t, "password123"), time.Now(), time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `transactions`").WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM `budgets`").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `users`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(7))
	router.DELETE("/me", NewAuthHandler(cfg).DeleteAccount)

	w := doJSON(router, "DELETE", "/me", `{"password":"password123"}`)
	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_DeleteAccount_WrongPassword(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	cfg := testConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(7, "alice", "alice@example.com", hashPassword(t, "password123"), time.Now(), time.Now()))

	router := gin.New()
	router.Use(setUserIDMiddleware(7))
	router.DELETE("/me", NewAuthHandler(cfg).DeleteAccount)

	w := doJSON(router, "DELETE", "/me", `{"password":"nope"}`)
	assert.Equal(t, 401, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
