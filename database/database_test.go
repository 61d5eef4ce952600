package database

import (
	"testing"

	"fintrack/config"
	"fintrack/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMock(t *testing.T, dialector func(conn gorm.ConnPool) gorm.Dialector) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(dialector(sqlDB), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func mysqlMock(conn gorm.ConnPool) gorm.Dialector {
	return mysql.New(mysql.Config{Conn: conn, SkipInitializeWithVersion: true})
}

func postgresMock(conn gorm.ConnPool) gorm.Dialector {
	return postgres.New(postgres.Config{Conn: conn})
}

func TestDialector(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "127.0.0.1",
		Port:     "3306",
		Username: "root",
		Password: "pw",
		DBName:   "fintrack",
		Charset:  "utf8mb4",
		SSLMode:  "disable",
	}

	d, err := Dialector(cfg)
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	cfg.Driver = "postgres"
	d, err = Dialector(cfg)
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	cfg.Driver = "oracle"
	_, err = Dialector(cfg)
	assert.Error(t, err)
}

func TestGormConfig(t *testing.T) {
	for _, mode := range []string{"release", "debug"} {
		cfg := GormConfig(mode)
		assert.True(t, cfg.TranslateError)
		assert.NotNil(t, cfg.Logger)
	}
}

func TestClose_NotInitialized(t *testing.T) {
	old := DB
	DB = nil
	defer func() { DB = old }()

	assert.NoError(t, Close())
}

func TestCaseSensitive_MySQL(t *testing.T) {
	db, _ := openMock(t, mysqlMock)

	opts, ok := CaseSensitive(db, "utf8mb4").Get("gorm:table_options")
	require.True(t, ok)
	assert.Equal(t, "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin", opts)

	opts, ok = CaseSensitive(db, "").Get("gorm:table_options")
	require.True(t, ok)
	assert.Contains(t, opts, "COLLATE=utf8mb4_bin")

	// 原 db 不受影响
	_, ok = db.Get("gorm:table_options")
	assert.False(t, ok)
}

func TestCaseSensitive_Postgres(t *testing.T) {
	db, _ := openMock(t, postgresMock)

	_, ok := CaseSensitive(db, "utf8mb4").Get("gorm:table_options")
	assert.False(t, ok)
}

func TestCaseSensitive_CreateTableDDL(t *testing.T) {
	db, mock := openMock(t, mysqlMock)

	mock.ExpectExec("(?s)^CREATE TABLE `transactions` .*COLLATE=utf8mb4_bin$").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("(?s)^CREATE TABLE `budgets` .*COLLATE=utf8mb4_bin$").
		WillReturnResult(sqlmock.NewResult(0, 0))

	migrator := CaseSensitive(db, "utf8mb4").Migrator()
	require.NoError(t, migrator.CreateTable(&models.Transaction{}))
	require.NoError(t, migrator.CreateTable(&models.Budget{}))
	require.NoError(t, mock.ExpectationsWereMet())
}
