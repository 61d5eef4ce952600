package database

import (
	"fmt"
	"log"

	"fintrack/config"
	"fintrack/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Dialector 根据配置选择数据库驱动
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "mysql":
		// 时间统一按 UTC 存取，与预算按 UTC 自然月统计保持一致
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=UTC",
			cfg.Username,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.Host,
			cfg.Username,
			cfg.Password,
			cfg.DBName,
			cfg.Port,
			cfg.SSLMode,
		)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// GormConfig gorm 配置，唯一索引冲突翻译为 gorm.ErrDuplicatedKey
func GormConfig(mode string) *gorm.Config {
	level := logger.Info
	if mode == "release" {
		level = logger.Warn
	}
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	}
}

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	dialector, err := Dialector(cfg.Database)
	if err != nil {
		return err
	}

	DB, err = gorm.Open(dialector, GormConfig(cfg.Server.Mode))
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	if cfg.Database.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	if cfg.Database.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}

	if err := Migrate(DB, cfg.Database.Charset); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	log.Printf("数据库初始化完成 (%s)", dialector.Name())
	return nil
}

// Migrate 自动迁移数据库表
func Migrate(db *gorm.DB, charset string) error {
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return err
	}
	// category 按区分大小写的精确值比较，包括唯一索引 idx_budget_period
	return CaseSensitive(db, charset).AutoMigrate(
		&models.Transaction{},
		&models.Budget{},
	)
}

// CaseSensitive MySQL 下为新建的表指定二进制排序规则，
// 默认的 _ci 排序规则比较字符串时忽略大小写。postgres 本身区分大小写，原样返回
func CaseSensitive(db *gorm.DB, charset string) *gorm.DB {
	if db.Dialector.Name() != "mysql" {
		return db
	}
	if charset == "" {
		charset = "utf8mb4"
	}
	return db.Set("gorm:table_options",
		fmt.Sprintf("ENGINE=InnoDB DEFAULT CHARSET=%s COLLATE=%s_bin", charset, charset))
}

// Close 关闭数据库连接
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
