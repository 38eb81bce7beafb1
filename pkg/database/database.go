// Package database 打开 gorm 连接（sqlite / postgres）
package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/bloghub/config"
)

// sqlite 连接参数：
//   _txlock=immediate  BEGIN 即获取写锁，事务内“先查后写”对其他写者串行
//   _busy_timeout      等待写锁而不是立即 SQLITE_BUSY
//   _foreign_keys      打开外键约束
var sqliteParams = map[string]string{
	"_txlock":       "immediate",
	"_busy_timeout": "10000",
	"_foreign_keys": "1",
}

// SQLiteDSN 为路径/DSN 补齐默认连接参数，已显式给出的参数保持不变
func SQLiteDSN(dsn string) string {
	var missing []string
	for _, k := range []string{"_txlock", "_busy_timeout", "_foreign_keys"} {
		if !strings.Contains(dsn, k+"=") {
			missing = append(missing, k+"="+sqliteParams[k])
		}
	}
	if len(missing) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	return dsn + sep + strings.Join(missing, "&")
}

// InitDB 根据配置打开数据库并设置连接池；时间统一按 UTC 落库
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	case "sqlite":
		dialector = sqlite.Open(SQLiteDSN(cfg.Database.DSN))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	level := gormlogger.Silent
	if cfg.Log.Level == "debug" {
		level = gormlogger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  gormlogger.Default.LogMode(level),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Database.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Database.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// Close 关闭底层连接池
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
