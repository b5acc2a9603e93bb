package db

import (
	"sync"
	"time"

	"teksttv-audit/config"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

var wpDB *gorm.DB
var wpDBOnce sync.Once
var wpDBErr error

// InitWordPress 初始化 WordPress 内容库连接，配置了只读副本时查询走副本
func InitWordPress(cfg *config.WordPressConfig) error {
	wpDBOnce.Do(func() {
		wpDB, wpDBErr = OpenWordPress(mysql.Open(cfg.DSN()), cfg)
		if wpDBErr == nil {
			zap.S().Debugf("WordPress 数据库初始化完成: %s:%d/%s", cfg.Host, cfg.Port, cfg.Database)
		}
	})
	return wpDBErr
}

// OpenWordPress 使用给定的 dialector 打开连接，测试中可传入基于 sqlmock 的 dialector
func OpenWordPress(dialector gorm.Dialector, cfg *config.WordPressConfig) (*gorm.DB, error) {
	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "连接 WordPress 数据库失败")
	}

	if len(cfg.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(cfg.Replicas))
		for _, dsn := range cfg.Replicas {
			replicas = append(replicas, mysql.Open(dsn))
		}
		err = conn.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetMaxOpenConns(cfg.MaxOpenConns).
			SetMaxIdleConns(cfg.MaxIdleConns).
			SetConnMaxLifetime(time.Hour))
		if err != nil {
			return nil, errors.Wrap(err, "注册只读副本失败")
		}
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, errors.Wrap(err, "获取底层连接失败")
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return conn, nil
}

// GetWordPress 获取 WordPress 连接
func GetWordPress() *gorm.DB {
	return wpDB
}

// CloseWordPress 关闭 WordPress 连接
func CloseWordPress() error {
	if wpDB == nil {
		return nil
	}
	sqlDB, err := wpDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
